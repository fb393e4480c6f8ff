package storage

import "github.com/modelia/ai-studio-server/internal/config"

// FromConfig selects the artifact store driver. Disk is the default; the s3
// driver needs the S3_* settings populated.
func FromConfig(cfg config.Config) Store {
	if cfg.StorageDriver == "s3" {
		return NewS3(cfg.S3)
	}
	return NewDisk(cfg.UploadDir)
}
