package config

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// S3Config configures the optional S3-compatible artifact store driver.
type S3Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

type Config struct {
	DBURL         string
	Port          string
	JWTSecret     string
	UploadDir     string
	StorageDriver string
	Environment   string
	CorsConfig    cors.Options
	S3            S3Config
}

// Load reads the environment (plus an optional .env file) into a Config.
// The result is passed around explicitly; nothing in this package is mutable
// process state.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DBURL:         getEnv("DB_URL", "host=localhost user=postgres dbname=ai_studio port=5432 sslmode=disable"),
		Port:          getEnv("PORT", "4000"),
		JWTSecret:     getEnv("JWT_SECRET", "dev"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		StorageDriver: getEnv("STORAGE_DRIVER", "disk"),
		Environment:   getEnv("ENV", "development"),
		CorsConfig:    CorsConfig(),
		S3: S3Config{
			AccountID:       getEnv("S3_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("S3_BUCKET_NAME", ""),
			Region:          getEnv("S3_REGION", "auto"),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "https://mini-ai-studio.vercel.app"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
