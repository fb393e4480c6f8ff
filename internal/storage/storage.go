package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/modelia/ai-studio-server/internal/utils"
)

var (
	// ErrNotFound means the referenced artifact does not exist in the store.
	ErrNotFound = errors.New("artifact not found")
	// ErrNoArtifact means a request carried no usable upload in any form.
	ErrNoArtifact = errors.New("no usable artifact in request")
)

// Store is a flat, write-once artifact area addressed by generated file
// names. Artifacts are never mutated after Save.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
}

type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceMultipart
	sourceBytes
)

// Source is the one tagged shape every upload encoding funnels into: a
// staged multipart file, a decoded byte payload, or nothing.
type Source struct {
	kind sourceKind
	file *multipart.FileHeader
	data []byte
	ext  string
}

// MultipartSource wraps a staged multipart upload.
func MultipartSource(fh *multipart.FileHeader) Source {
	return Source{kind: sourceMultipart, file: fh}
}

// BytesSource wraps a raw payload (e.g. a decoded base64 body) and the
// extension the stored name should carry.
func BytesSource(data []byte, ext string) Source {
	return Source{kind: sourceBytes, data: data, ext: ext}
}

// Ingest writes the source's bytes into the store under a generated name and
// returns that name. A Source carrying nothing fails with ErrNoArtifact.
func Ingest(ctx context.Context, s Store, src Source) (string, error) {
	switch src.kind {
	case sourceMultipart:
		f, err := src.file.Open()
		if err != nil {
			return "", fmt.Errorf("opening staged upload: %w", err)
		}
		defer f.Close()

		name := uuid.New().String() + "_" + src.file.Filename
		if err := s.Save(ctx, name, f); err != nil {
			return "", err
		}
		return name, nil

	case sourceBytes:
		hex, err := utils.RandomHex(8)
		if err != nil {
			return "", err
		}
		ext := src.ext
		if ext == "" {
			ext = ".jpg"
		}
		name := hex + ext
		if err := s.Save(ctx, name, bytes.NewReader(src.data)); err != nil {
			return "", err
		}
		return name, nil

	case sourceNone:
		return "", ErrNoArtifact

	default:
		return "", ErrNoArtifact
	}
}

// DeriveResult stands in for real media generation: it duplicates the input
// artifact under a result- prefixed name. The copy is byte-identical on
// purpose.
func DeriveResult(ctx context.Context, s Store, inputName string) (string, error) {
	in, err := s.Open(ctx, inputName)
	if err != nil {
		return "", err
	}
	defer in.Close()

	resultName := "result-" + inputName
	if err := s.Save(ctx, resultName, in); err != nil {
		return "", err
	}
	return resultName, nil
}
