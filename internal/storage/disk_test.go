package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// stagedUpload builds a real multipart.FileHeader the way a handler would
// receive one.
func stagedUpload(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest("POST", "/", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(32<<20))

	files := r.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func readAll(t *testing.T, s Store, name string) []byte {
	t.Helper()
	rc, err := s.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}

func TestIngestMultipart(t *testing.T) {
	store := NewDisk(t.TempDir())
	content := []byte("0123456789")

	name, err := Ingest(context.Background(), store, MultipartSource(stagedUpload(t, "cat.jpg", content)))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, "_cat.jpg"), "name %q keeps the original filename", name)
	require.Equal(t, content, readAll(t, store, name))
}

func TestIngestBytes(t *testing.T) {
	store := NewDisk(t.TempDir())
	content := []byte{0xff, 0xd8, 0xff, 0xe0}

	name, err := Ingest(context.Background(), store, BytesSource(content, ""))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".jpg"), "empty extension defaults to .jpg, got %q", name)
	require.Equal(t, content, readAll(t, store, name))
}

func TestIngestNothing(t *testing.T) {
	store := NewDisk(t.TempDir())

	_, err := Ingest(context.Background(), store, Source{})
	require.ErrorIs(t, err, ErrNoArtifact)
}

func TestDeriveResult(t *testing.T) {
	store := NewDisk(t.TempDir())
	content := []byte("input bytes")

	name, err := Ingest(context.Background(), store, BytesSource(content, ".png"))
	require.NoError(t, err)

	resultName, err := DeriveResult(context.Background(), store, name)
	require.NoError(t, err)
	require.Equal(t, "result-"+name, resultName)

	// Byte-identical copy; the input stays in place.
	require.Equal(t, content, readAll(t, store, resultName))
	require.Equal(t, content, readAll(t, store, name))
}

func TestDiskLazyRootCreation(t *testing.T) {
	root := t.TempDir() + "/nested/uploads"
	store := NewDisk(root)

	require.NoError(t, store.Save(context.Background(), "a.bin", bytes.NewReader([]byte{1})))

	ok, err := store.Exists(context.Background(), "a.bin")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDiskNameConfinement(t *testing.T) {
	store := NewDisk(t.TempDir())

	for _, name := range []string{"", ".", "..", "../secret", "a/b.jpg", `..\windows`, "/etc/passwd"} {
		_, err := store.Open(context.Background(), name)
		require.ErrorIs(t, err, ErrNotFound, "name %q", name)

		err = store.Save(context.Background(), name, bytes.NewReader(nil))
		require.ErrorIs(t, err, ErrNotFound, "name %q", name)

		ok, err := store.Exists(context.Background(), name)
		require.NoError(t, err)
		require.False(t, ok, "name %q", name)
	}
}

func TestDiskOpenMissing(t *testing.T) {
	store := NewDisk(t.TempDir())

	_, err := store.Open(context.Background(), "does-not-exist.jpg")
	require.ErrorIs(t, err, ErrNotFound)

	ok, err := store.Exists(context.Background(), "does-not-exist.jpg")
	require.NoError(t, err)
	require.False(t, ok)
}
