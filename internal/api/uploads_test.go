package api

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServeUnknownArtifact(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	w := doJSON(t, h, http.MethodGet, "/api/uploads/does-not-exist.jpg", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestServeArtifactRoundtrip(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Routes()

	content := []byte{0xff, 0xd8, 0xff, 0xe0}
	require.NoError(t, srv.Store.Save(context.Background(), "pic.jpg", bytes.NewReader(content)))

	w := doJSON(t, h, http.MethodGet, "/api/uploads/pic.jpg", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, content, w.Body.Bytes())
	require.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
}
