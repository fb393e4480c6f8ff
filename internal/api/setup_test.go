package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/modelia/ai-studio-server/internal/auth"
	"github.com/modelia/ai-studio-server/internal/config"
	"github.com/modelia/ai-studio-server/internal/repositories"
	"github.com/modelia/ai-studio-server/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))

	cfg := config.Config{
		Port:      "0",
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}

	srv := New(cfg, db, storage.NewDisk(cfg.UploadDir), auth.NewTokenManager(cfg.JWTSecret))
	// Default the outage draw off; tests for the 502 path pin it back on.
	srv.UpstreamRand = func() float64 { return 1 }
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, h http.Handler, email, password string) (token, userID string) {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ = body["token"].(string)
	require.NotEmpty(t, token)

	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	userID, _ = user["id"].(string)
	require.NotEmpty(t, userID)
	return token, userID
}
