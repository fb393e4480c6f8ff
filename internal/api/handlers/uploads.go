package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/modelia/ai-studio-server/internal/storage"
	"github.com/modelia/ai-studio-server/internal/utils"
)

// Uploads streams stored artifacts back to clients.
type Uploads struct {
	Store storage.Store
}

// Serve godoc
// @Summary Download a stored artifact
// @Tags Uploads
// @Produce octet-stream
// @Param file path string true "Artifact file name"
// @Success 200 {file} binary
// @Failure 404 {object} object "not found"
// @Router /api/uploads/{file} [get]
func (h *Uploads) Serve(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")

	// The store confines the name to the artifact root; traversal segments
	// come back as ErrNotFound.
	rc, err := h.Store.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		slog.Error("failed to open artifact", "name", name, "error", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = io.Copy(w, rc)
}
