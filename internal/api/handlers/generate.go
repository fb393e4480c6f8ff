package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modelia/ai-studio-server/internal/api/middleware"
	"github.com/modelia/ai-studio-server/internal/auth"
	"github.com/modelia/ai-studio-server/internal/models"
	"github.com/modelia/ai-studio-server/internal/storage"
	"github.com/modelia/ai-studio-server/internal/utils"
)

const (
	maxUploadSize = 32 << 20 // 32 MB

	// upstreamFailureRate is the per-call probability of the simulated
	// upstream outage. Each call is an independent draw; nothing is retried
	// server-side.
	upstreamFailureRate = 0.10

	upstreamErrorMessage = "Modelia API error: upstream timeout (simulated)"
)

// Generate runs the submission pipeline: simulated upstream draw, auth,
// artifact ingestion, result derivation, record persistence.
type Generate struct {
	DB     *gorm.DB
	Store  storage.Store
	Tokens *auth.TokenManager

	// Rand overrides the upstream-failure draw; nil uses math/rand. Tests
	// pin it to force or suppress the outage path.
	Rand func() float64
}

func (h *Generate) roll() float64 {
	if h.Rand != nil {
		return h.Rand()
	}
	return rand.Float64()
}

type generateResponse struct {
	ID        uuid.UUID `json:"id"`
	ResultURL string    `json:"resultUrl"`
	Prompt    string    `json:"prompt"`
}

// Create godoc
// @Summary Submit a generation
// @Description Accepts a multipart file + prompt, or JSON {imageBase64, prompt}; returns the derived result reference.
// @Tags Generations
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.generateResponse
// @Failure 400 {object} object "no file uploaded"
// @Failure 401 {object} object "unauthorized"
// @Failure 502 {object} object "simulated upstream outage"
// @Router /api/generate [post]
func (h *Generate) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// The outage draw happens before authentication: an unauthenticated
	// caller can observe the simulated 502. Existing clients rely on this
	// ordering, so it is kept as is.
	if h.roll() < upstreamFailureRate {
		utils.Error(w, http.StatusBadGateway, upstreamErrorMessage)
		return
	}

	claims, err := middleware.Authenticate(r, h.Tokens)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	prompt, src := parseSubmission(r)

	inputName, err := storage.Ingest(r.Context(), h.Store, src)
	if err != nil {
		if errors.Is(err, storage.ErrNoArtifact) {
			utils.Error(w, http.StatusBadRequest, "no file uploaded")
			return
		}
		slog.Error("failed to save uploaded file", "error", err)
		utils.Error(w, http.StatusInternalServerError, "failed to save uploaded file")
		return
	}

	resultName, err := storage.DeriveResult(r.Context(), h.Store, inputName)
	if err != nil {
		slog.Error("failed to derive result artifact", "error", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	gen := models.Generation{
		ID:         uuid.New(),
		UserID:     userID,
		Prompt:     prompt,
		InputPath:  inputName,
		ResultPath: resultName,
		Status:     models.StatusDone,
	}
	if err := h.DB.Create(&gen).Error; err != nil {
		slog.Error("failed to persist generation", "error", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.JSON(w, http.StatusOK, generateResponse{
		ID:        gen.ID,
		ResultURL: "/uploads/" + resultName,
		Prompt:    prompt,
	})
}

// parseSubmission pulls the prompt and the artifact source out of either
// accepted request shape. The prompt is optional at this layer and defaults
// to empty; a request with no usable artifact yields an empty Source that
// Ingest rejects.
func parseSubmission(r *http.Request) (string, storage.Source) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return "", storage.Source{}
		}
		prompt := r.FormValue("prompt")
		if files := r.MultipartForm.File["file"]; len(files) > 0 {
			return prompt, storage.MultipartSource(files[0])
		}
		return prompt, storage.Source{}
	}

	var body struct {
		Prompt      string `json:"prompt"`
		ImageBase64 string `json:"imageBase64"`
	}
	// A malformed or absent body is treated as an empty submission.
	_ = json.NewDecoder(r.Body).Decode(&body)

	if body.ImageBase64 == "" {
		return body.Prompt, storage.Source{}
	}
	data, err := base64.StdEncoding.DecodeString(body.ImageBase64)
	if err != nil {
		return body.Prompt, storage.Source{}
	}
	return body.Prompt, storage.BytesSource(data, ".jpg")
}
