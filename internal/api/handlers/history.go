package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modelia/ai-studio-server/internal/api/middleware"
	"github.com/modelia/ai-studio-server/internal/models"
	"github.com/modelia/ai-studio-server/internal/utils"
)

// historyLimit caps how many recent generations the list endpoint returns.
// Older records stay in storage; only the window is capped.
const historyLimit = 5

// History is the read-only recent-generations projection for one user.
type History struct {
	DB *gorm.DB
}

type historyItem struct {
	ID        uuid.UUID `json:"id"`
	Prompt    string    `json:"prompt"`
	ResultURL string    `json:"resultUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// List godoc
// @Summary List recent generations
// @Description Returns up to five of the caller's generations, newest first.
// @Tags Generations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object "items array"
// @Failure 401 {object} object "unauthorized"
// @Router /api/generations [get]
func (h *History) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// Always scoped to the authenticated owner; no cross-user reads.
	var gens []models.Generation
	if err := h.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&gens).Error; err != nil {
		utils.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	items := make([]historyItem, 0, len(gens))
	for _, g := range gens {
		items = append(items, historyItem{
			ID:        g.ID,
			Prompt:    g.Prompt,
			ResultURL: "/uploads/" + g.ResultPath,
			CreatedAt: g.CreatedAt,
		})
	}

	utils.JSON(w, http.StatusOK, map[string]any{"items": items})
}
