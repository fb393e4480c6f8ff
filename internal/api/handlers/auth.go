package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/modelia/ai-studio-server/internal/auth"
	"github.com/modelia/ai-studio-server/internal/models"
	"github.com/modelia/ai-studio-server/internal/utils"
)

// Auth serves registration and login.
type Auth struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

type userSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates an account and returns a signed identity token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "email, password, optional name"
// @Success 201 {object} handlers.authResponse
// @Failure 400 {object} object "missing fields or duplicate email"
// @Router /auth/register [post]
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "email & password required")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.Error(w, http.StatusBadRequest, "email & password required")
		return
	}

	var existing models.User
	err := h.DB.Where("email = ?", input.Email).First(&existing).Error
	switch {
	case err == nil:
		utils.Error(w, http.StatusBadRequest, "user exists")
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		// new account
	default:
		utils.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// A concurrent register for the same email loses here on the unique
		// index; report it the same as the pre-check.
		utils.Error(w, http.StatusBadRequest, "user exists")
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	utils.JSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  userSummary{ID: user.ID, Email: user.Email},
	})
}

// Login godoc
// @Summary Log in with email and password
// @Description Verifies credentials and returns a signed identity token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "email, password"
// @Success 200 {object} handlers.authResponse
// @Failure 400 {object} object "missing fields"
// @Failure 401 {object} object "invalid credentials"
// @Router /auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "email & password required")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.Error(w, http.StatusBadRequest, "email & password required")
		return
	}

	// Unknown email and wrong password answer identically so the response
	// does not reveal which check failed.
	var user models.User
	err := h.DB.Where("email = ?", input.Email).First(&user).Error
	switch {
	case err == nil:
		// user found
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	default:
		utils.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	utils.JSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  userSummary{ID: user.ID, Email: user.Email},
	})
}
