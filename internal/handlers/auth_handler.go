package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// UserStore is the account storage used by the auth and profile handlers.
type UserStore interface {
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

type AuthHandler struct {
	users   UserStore
	tokens  *auth.Tokens
	logger  *zap.Logger
	emailOK func(string) bool
}

func NewAuthHandler(users UserStore, tokens *auth.Tokens, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		tokens:  tokens,
		logger:  logging.OrNop(logger),
		emailOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := normalizeEmail(req.Email)
	if !validators.IsEmailFormatValid(email) {
		httperr.BadRequest(c, "invalid_email", "The e-mail address is not valid.")
		return
	}

	if !h.emailOK(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid.")
		return
	}

	taken, err := h.users.EmailTaken(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("email lookup failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Could not create the account.")
		return
	}
	if taken {
		httperr.Conflict(c, "email_already_registered", "An account with this e-mail already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create the account.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         auth.RolePatient,
	}

	if err := h.users.CreateUser(c.Request.Context(), &user); err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_user", "Could not create the account.")
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := normalizeEmail(req.Email)
	if !validators.IsEmailFormatValid(email) {
		httperr.BadRequest(c, "invalid_email", "The e-mail address is not valid.")
		return
	}

	user, err := h.users.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		if isNotFound(err) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
			return
		}
		h.logger.Error("user lookup failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Could not sign in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	doctorID := ""
	if user.DoctorID != nil {
		doctorID = *user.DoctorID
	}

	token, err := h.tokens.Issue(user.ID, user.Role, doctorID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign in.")
		return
	}

	c.JSON(status, gin.H{
		"token": token,
		"patient": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
