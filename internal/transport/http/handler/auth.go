package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/amartov/kinolog/internal/metrics"
	"github.com/amartov/kinolog/internal/transport/http/middleware"
	"github.com/amartov/kinolog/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, email, password, username string) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	CurrentUser(ctx context.Context, userID string) (domain.PublicUser, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(codeValidation, err.Error()))
		return
	}

	result, err := h.authUsecase.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, errorBody(codeValidation, err.Error()))
		case errors.Is(err, domain.ErrDuplicateAccount):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			c.JSON(http.StatusBadRequest, errorBody(codeDuplicate, errDuplicateAccount))
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			h.logger.Error("register", "error", err)
			c.JSON(http.StatusInternalServerError, errorBody(codeInternal, errInternalServer))
		}
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

// POST /auth/login
// Unknown email and wrong password produce the same response on purpose.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(codeValidation, err.Error()))
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusBadRequest, errorBody(codeBadCredential, errInvalidCredentials))
			return
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		h.logger.Error("login", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(codeInternal, errInternalServer))
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// GET /auth/me — requires the Auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	user, err := h.authUsecase.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("current user", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(codeInternal, errInternalServer))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
