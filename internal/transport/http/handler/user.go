package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/amartov/kinolog/internal/transport/http/middleware"
	"github.com/amartov/kinolog/internal/usecase"
	"github.com/gin-gonic/gin"
)

// userStateUsecaser is the subset of UserStateUsecase the handler needs.
type userStateUsecaser interface {
	RecordWatched(ctx context.Context, userID string, movieID int64, rating int, review string) ([]domain.WatchedEntry, error)
	AddFavorite(ctx context.Context, userID string, movieID int64) ([]int64, error)
	RemoveFavorite(ctx context.Context, userID string, movieID int64) ([]int64, error)
}

type UserStateHandler struct {
	state  userStateUsecaser
	logger *slog.Logger
}

func NewUserStateHandler(state userStateUsecaser, logger *slog.Logger) *UserStateHandler {
	return &UserStateHandler{state: state, logger: logger.With("component", "user_state_handler")}
}

type recordWatchedRequest struct {
	MovieID int64  `json:"movie_id" binding:"required"`
	Rating  int    `json:"rating"   binding:"required,min=1,max=10"`
	Review  string `json:"review"`
}

// POST /user/watched
func (h *UserStateHandler) RecordWatched(c *gin.Context) {
	var req recordWatchedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(codeValidation, err.Error()))
		return
	}

	userID := c.GetString(middleware.UserIDKey)
	watched, err := h.state.RecordWatched(c.Request.Context(), userID, req.MovieID, req.Rating, req.Review)
	if err != nil {
		h.respondStateError(c, "record watched", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watched": watched})
}

// POST /movies/:id/favorite
func (h *UserStateHandler) AddFavorite(c *gin.Context) {
	movieID, ok := movieIDParam(c)
	if !ok {
		return
	}

	userID := c.GetString(middleware.UserIDKey)
	favorites, err := h.state.AddFavorite(c.Request.Context(), userID, movieID)
	if err != nil {
		h.respondStateError(c, "add favorite", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// DELETE /movies/:id/favorite
func (h *UserStateHandler) RemoveFavorite(c *gin.Context) {
	movieID, ok := movieIDParam(c)
	if !ok {
		return
	}

	userID := c.GetString(middleware.UserIDKey)
	favorites, err := h.state.RemoveFavorite(c.Request.Context(), userID, movieID)
	if err != nil {
		h.respondStateError(c, "remove favorite", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *UserStateHandler) respondStateError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, errorBody(codeValidation, err.Error()))
	case errors.Is(err, domain.ErrMovieNotFound):
		c.JSON(http.StatusNotFound, errorBody(codeNotFound, errMovieNotFound))
	default:
		h.logger.Error(op, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(codeInternal, errInternalServer))
	}
}

func movieIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody(codeValidation, "invalid movie id"))
		return 0, false
	}
	return id, true
}
