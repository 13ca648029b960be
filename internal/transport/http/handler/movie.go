package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/amartov/kinolog/internal/usecase"
	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	movieUsecase *usecase.MovieUsecase
	logger       *slog.Logger
}

func NewMovieHandler(movieUsecase *usecase.MovieUsecase, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{movieUsecase: movieUsecase, logger: logger.With("component", "movie_handler")}
}

// GET /movies?genre=&year=&search=&limit=
func (h *MovieHandler) List(c *gin.Context) {
	filter := domain.MovieFilter{
		Genre:  c.Query("genre"),
		Search: c.Query("search"),
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody(codeValidation, "invalid year"))
			return
		}
		filter.Year = year
	}
	if l := c.Query("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, errorBody(codeValidation, "invalid limit"))
			return
		}
		filter.Limit = limit
	}

	movies, err := h.movieUsecase.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list movies", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(codeInternal, errInternalServer))
		return
	}
	if movies == nil {
		movies = []*domain.Movie{}
	}

	c.JSON(http.StatusOK, gin.H{"movies": movies})
}

// GET /movies/:id
func (h *MovieHandler) GetByID(c *gin.Context) {
	movieID, ok := movieIDParam(c)
	if !ok {
		return
	}

	movie, err := h.movieUsecase.GetByID(c.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, errorBody(codeNotFound, errMovieNotFound))
			return
		}
		h.logger.Error("get movie", "movie_id", movieID, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(codeInternal, errInternalServer))
		return
	}

	c.JSON(http.StatusOK, movie)
}
