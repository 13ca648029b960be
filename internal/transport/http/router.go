package httptransport

import (
	"log/slog"

	"github.com/amartov/kinolog/internal/repository"
	"github.com/amartov/kinolog/internal/transport/http/handler"
	"github.com/amartov/kinolog/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// tokenVerifier mirrors middleware's requirement so main can pass the
// concrete auth.TokenService straight through.
type tokenVerifier interface {
	Verify(raw string) (string, error)
}

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	stateHandler *handler.UserStateHandler,
	movieHandler *handler.MovieHandler,
	tokens tokenVerifier,
	userRepo repository.UserRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens, userRepo)

	// Public auth routes
	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authMW, authHandler.Me)

	// Public catalog reads
	movies := r.Group("/movies")
	movies.GET("", movieHandler.List)
	movies.GET("/:id", movieHandler.GetByID)

	// Protected viewing-state mutations
	movies.POST("/:id/favorite", authMW, stateHandler.AddFavorite)
	movies.DELETE("/:id/favorite", authMW, stateHandler.RemoveFavorite)

	user := r.Group("/user", authMW)
	user.POST("/watched", stateHandler.RecordWatched)

	return r
}
