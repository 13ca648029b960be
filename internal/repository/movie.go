package repository

import (
	"context"

	"github.com/amartov/kinolog/internal/domain"
)

type MovieRepository interface {
	List(ctx context.Context, filter domain.MovieFilter) ([]*domain.Movie, error)
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)

	// Exists is the cheap referential check used before recording viewing
	// state against a movie id.
	Exists(ctx context.Context, id int64) (bool, error)

	// RefreshRatings recomputes catalog ratings from user watched ratings.
	// Returns the number of movies updated.
	RefreshRatings(ctx context.Context) (int64, error)
}
