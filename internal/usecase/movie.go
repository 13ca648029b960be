package usecase

import (
	"context"
	"fmt"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/amartov/kinolog/internal/repository"
)

// MovieUsecase exposes the read-only catalog. The auth core only ever
// consumes movie ids; the catalog content itself is opaque to it.
type MovieUsecase struct {
	movies repository.MovieRepository
}

func NewMovieUsecase(movies repository.MovieRepository) *MovieUsecase {
	return &MovieUsecase{movies: movies}
}

func (u *MovieUsecase) List(ctx context.Context, filter domain.MovieFilter) ([]*domain.Movie, error) {
	movies, err := u.movies.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (u *MovieUsecase) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	movie, err := u.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return movie, nil
}
