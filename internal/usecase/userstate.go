package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/amartov/kinolog/internal/repository"
)

// UserStateUsecase applies idempotent upserts to the caller's own watched
// list and favorites set. It never touches another identity: handlers pass
// the id resolved by the auth middleware, nothing else.
type UserStateUsecase struct {
	users  repository.UserRepository
	movies repository.MovieRepository
	now    func() time.Time
}

func NewUserStateUsecase(users repository.UserRepository, movies repository.MovieRepository) *UserStateUsecase {
	return &UserStateUsecase{users: users, movies: movies, now: time.Now}
}

// RecordWatched upserts the entry for movieID and returns the full watched
// list. Repeating the identical call leaves exactly one entry for the movie.
func (u *UserStateUsecase) RecordWatched(ctx context.Context, userID string, movieID int64, rating int, review string) ([]domain.WatchedEntry, error) {
	if rating < 1 || rating > 10 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 10", ErrValidation)
	}
	if err := u.movieMustExist(ctx, movieID); err != nil {
		return nil, err
	}

	entry := domain.WatchedEntry{
		MovieID:   movieID,
		Rating:    rating,
		Review:    review,
		WatchedAt: u.now().UTC(),
	}
	if err := u.users.UpsertWatched(ctx, userID, entry); err != nil {
		return nil, err
	}
	return u.users.ListWatched(ctx, userID)
}

// AddFavorite inserts movieID into the favorites set; already-present is a
// no-op, not an error.
func (u *UserStateUsecase) AddFavorite(ctx context.Context, userID string, movieID int64) ([]int64, error) {
	if err := u.movieMustExist(ctx, movieID); err != nil {
		return nil, err
	}
	if err := u.users.AddFavorite(ctx, userID, movieID); err != nil {
		return nil, err
	}
	return u.users.ListFavorites(ctx, userID)
}

// RemoveFavorite removes movieID from the favorites set; absent is a no-op.
func (u *UserStateUsecase) RemoveFavorite(ctx context.Context, userID string, movieID int64) ([]int64, error) {
	if err := u.users.RemoveFavorite(ctx, userID, movieID); err != nil {
		return nil, err
	}
	return u.users.ListFavorites(ctx, userID)
}

func (u *UserStateUsecase) movieMustExist(ctx context.Context, movieID int64) error {
	ok, err := u.movies.Exists(ctx, movieID)
	if err != nil {
		return fmt.Errorf("check movie: %w", err)
	}
	if !ok {
		return domain.ErrMovieNotFound
	}
	return nil
}
