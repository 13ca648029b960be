package repository

import (
	"context"

	"github.com/amartov/kinolog/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Viewing state. All writes are single-statement upserts/deletes keyed by
	// (user, movie), so concurrent calls for the same key resolve to
	// last-write-wins and different users never contend.
	UpsertWatched(ctx context.Context, userID string, entry domain.WatchedEntry) error
	ListWatched(ctx context.Context, userID string) ([]domain.WatchedEntry, error)
	AddFavorite(ctx context.Context, userID string, movieID int64) error
	RemoveFavorite(ctx context.Context, userID string, movieID int64) error
	ListFavorites(ctx context.Context, userID string) ([]int64, error)
}
