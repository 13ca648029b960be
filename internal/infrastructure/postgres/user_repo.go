package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (id, email, username, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, username, password_hash, created_at`

	row := r.pool.QueryRow(ctx, query, user.ID, user.Email, user.Username, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateAccount
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, username, password_hash, created_at
		FROM users
		WHERE email = $1`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, username, password_hash, created_at
		FROM users
		WHERE id = $1`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// UpsertWatched replaces any prior entry for the same movie in a single
// statement, so the (user, movie) key never holds a half-written row and
// concurrent writers resolve to last-write-wins.
func (r *UserRepository) UpsertWatched(ctx context.Context, userID string, entry domain.WatchedEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO watched_movies (user_id, movie_id, rating, review, watched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, movie_id) DO UPDATE
		SET rating = EXCLUDED.rating,
		    review = EXCLUDED.review,
		    watched_at = EXCLUDED.watched_at`,
		userID, entry.MovieID, entry.Rating, entry.Review, entry.WatchedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert watched: %w", err)
	}
	return nil
}

func (r *UserRepository) ListWatched(ctx context.Context, userID string) ([]domain.WatchedEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT movie_id, rating, review, watched_at
		FROM watched_movies
		WHERE user_id = $1
		ORDER BY watched_at DESC, movie_id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list watched: %w", err)
	}
	defer rows.Close()

	entries := []domain.WatchedEntry{}
	for rows.Next() {
		var e domain.WatchedEntry
		if err := rows.Scan(&e.MovieID, &e.Rating, &e.Review, &e.WatchedAt); err != nil {
			return nil, fmt.Errorf("scan watched entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID string, movieID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (user_id, movie_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, movie_id) DO NOTHING`,
		userID, movieID,
	)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID string, movieID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND movie_id = $2`,
		userID, movieID,
	)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *UserRepository) ListFavorites(ctx context.Context, userID string) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT movie_id FROM favorites
		WHERE user_id = $1
		ORDER BY created_at ASC, movie_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
