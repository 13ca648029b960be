package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 100

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

func (r *MovieRepository) List(ctx context.Context, filter domain.MovieFilter) ([]*domain.Movie, error) {
	args := []any{}
	where := []string{}

	if filter.Genre != "" {
		args = append(args, filter.Genre)
		where = append(where, fmt.Sprintf("genre = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where = append(where, fmt.Sprintf("year = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR director ILIKE $%d)",
			len(args), len(args), len(args)))
	}

	limit := filter.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, title, year, genre, rating, description, duration,
		       poster_url, director, country
		FROM movies
		%s
		ORDER BY rating DESC, id ASC
		LIMIT $%d`,
		whereClause(where), len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `
		SELECT id, title, year, genre, rating, description, duration,
		       poster_url, director, country
		FROM movies
		WHERE id = $1`

	return scanMovie(r.pool.QueryRow(ctx, query, id))
}

func (r *MovieRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("movie exists: %w", err)
	}
	return exists, nil
}

// RefreshRatings folds user watched ratings back into the catalog. Movies
// nobody has rated keep their seeded rating.
func (r *MovieRepository) RefreshRatings(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE movies m
		SET rating = sub.avg_rating
		FROM (
			SELECT movie_id, ROUND(AVG(rating)::numeric, 1) AS avg_rating
			FROM watched_movies
			GROUP BY movie_id
		) sub
		WHERE m.id = sub.movie_id AND m.rating IS DISTINCT FROM sub.avg_rating`)
	if err != nil {
		return 0, fmt.Errorf("refresh ratings: %w", err)
	}
	return tag.RowsAffected(), nil
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Year, &m.Genre, &m.Rating,
		&m.Description, &m.Duration, &m.PosterURL, &m.Director, &m.Country)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("scan movie: %w", err)
	}
	return &m, nil
}
