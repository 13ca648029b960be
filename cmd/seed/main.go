// seed creates the schema and loads a starter movie catalog into the local
// dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"github.com/amartov/kinolog/internal/infrastructure/postgres"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL CHECK (password_hash <> ''),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		year        INT NOT NULL DEFAULT 0,
		genre       TEXT NOT NULL DEFAULT '',
		rating      NUMERIC(3,1) NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		duration    INT NOT NULL DEFAULT 0,
		poster_url  TEXT NOT NULL DEFAULT '',
		director    TEXT NOT NULL DEFAULT '',
		country     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS watched_movies (
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movie_id   BIGINT NOT NULL,
		rating     INT NOT NULL,
		review     TEXT NOT NULL DEFAULT '',
		watched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, movie_id)
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movie_id   BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, movie_id)
	)`,
}

type movieSpec struct {
	title    string
	year     int
	genre    string
	rating   float64
	duration int
	director string
	country  string
}

var movies = []movieSpec{
	{"The Shawshank Redemption", 1994, "drama", 9.3, 142, "Frank Darabont", "USA"},
	{"The Godfather", 1972, "crime", 9.2, 175, "Francis Ford Coppola", "USA"},
	{"The Dark Knight", 2008, "action", 9.0, 152, "Christopher Nolan", "USA"},
	{"Pulp Fiction", 1994, "crime", 8.9, 154, "Quentin Tarantino", "USA"},
	{"Forrest Gump", 1994, "drama", 8.8, 142, "Robert Zemeckis", "USA"},
	{"Inception", 2010, "sci-fi", 8.8, 148, "Christopher Nolan", "USA"},
	{"The Matrix", 1999, "sci-fi", 8.7, 136, "Lana Wachowski", "USA"},
	{"Interstellar", 2014, "sci-fi", 8.7, 169, "Christopher Nolan", "USA"},
	{"Parasite", 2019, "thriller", 8.5, 132, "Bong Joon-ho", "South Korea"},
	{"Spirited Away", 2001, "animation", 8.6, 125, "Hayao Miyazaki", "Japan"},
	{"The Green Mile", 1999, "drama", 8.6, 189, "Frank Darabont", "USA"},
	{"Leon", 1994, "thriller", 8.5, 110, "Luc Besson", "France"},
	{"Gladiator", 2000, "action", 8.5, 155, "Ridley Scott", "USA"},
	{"Amelie", 2001, "romance", 8.3, 122, "Jean-Pierre Jeunet", "France"},
	{"Whiplash", 2014, "drama", 8.5, 106, "Damien Chazelle", "USA"},
	{"Coco", 2017, "animation", 8.4, 105, "Lee Unkrich", "USA"},
	{"Joker", 2019, "drama", 8.4, 122, "Todd Phillips", "USA"},
	{"Back to the Future", 1985, "sci-fi", 8.5, 116, "Robert Zemeckis", "USA"},
	{"Alien", 1979, "horror", 8.5, 117, "Ridley Scott", "USA"},
	{"No Country for Old Men", 2007, "thriller", 8.2, 122, "Joel Coen", "USA"},
}

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("create schema: %v", err)
		}
	}
	log.Println("schema ready")

	var existing int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&existing); err != nil {
		log.Fatalf("count movies: %v", err)
	}
	if existing > 0 {
		log.Printf("catalog already has %d movies, skipping seed", existing)
		return
	}

	for _, m := range movies {
		_, err := pool.Exec(ctx, `
			INSERT INTO movies (title, year, genre, rating, duration, director, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.title, m.year, m.genre, m.rating, m.duration, m.director, m.country,
		)
		if err != nil {
			log.Fatalf("insert movie %q: %v", m.title, err)
		}
	}

	log.Printf("seeded %d movies", len(movies))
}
