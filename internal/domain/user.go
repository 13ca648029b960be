package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateAccount   = errors.New("account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

// User is the durable account record. PasswordHash never leaves the
// auth/repository layers — responses are built from PublicUser.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// WatchedEntry records that a user watched a movie. The (user, movie) pair
// is the natural key: re-recording the same movie replaces the entry.
type WatchedEntry struct {
	MovieID   int64     `json:"movie_id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	WatchedAt time.Time `json:"watched_at"`
}

// PublicUser is the client-facing projection of a User.
type PublicUser struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Username  string         `json:"username"`
	CreatedAt time.Time      `json:"created_at"`
	Watched   []WatchedEntry `json:"watched"`
	Favorites []int64        `json:"favorites"`
}

// Public builds the projection of u with the given viewing state.
// Slices are normalized so JSON clients always see arrays, not null.
func (u *User) Public(watched []WatchedEntry, favorites []int64) PublicUser {
	if watched == nil {
		watched = []WatchedEntry{}
	}
	if favorites == nil {
		favorites = []int64{}
	}
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		Watched:   watched,
		Favorites: favorites,
	}
}
