package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/amartov/kinolog/internal/email"
	"github.com/amartov/kinolog/internal/repository"
	"github.com/google/uuid"
)

const minPasswordLength = 6

// ErrValidation wraps input problems the client must fix before retrying.
var ErrValidation = errors.New("invalid input")

// passwordHasher is the subset of auth.Hasher the flow needs.
type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
}

// tokenIssuer is the subset of auth.TokenService the flow needs.
type tokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher passwordHasher
	tokens tokenIssuer
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, hasher passwordHasher, tokens tokenIssuer, sender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		email:  sender,
		logger: logger.With("component", "auth_usecase"),
	}
}

// AuthResult is what both registration and login hand back to the client:
// a bearer token plus the public projection of the account.
type AuthResult struct {
	Token string
	User  domain.PublicUser
}

// Register creates an account, issues its first token, and sends a welcome
// email. The email is best effort and never fails the request.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, password, username string) (*AuthResult, error) {
	emailAddr = normalizeEmail(emailAddr)
	username = strings.TrimSpace(username)

	if emailAddr == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	if _, err := u.users.FindByEmail(ctx, emailAddr); err == nil {
		return nil, domain.ErrDuplicateAccount
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		// The unique index is the authority: a racing registration for the
		// same email loses here even though the lookup above saw nothing.
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if err := u.email.Send(ctx, user.Email, "Welcome to kinolog",
		fmt.Sprintf("<p>Hi %s, your movie log is ready.</p>", user.Username)); err != nil {
		u.logger.WarnContext(ctx, "welcome email", "error", err)
	}

	return &AuthResult{Token: token, User: user.Public(nil, nil)}, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password are indistinguishable to the caller so accounts cannot be
// enumerated.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*AuthResult, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	public, err := u.publicWithState(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: public}, nil
}

// CurrentUser returns the public projection for an authenticated id,
// hydrated with favorites and watched entries.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (domain.PublicUser, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.PublicUser{}, domain.ErrUserNotFound
		}
		return domain.PublicUser{}, fmt.Errorf("find user: %w", err)
	}
	return u.publicWithState(ctx, user)
}

func (u *AuthUsecase) publicWithState(ctx context.Context, user *domain.User) (domain.PublicUser, error) {
	watched, err := u.users.ListWatched(ctx, user.ID)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("list watched: %w", err)
	}
	favorites, err := u.users.ListFavorites(ctx, user.ID)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("list favorites: %w", err)
	}
	return user.Public(watched, favorites), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
