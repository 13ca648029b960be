package usecase_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/amartov/kinolog/internal/domain"
	"github.com/amartov/kinolog/internal/usecase"
)

// memoryStateRepo keeps viewing state keyed exactly like the store does:
// one entry per (user, movie). It backs the idempotence tests.
type memoryStateRepo struct {
	fakeUserRepo
	watched   map[string]map[int64]domain.WatchedEntry
	favorites map[string]map[int64]struct{}
}

func newMemoryStateRepo() *memoryStateRepo {
	return &memoryStateRepo{
		watched:   make(map[string]map[int64]domain.WatchedEntry),
		favorites: make(map[string]map[int64]struct{}),
	}
}

func (r *memoryStateRepo) UpsertWatched(_ context.Context, userID string, entry domain.WatchedEntry) error {
	if r.watched[userID] == nil {
		r.watched[userID] = make(map[int64]domain.WatchedEntry)
	}
	r.watched[userID][entry.MovieID] = entry
	return nil
}

func (r *memoryStateRepo) ListWatched(_ context.Context, userID string) ([]domain.WatchedEntry, error) {
	entries := []domain.WatchedEntry{}
	for _, e := range r.watched[userID] {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].MovieID < entries[j].MovieID })
	return entries, nil
}

func (r *memoryStateRepo) AddFavorite(_ context.Context, userID string, movieID int64) error {
	if r.favorites[userID] == nil {
		r.favorites[userID] = make(map[int64]struct{})
	}
	r.favorites[userID][movieID] = struct{}{}
	return nil
}

func (r *memoryStateRepo) RemoveFavorite(_ context.Context, userID string, movieID int64) error {
	delete(r.favorites[userID], movieID)
	return nil
}

func (r *memoryStateRepo) ListFavorites(_ context.Context, userID string) ([]int64, error) {
	ids := []int64{}
	for id := range r.favorites[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeMovieRepo struct {
	exists func(ctx context.Context, id int64) (bool, error)
}

func (r *fakeMovieRepo) List(_ context.Context, _ domain.MovieFilter) ([]*domain.Movie, error) {
	return nil, nil
}

func (r *fakeMovieRepo) GetByID(_ context.Context, _ int64) (*domain.Movie, error) {
	return nil, domain.ErrMovieNotFound
}

func (r *fakeMovieRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, id)
}

func (r *fakeMovieRepo) RefreshRatings(_ context.Context) (int64, error) {
	return 0, nil
}

func allMoviesExist() *fakeMovieRepo {
	return &fakeMovieRepo{
		exists: func(_ context.Context, _ int64) (bool, error) { return true, nil },
	}
}

// ---- RecordWatched ----

func TestRecordWatched_RepeatedCall_LeavesOneEntry(t *testing.T) {
	repo := newMemoryStateRepo()
	uc := usecase.NewUserStateUsecase(repo, allMoviesExist())

	for i := 0; i < 3; i++ {
		if _, err := uc.RecordWatched(context.Background(), "user-1", 42, 5, "great"); err != nil {
			t.Fatalf("record watched: %v", err)
		}
	}

	watched, _ := repo.ListWatched(context.Background(), "user-1")
	if len(watched) != 1 {
		t.Fatalf("entries = %d, want exactly 1", len(watched))
	}
	if watched[0].Rating != 5 || watched[0].Review != "great" {
		t.Errorf("entry = %+v", watched[0])
	}
}

func TestRecordWatched_Rerecord_ReplacesEntry(t *testing.T) {
	repo := newMemoryStateRepo()
	uc := usecase.NewUserStateUsecase(repo, allMoviesExist())

	if _, err := uc.RecordWatched(context.Background(), "user-1", 42, 9, "loved it"); err != nil {
		t.Fatalf("record watched: %v", err)
	}
	watched, err := uc.RecordWatched(context.Background(), "user-1", 42, 7, "on rewatch, less so")
	if err != nil {
		t.Fatalf("record watched: %v", err)
	}

	if len(watched) != 1 {
		t.Fatalf("entries = %d, want 1 (upsert, not append)", len(watched))
	}
	if watched[0].Rating != 7 {
		t.Errorf("rating = %d, want 7 (fully overwritten)", watched[0].Rating)
	}
	if watched[0].Review != "on rewatch, less so" {
		t.Errorf("review = %q, want replacement", watched[0].Review)
	}
}

func TestRecordWatched_RatingOutOfRange_ValidationError(t *testing.T) {
	uc := usecase.NewUserStateUsecase(newMemoryStateRepo(), allMoviesExist())

	for _, rating := range []int{0, -1, 11} {
		if _, err := uc.RecordWatched(context.Background(), "user-1", 42, rating, ""); !errors.Is(err, usecase.ErrValidation) {
			t.Errorf("rating %d: want ErrValidation, got %v", rating, err)
		}
	}
}

func TestRecordWatched_UnknownMovie_NotFound(t *testing.T) {
	movies := &fakeMovieRepo{
		exists: func(_ context.Context, _ int64) (bool, error) { return false, nil },
	}
	uc := usecase.NewUserStateUsecase(newMemoryStateRepo(), movies)

	if _, err := uc.RecordWatched(context.Background(), "user-1", 999, 5, ""); !errors.Is(err, domain.ErrMovieNotFound) {
		t.Errorf("want ErrMovieNotFound, got %v", err)
	}
}

func TestRecordWatched_IsolatedPerUser(t *testing.T) {
	repo := newMemoryStateRepo()
	uc := usecase.NewUserStateUsecase(repo, allMoviesExist())

	if _, err := uc.RecordWatched(context.Background(), "user-1", 42, 5, ""); err != nil {
		t.Fatalf("record watched: %v", err)
	}
	if _, err := uc.RecordWatched(context.Background(), "user-2", 42, 8, ""); err != nil {
		t.Fatalf("record watched: %v", err)
	}

	first, _ := repo.ListWatched(context.Background(), "user-1")
	second, _ := repo.ListWatched(context.Background(), "user-2")
	if first[0].Rating != 5 || second[0].Rating != 8 {
		t.Errorf("cross-user interference: %+v / %+v", first, second)
	}
}

// ---- favorites ----

func TestAddFavorite_Twice_ContainsOnce(t *testing.T) {
	repo := newMemoryStateRepo()
	uc := usecase.NewUserStateUsecase(repo, allMoviesExist())

	if _, err := uc.AddFavorite(context.Background(), "user-1", 42); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	favorites, err := uc.AddFavorite(context.Background(), "user-1", 42)
	if err != nil {
		t.Fatalf("second add must be a no-op, got %v", err)
	}

	if len(favorites) != 1 || favorites[0] != 42 {
		t.Errorf("favorites = %v, want [42]", favorites)
	}
}

func TestRemoveFavorite_AbsentIsNoOp(t *testing.T) {
	repo := newMemoryStateRepo()
	uc := usecase.NewUserStateUsecase(repo, allMoviesExist())

	favorites, err := uc.RemoveFavorite(context.Background(), "user-1", 42)
	if err != nil {
		t.Fatalf("remove of absent favorite must be a no-op, got %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("favorites = %v, want empty", favorites)
	}
}

func TestFavorite_AddThenRemove_LeavesEmpty(t *testing.T) {
	repo := newMemoryStateRepo()
	uc := usecase.NewUserStateUsecase(repo, allMoviesExist())

	if _, err := uc.AddFavorite(context.Background(), "user-1", 42); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	favorites, err := uc.RemoveFavorite(context.Background(), "user-1", 42)
	if err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("favorites = %v, want empty", favorites)
	}
}

func TestAddFavorite_UnknownMovie_NotFound(t *testing.T) {
	movies := &fakeMovieRepo{
		exists: func(_ context.Context, _ int64) (bool, error) { return false, nil },
	}
	uc := usecase.NewUserStateUsecase(newMemoryStateRepo(), movies)

	if _, err := uc.AddFavorite(context.Background(), "user-1", 999); !errors.Is(err, domain.ErrMovieNotFound) {
		t.Errorf("want ErrMovieNotFound, got %v", err)
	}
}
