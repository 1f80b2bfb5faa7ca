package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"user-service/internal/domain"
	"user-service/internal/repository"
)

func newTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewUserRepository(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return repo
}

func testUser(username string) *domain.User {
	return &domain.User{
		FirstName:    "ana",
		LastName:     "lopez",
		Username:     username,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, testUser("ana1"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id <= 0 {
		t.Fatalf("Create() id = %d, want positive", id)
	}

	byName, err := repo.GetByUsername(ctx, "ana1")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if byName.ID != id || byName.FirstName != "ana" || byName.LastName != "lopez" {
		t.Errorf("GetByUsername() = %+v, want the created user", byName)
	}

	byID, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.Username != "ana1" {
		t.Errorf("GetByID().Username = %q, want %q", byID.Username, "ana1")
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, testUser("ana1")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := repo.Create(ctx, testUser("ana1"))
	if err == nil {
		t.Fatal("Create() should fail for a duplicate username")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Create() error = %v, want an already-exists error", err)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByUsername(ctx, "ghost"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("GetByUsername() error = %v, want a not-found error", err)
	}
	if _, err := repo.GetByID(ctx, 42); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("GetByID() error = %v, want a not-found error", err)
	}
}

func TestUserRepository_ListAndExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, username := range []string{"ana1", "benito2", "carla3"} {
		if _, err := repo.Create(ctx, testUser(username)); err != nil {
			t.Fatalf("Create(%s) error = %v", username, err)
		}
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("List() returned %d users, want 3", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i-1].ID >= users[i].ID {
			t.Errorf("List() not ordered by id: %d before %d", users[i-1].ID, users[i].ID)
		}
	}

	exists, err := repo.ExistsByUsername(ctx, "benito2")
	if err != nil {
		t.Fatalf("ExistsByUsername() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByUsername(benito2) = false, want true")
	}

	exists, err = repo.ExistsByUsername(ctx, "ghost")
	if err != nil {
		t.Fatalf("ExistsByUsername() error = %v", err)
	}
	if exists {
		t.Error("ExistsByUsername(ghost) = true, want false")
	}
}
