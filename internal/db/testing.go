package db

import (
	"context"
	"path/filepath"
	"testing"
)

// NewTestStore returns a migrated store in a temporary directory for tests in
// any package. The store is closed when the test ends.
func NewTestStore(t testing.TB) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	ctx := context.Background()
	store, err := NewStore(ctx, dbPath)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}

	return store
}

// MustCreateAccount inserts a free account with a placeholder hash.
func MustCreateAccount(t testing.TB, s *Store, email string) Account {
	t.Helper()
	acct, err := s.CreateAccount(context.Background(), CreateAccountParams{
		Email:        email,
		PasswordHash: "test-hash",
		Plan:         "free",
	})
	if err != nil {
		t.Fatalf("create account %s: %v", email, err)
	}
	return acct
}
