package resolver

import (
	"context"
	"strings"
	"testing"

	"finlight-auth/internal/auth"
	"finlight-auth/internal/user"
)

// stubUserStore drives Resolve through its lookup/insert paths.
// With missFirstLookup set, the first FindByExternalKey misses even
// when the row exists, mimicking a concurrent writer that commits
// between the lookup and the insert.
type stubUserStore struct {
	byKey           map[string]*user.User
	saves           int
	saveErr         error
	missFirstLookup bool
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byKey: make(map[string]*user.User)}
}

func (s *stubUserStore) FindByExternalKey(_ context.Context, key string) (*user.User, error) {
	if s.missFirstLookup {
		s.missFirstLookup = false
		return nil, nil
	}
	if u, ok := s.byKey[key]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (s *stubUserStore) FindByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range s.byKey {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) ExistsByNickname(context.Context, string) (bool, error) {
	return false, nil
}

func (s *stubUserStore) Save(_ context.Context, u *user.User) (*user.User, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.saves++
	saved := *u
	saved.ID = "user-" + u.ExternalKey
	s.byKey[saved.ExternalKey] = &saved
	return &saved, nil
}

func TestResolveCreatesWithMarkerCredential(t *testing.T) {
	store := newStubUserStore()
	r := NewStoreResolver(store)

	id, err := r.Resolve(context.Background(), &auth.Identity{
		Provider:   "google",
		ProviderID: "42",
		Email:      "hong@gmail.com",
		Nickname:   "Hong",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id == "" {
		t.Fatal("Resolve returned empty user ID")
	}

	created := store.byKey["google_42"]
	if created == nil {
		t.Fatal("user was not created under its external key")
	}
	if created.PasswordHash == "" || !strings.HasPrefix(created.PasswordHash, "$2") {
		t.Fatalf("credential marker is not a bcrypt hash: %q", created.PasswordHash)
	}
}

func TestResolveReusesExistingUser(t *testing.T) {
	store := newStubUserStore()
	r := NewStoreResolver(store)
	identity := &auth.Identity{Provider: "kakao", ProviderID: "7", Email: "a@kakao.com", Nickname: "A"}

	first, err := r.Resolve(context.Background(), identity)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := r.Resolve(context.Background(), identity)
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	if first != second {
		t.Fatalf("same identity resolved to %q then %q", first, second)
	}
	if store.saves != 1 {
		t.Fatalf("save count = %d, want 1", store.saves)
	}
}

func TestResolveLosingInsertRaceResolvesToWinner(t *testing.T) {
	store := newStubUserStore()
	r := NewStoreResolver(store)

	// The initial lookup misses, the insert then fails on the unique
	// index because a concurrent login committed first. Resolve must
	// re-read and return the winner's user instead of erroring.
	store.byKey["google_42"] = &user.User{
		ID:          "winner-id",
		Email:       "hong@gmail.com",
		Nickname:    "Hong",
		ExternalKey: "google_42",
	}
	store.missFirstLookup = true
	store.saveErr = user.ErrDuplicateKey

	id, err := r.Resolve(context.Background(), &auth.Identity{
		Provider:   "google",
		ProviderID: "42",
		Email:      "hong@gmail.com",
		Nickname:   "Hong",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != "winner-id" {
		t.Fatalf("Resolve = %q, want winner-id", id)
	}
}
