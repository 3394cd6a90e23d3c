package resolver

import (
	"context"
	"errors"
	"fmt"

	"finlight-auth/internal/auth"
	"finlight-auth/internal/auth/credentials"
	"finlight-auth/internal/user"
	"finlight-auth/internal/utils"
)

// StoreResolver resolves identities against the user store, creating
// the user record on first sight of an external key.
type StoreResolver struct {
	users user.Store
}

func NewStoreResolver(users user.Store) *StoreResolver {
	return &StoreResolver{users: users}
}

func (r *StoreResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
) (string, error) {

	if identity == nil {
		return "", errors.New("identity is nil")
	}

	key := identity.ExternalKey()

	existing, err := r.users.FindByExternalKey(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	// Federated accounts never carry a real password. Each gets a hash
	// of its own random marker so no two accounts share a crackable
	// hash, and password login against it can never succeed.
	marker, err := credentials.HashPassword(utils.RandomString(32))
	if err != nil {
		return "", err
	}

	saved, err := r.users.Save(ctx, &user.User{
		Email:        identity.Email,
		Nickname:     identity.Nickname,
		PasswordHash: marker,
		ExternalKey:  key,
	})
	if errors.Is(err, user.ErrDuplicateKey) {
		// A concurrent login for the same identity created the user
		// between the lookup and the insert; resolve to the winner.
		winner, ferr := r.users.FindByExternalKey(ctx, key)
		if ferr != nil {
			return "", fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, ferr)
		}
		if winner != nil {
			return winner.ID, nil
		}
		return "", fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}

	return saved.ID, nil
}
