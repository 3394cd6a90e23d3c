package user

import (
	"context"
	"errors"
)

// ErrDuplicateKey is returned by Save when a unique constraint
// (external key or nickname) rejects the insert. This is how a
// concurrent writer that loses the check-then-insert race finds out.
var ErrDuplicateKey = errors.New("user: duplicate key")

// Store is the user persistence collaborator. Implementations return
// (nil, nil) from the finders when no row matches; errors are reserved
// for infrastructure failures.
type Store interface {
	FindByExternalKey(ctx context.Context, key string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	Save(ctx context.Context, u *User) (*User, error)
}
