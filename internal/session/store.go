package session

import (
	"context"
	"time"
)

// Store is the server-side authority for which session token is
// currently valid per subject. At most one token is live per subject;
// saving replaces whatever was stored before, which is how rotation
// invalidates a stale token whose signature is still intact.
type Store interface {
	// Save records token as the current session token for subject.
	// Last write wins.
	Save(ctx context.Context, subject, token string, ttl time.Duration) error

	// Verify reports whether an unexpired record exists for subject
	// and its stored token equals the provided one. Infrastructure
	// failures come back as errors, never as false.
	Verify(ctx context.Context, subject, token string) (bool, error)

	// Delete removes the subject's record. Deleting a missing record
	// is a no-op success.
	Delete(ctx context.Context, subject string) error
}
