package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown account and wrong
	// password; callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateAccount is returned on external-key or nickname
	// collision at signup.
	ErrDuplicateAccount = errors.New("account already exists")

	// Session-token failures. All three surface to clients as the same
	// unauthorized outcome; the distinction exists for logs and tests.
	ErrNoSessionToken      = errors.New("no session token")
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrSessionMismatch     = errors.New("session token mismatch")

	ErrUnsupportedProvider = errors.New("unsupported oauth provider")

	ErrIdentityNotFound = errors.New("identity not found")

	// ErrInvalidToken is the single failure the token issuer reports,
	// regardless of whether parsing, signature, or expiry failed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrStoreUnavailable wraps session-store and user-store
	// infrastructure failures. It is the only retryable class and the
	// retry, if any, belongs to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")
)
