package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finlight-auth/internal/auth/credentials"
	"finlight-auth/internal/session"
	"finlight-auth/internal/user"
)

// TokenIssuer mints and verifies the bearer credentials. Satisfied by
// token.Issuer; declared here so the coordinator depends on behavior,
// not on the signing implementation.
type TokenIssuer interface {
	IssueAccess(subject string) (string, error)
	IssueSession(subject string) (string, error)
	Verify(token string) (string, error)
	SessionTTL() time.Duration
}

// IdentityResolver maps a federated identity to an internal user ID,
// creating the user on first sight. Satisfied by resolver.StoreResolver.
type IdentityResolver interface {
	Resolve(ctx context.Context, identity *Identity) (string, error)
}

// Tokens is the result of a successful login or rotation. The session
// token has already been saved server-side when Tokens is returned, so
// emitting it as a cookie afterwards can never hand the client a
// credential the store does not know about.
type Tokens struct {
	AccessToken  string
	SessionToken string
	Subject      string
	SessionTTL   time.Duration
}

// Coordinator owns the login / rotation / logout state machine. It is
// the sole writer of session records; the token issuer and the stores
// never call each other directly. It keeps no mutable state of its
// own, so one instance serves all requests concurrently.
type Coordinator struct {
	users    user.Store
	sessions session.Store
	tokens   TokenIssuer
	resolver IdentityResolver
}

func NewCoordinator(
	users user.Store,
	sessions session.Store,
	tokens TokenIssuer,
	resolver IdentityResolver,
) *Coordinator {
	return &Coordinator{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		resolver: resolver,
	}
}

// SignUp creates a local password account. External-key and nickname
// collisions both come back as ErrDuplicateAccount.
func (c *Coordinator) SignUp(
	ctx context.Context,
	email, nickname, password string,
) (*user.Profile, error) {

	key := LocalExternalKey(email)

	existing, err := c.users.FindByExternalKey(ctx, key)
	if err != nil {
		return nil, storeErr(err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	taken, err := c.users.ExistsByNickname(ctx, nickname)
	if err != nil {
		return nil, storeErr(err)
	}
	if taken {
		return nil, ErrDuplicateAccount
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return nil, err
	}

	saved, err := c.users.Save(ctx, &user.User{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: hash,
		ExternalKey:  key,
	})
	if errors.Is(err, user.ErrDuplicateKey) {
		// A concurrent signup won the race between the lookup above
		// and this insert; same outcome as finding it up front.
		return nil, ErrDuplicateAccount
	}
	if err != nil {
		return nil, storeErr(err)
	}

	profile := saved.Profile()
	return &profile, nil
}

// Login authenticates a local account. Unknown email and wrong
// password are indistinguishable to the caller.
func (c *Coordinator) Login(
	ctx context.Context,
	email, password string,
) (*Tokens, error) {

	u, err := c.users.FindByExternalKey(ctx, LocalExternalKey(email))
	if err != nil {
		return nil, storeErr(err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := credentials.VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return c.issue(ctx, u.ID)
}

// FederatedLogin authenticates a normalized provider identity,
// creating the account on first sight, then follows the same issuance
// path as local login.
func (c *Coordinator) FederatedLogin(
	ctx context.Context,
	identity *Identity,
) (*Tokens, error) {

	subject, err := c.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	return c.issue(ctx, subject)
}

// Rotate exchanges a still-valid session token for a fresh pair.
// A session token is single-use for this purpose: once rotated, replay
// of the old token fails the store match even though its signature is
// still intact.
func (c *Coordinator) Rotate(
	ctx context.Context,
	sessionToken string,
) (*Tokens, error) {

	if sessionToken == "" {
		return nil, ErrNoSessionToken
	}

	subject, err := c.tokens.Verify(sessionToken)
	if err != nil {
		return nil, ErrInvalidSessionToken
	}

	ok, err := c.sessions.Verify(ctx, subject, sessionToken)
	if err != nil {
		return nil, storeErr(err)
	}
	if !ok {
		// Cryptographically intact but superseded or revoked.
		return nil, ErrSessionMismatch
	}

	if err := c.sessions.Delete(ctx, subject); err != nil {
		return nil, storeErr(err)
	}

	return c.issue(ctx, subject)
}

// Logout revokes the subject's session record. Deleting an absent
// record is a success, so logout is idempotent.
func (c *Coordinator) Logout(ctx context.Context, subject string) error {
	if err := c.sessions.Delete(ctx, subject); err != nil {
		return storeErr(err)
	}
	return nil
}

// Me returns the public projection for an already-authenticated
// subject.
func (c *Coordinator) Me(ctx context.Context, subject string) (*user.Profile, error) {
	u, err := c.users.FindByID(ctx, subject)
	if err != nil {
		return nil, storeErr(err)
	}
	if u == nil {
		return nil, ErrIdentityNotFound
	}
	profile := u.Profile()
	return &profile, nil
}

// issue mints both tokens and records the session token server-side
// before returning. Save must complete first; the cookie is emitted by
// the caller only after this returns.
func (c *Coordinator) issue(ctx context.Context, subject string) (*Tokens, error) {
	access, err := c.tokens.IssueAccess(subject)
	if err != nil {
		return nil, err
	}

	sessionToken, err := c.tokens.IssueSession(subject)
	if err != nil {
		return nil, err
	}

	ttl := c.tokens.SessionTTL()
	if err := c.sessions.Save(ctx, subject, sessionToken, ttl); err != nil {
		return nil, storeErr(err)
	}

	return &Tokens{
		AccessToken:  access,
		SessionToken: sessionToken,
		Subject:      subject,
		SessionTTL:   ttl,
	}, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
