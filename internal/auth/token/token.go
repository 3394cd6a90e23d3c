package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"finlight-auth/internal/auth"
)

// Config is the signing configuration, built once at startup and
// immutable afterwards. The secret is shared by access and session
// tokens; only their TTLs differ.
type Config struct {
	Secret     []byte
	AccessTTL  time.Duration
	SessionTTL time.Duration
}

// Issuer mints and verifies the two bearer credentials: short-lived
// access tokens and long-lived session tokens. It holds no state
// beyond its configuration and never persists anything.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token: empty signing secret")
	}
	if cfg.AccessTTL <= 0 || cfg.SessionTTL <= 0 {
		return nil, errors.New("token: invalid TTL configuration")
	}
	return &Issuer{cfg: cfg}, nil
}

// SessionTTL exposes the session lifetime so the session store record
// and the cookie Max-Age stay aligned with the token's exp claim.
func (i *Issuer) SessionTTL() time.Duration {
	return i.cfg.SessionTTL
}

// IssueAccess signs a short-lived access token for subject.
func (i *Issuer) IssueAccess(subject string) (string, error) {
	return i.sign(subject, i.cfg.AccessTTL)
}

// IssueSession signs a long-lived session token for subject.
func (i *Issuer) IssueSession(subject string) (string, error) {
	return i.sign(subject, i.cfg.SessionTTL)
}

func (i *Issuer) sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		// Timestamps are second-granular, so the jti is what keeps two
		// tokens minted for one subject within the same second from
		// being byte-identical. Rotation depends on that: the fresh
		// session token must never equal the one it replaces.
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(i.cfg.Secret)
}

// Verify checks signature and expiry and returns the subject claim.
// It fails closed: parse errors, bad signatures, expired tokens and
// missing claims all collapse to auth.ErrInvalidToken so callers
// cannot act as a validity oracle.
func (i *Issuer) Verify(tokenStr string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
	)
	var claims jwt.RegisteredClaims
	tok, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return i.cfg.Secret, nil
	})
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", auth.ErrInvalidToken
	}
	return claims.Subject, nil
}
