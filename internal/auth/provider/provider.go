package provider

import (
	"context"

	"finlight-auth/internal/auth"
)

// Flow is the OAuth wire-flow contract every external provider
// implements. Implementations exchange the authorization code and
// return the provider's raw attribute payload; turning that payload
// into an identity is the normalizer's job, and no user creation,
// linking, or session management happens here.
type Flow interface {
	// Name returns the provider identifier (e.g. "google", "kakao").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// Exchange trades the authorization code for the provider's raw
	// user attributes.
	Exchange(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (map[string]any, error)
}

// Registry holds all configured OAuth flows and allows lookup by
// provider name. It performs no auth logic itself.
type Registry struct {
	flows map[string]Flow
}

// NewRegistry registers the given OAuth flows by name.
// Provider names must be unique.
func NewRegistry(list ...Flow) *Registry {
	m := make(map[string]Flow)
	for _, f := range list {
		m[f.Name()] = f
	}
	return &Registry{flows: m}
}

// Get returns the OAuth flow by name or ErrUnsupportedProvider.
func (r *Registry) Get(name string) (Flow, error) {
	f, ok := r.flows[name]
	if !ok {
		return nil, auth.ErrUnsupportedProvider
	}
	return f, nil
}
