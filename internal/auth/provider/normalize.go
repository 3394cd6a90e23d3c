package provider

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"finlight-auth/internal/auth"
)

// Normalizer converts one provider's raw attribute payload into the
// canonical identity tuple. Attribute nesting differs per provider,
// so each supported provider brings its own implementation; adding a
// provider means adding one Normalizer, not editing a dispatch chain.
type Normalizer interface {
	Provider() string
	Normalize(attrs map[string]any) (*auth.Identity, error)
}

// NormalizerSet dispatches to the Normalizer registered for a
// provider name.
type NormalizerSet struct {
	byName map[string]Normalizer
}

func NewNormalizerSet(list ...Normalizer) *NormalizerSet {
	m := make(map[string]Normalizer)
	for _, n := range list {
		m[n.Provider()] = n
	}
	return &NormalizerSet{byName: m}
}

func (s *NormalizerSet) Normalize(provider string, attrs map[string]any) (*auth.Identity, error) {
	n, ok := s.byName[provider]
	if !ok {
		return nil, auth.ErrUnsupportedProvider
	}
	return n.Normalize(attrs)
}

// placeholderEmail is deterministic on purpose: some providers omit
// email without extra consent scope, and repeated logins from the
// same account must keep resolving to the same address.
func placeholderEmail(provider, providerID string) string {
	return fmt.Sprintf("%s_%s@placeholder.invalid", provider, providerID)
}

// placeholderNickname is cosmetic only, so a fresh random suffix per
// call is fine.
func placeholderNickname(provider string) string {
	return provider + "User_" + uuid.NewString()[:8]
}

// stringAttr renders a raw attribute value as a string. Provider IDs
// arrive as strings from some providers and as JSON numbers from
// others (kakao's id is numeric).
func stringAttr(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// GoogleNormalizer reads google's flat userinfo shape:
//
//	{"sub": "...", "email": "...", "name": "..."}
type GoogleNormalizer struct{}

func (GoogleNormalizer) Provider() string { return "google" }

func (n GoogleNormalizer) Normalize(attrs map[string]any) (*auth.Identity, error) {
	id := stringAttr(attrs["sub"])
	if id == "" {
		return nil, fmt.Errorf("google payload missing sub")
	}

	email := strings.TrimSpace(stringAttr(attrs["email"]))
	if email == "" {
		email = placeholderEmail(n.Provider(), id)
	}

	nickname := strings.TrimSpace(stringAttr(attrs["name"]))
	if nickname == "" {
		nickname = placeholderNickname(n.Provider())
	}

	return &auth.Identity{
		Provider:   n.Provider(),
		ProviderID: id,
		Email:      email,
		Nickname:   nickname,
	}, nil
}

// KakaoNormalizer reads kakao's nested shape:
//
//	{"id": 123, "kakao_account": {"email": "...", "profile": {"nickname": "..."}}}
type KakaoNormalizer struct{}

func (KakaoNormalizer) Provider() string { return "kakao" }

func (n KakaoNormalizer) Normalize(attrs map[string]any) (*auth.Identity, error) {
	id := stringAttr(attrs["id"])
	if id == "" {
		return nil, fmt.Errorf("kakao payload missing id")
	}

	account, _ := attrs["kakao_account"].(map[string]any)

	email := strings.TrimSpace(stringAttr(account["email"]))
	if email == "" {
		email = placeholderEmail(n.Provider(), id)
	}

	profile, _ := account["profile"].(map[string]any)
	nickname := strings.TrimSpace(stringAttr(profile["nickname"]))
	if nickname == "" {
		nickname = placeholderNickname(n.Provider())
	}

	return &auth.Identity{
		Provider:   n.Provider(),
		ProviderID: id,
		Email:      email,
		Nickname:   nickname,
	}, nil
}
