package auth

// Identity is a normalized external authentication identity as produced
// by a provider normalizer. It contains facts only, no decisions.
type Identity struct {
	Provider   string // e.g. "google", "kakao"
	ProviderID string // provider-scoped unique user identifier
	Email      string // provider email, or deterministic placeholder
	Nickname   string // provider display name, or synthesized fallback
}

// ExternalKey returns the unique key that disambiguates this identity
// from local accounts and from other providers.
func (i Identity) ExternalKey() string {
	return i.Provider + "_" + i.ProviderID
}

// LocalExternalKey builds the external key for a password account.
func LocalExternalKey(email string) string {
	return "local_" + email
}
