package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomString returns a URL-safe string with the given number of
// random bytes behind it. Used for OAuth state, PKCE verifiers and
// federated credential markers.
func RandomString(bytes int) string {
	b := make([]byte, bytes)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
