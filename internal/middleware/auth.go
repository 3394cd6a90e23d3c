package middleware

import (
	"context"
	"net/http"
	"strings"
)

// unexported, collision-proof context key
type subjectContextKeyType struct{}

var subjectKey = subjectContextKeyType{}

// SubjectFromContext extracts the authenticated subject from context.
func SubjectFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(subjectKey).(string)
	return id, ok
}

// Verifier is the token check the gate needs; token.Issuer satisfies it.
type Verifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware is the request gate: it resolves the bearer access
// token into a subject before the request reaches business logic.
// Session tokens never pass here; they are only accepted by the
// reissue endpoint.
type AuthMiddleware struct {
	Tokens Verifier
}

func NewAuthMiddleware(tokens Verifier) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read bearer token
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Verify; any failure is the same unauthorized outcome
		subject, err := a.Tokens.Verify(strings.TrimPrefix(header, prefix))
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Attach subject to context
		ctx := context.WithValue(r.Context(), subjectKey, subject)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
