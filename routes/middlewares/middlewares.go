package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/joules19/chowmate-web-sub002/httpx"
	"github.com/joules19/chowmate-web-sub002/log"
)

type ctxKey int

const respondentKey ctxKey = iota

// Respondent lets anonymous requests through and records the token subject
// of authenticated ones. A token that is present but invalid is refused.
func Respondent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		switch {
		case errors.Is(err, jwtauth.ErrNoTokenFound):
			next.ServeHTTP(w, r)
			return
		case err != nil:
			httpx.LogStatusMsg(w, http.StatusUnauthorized, log.DebugLevel, "auth.respondent", "invalid token: %s", err)
			return
		}

		sub, _ := claims["sub"].(string)
		ctx := context.WithValue(r.Context(), respondentKey, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RespondentFrom returns the authenticated respondent, empty when anonymous.
func RespondentFrom(ctx context.Context) string {
	sub, _ := ctx.Value(respondentKey).(string)
	return sub
}

// Admin middleware to check for the 'admin' role in a bearer token.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "auth.admin.token")
			return
		}

		if !hasRole(claims["roles"], "admin") {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "auth.admin.role")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// roles come either as one comma-separated string or as a list
func hasRole(claim any, want string) bool {
	var roles []string
	switch v := claim.(type) {
	case string:
		roles = strings.Split(v, ",")
	case []any:
		for _, role := range v {
			if s, ok := role.(string); ok {
				roles = append(roles, s)
			}
		}
	case []string:
		roles = v
	}
	for _, role := range roles {
		if strings.TrimSpace(role) == want {
			return true
		}
	}
	return false
}
