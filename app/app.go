package app

import (
	"database/sql"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/joules19/chowmate-web-sub002/cache"
	"github.com/joules19/chowmate-web-sub002/config"
	"github.com/pkg/errors"
)

type App struct {
	*sql.DB
	Cache cache.Surveys
	JWT   *jwtauth.JWTAuth
	config.Config
}

// NewJWT signs and verifies HS256 tokens with the configured secret.
func NewJWT(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// IssueToken mints a bearer token for subject. Roles travel as one
// comma-separated claim.
func IssueToken(auth *jwtauth.JWTAuth, subject string, roles []string, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{"sub": subject}
	if len(roles) > 0 {
		claims["roles"] = strings.Join(roles, ",")
	}
	jwtauth.SetIssuedNow(claims)
	if ttl > 0 {
		jwtauth.SetExpiryIn(claims, ttl)
	}
	_, token, err := auth.Encode(claims)
	if err != nil {
		return "", errors.Wrap(err, "token.encode")
	}
	return token, nil
}
