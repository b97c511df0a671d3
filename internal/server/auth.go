package server

import (
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Stuart1162/fizzyjuice/internal/config"
	commonhttp "github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
	publicapp "github.com/Stuart1162/fizzyjuice/internal/public/application"
)

type authClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// tokenVerifier は複数の JWT 設定を順番に試し、署名検証と Issuer/Audience の整合性を確認する。
type tokenVerifier struct {
	configs  []config.JWTConfig
	audience string
	now      func() time.Time
}

func (v tokenVerifier) parse(tokenString string) (*authClaims, error) {
	if len(v.configs) == 0 {
		return nil, fmt.Errorf("auth is not configured")
	}
	now := time.Now
	if v.now != nil {
		now = v.now
	}

	for _, cfg := range v.configs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second), jwt.WithTimeFunc(now))

		if err != nil || !token.Valid {
			continue
		}
		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if v.audience != "" && !slices.Contains(claims.Audience, v.audience) {
			continue
		}
		return claims, nil
	}

	return nil, fmt.Errorf("invalid access token")
}

// sessionMiddleware builds the per-request session. No Authorization header means anonymous;
// a malformed or invalid token is rejected with 401.
func sessionMiddleware(verifier tokenVerifier, resolver publicapp.SessionResolver, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				commonhttp.WriteJSON(nil, w, http.StatusUnauthorized, commonhttp.ErrorResponse{Error: "use a Bearer token", SignIn: true})
				return
			}
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
			if tokenString == "" {
				commonhttp.WriteJSON(nil, w, http.StatusUnauthorized, commonhttp.ErrorResponse{Error: "access token is empty", SignIn: true})
				return
			}

			claims, err := verifier.parse(tokenString)
			if err != nil {
				commonhttp.WriteJSON(nil, w, http.StatusUnauthorized, commonhttp.ErrorResponse{Error: err.Error(), SignIn: true})
				return
			}

			session, err := resolver.Resolve(r.Context(), claims.Subject, claims.Email, claims.Name)
			if err != nil {
				commonhttp.WriteError(logger, w, err, "failed to load session")
				return
			}

			ctx := commonhttp.ContextWithUser(r.Context(), commonhttp.AuthenticatedUser{
				ID:    claims.Subject,
				Email: claims.Email,
				Name:  claims.Name,
			})
			ctx = commonhttp.ContextWithSession(ctx, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
