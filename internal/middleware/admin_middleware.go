package middleware

import (
	"net/http"
	"strings"

	"model_rankings/internal/auth"
	"model_rankings/internal/config"
	"model_rankings/internal/utils"
)

// AdminMiddleware gates admin routes behind a bearer token: either the
// configured admin key itself or a session JWT issued by the login
// endpoint. Missing or mismatched tokens get 401 with no side effect.
func AdminMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Missing admin token")
				return
			}

			if !auth.VerifyAdminKey(token, cfg.Admin.Key, cfg.Admin.KeyHash) {
				if err := auth.ValidateAdminJWT(token, cfg.Admin.JWTSecret); err != nil {
					utils.RespondWithError(w, http.StatusUnauthorized, "Invalid admin token")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
