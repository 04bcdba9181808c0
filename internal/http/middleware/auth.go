package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pribylovaa/menu-service/internal/auth"
	"github.com/pribylovaa/menu-service/internal/http/response"
)

// TokenValidator проверяет bearer-токен.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*auth.Claims, bool)
}

// RejectObserver получает уведомление об отказе в доступе (метрики).
type RejectObserver interface {
	ObserveAuthRejected()
}

// RequireAuth пропускает запрос дальше только с валидным "Authorization: Bearer <token>".
// Claims кладутся в контекст (ClaimsFrom); иначе — 401 в едином конверте.
func RequireAuth(v TokenValidator, obs RejectObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if ok {
				var claims *auth.Claims
				if claims, ok = v.Validate(r.Context(), token); ok {
					ctx := context.WithValue(r.Context(), ctxClaims, claims)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			if obs != nil {
				obs.ObserveAuthRejected()
			}
			w.Header().Set("WWW-Authenticate", `Bearer realm="menu-service"`)
			response.WriteError(w, r, auth.ErrInvalidToken)
		})
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) || len(header) <= len(prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
