package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pribylovaa/menu-service/internal/http/response"
	"github.com/pribylovaa/menu-service/internal/pkg/log"
)

// Recover перехватывает panic и отвечает конвертом 500 без деталей паники.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					log.From(r.Context()).
						LogAttrs(r.Context(), slog.LevelError, "panic",
							slog.String("path", r.URL.Path),
							slog.Any("reason", rec),
						)
					response.WriteError(w, r, fmt.Errorf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
