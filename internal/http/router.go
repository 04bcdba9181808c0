package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pribylovaa/menu-service/internal/http/handlers"
	"github.com/pribylovaa/menu-service/internal/http/middleware"
	"github.com/pribylovaa/menu-service/internal/http/response"
	"github.com/pribylovaa/menu-service/internal/metrics"
)

// AuthService — логин, проверка токена по запросу клиента и авторизация запросов.
type AuthService interface {
	handlers.AuthService
	middleware.TokenValidator
}

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger         *slog.Logger
	Timeout        time.Duration
	BasePath       string   // например, "/api"; если пустой — роуты регистрируются на корне.
	AllowedOrigins []string // пустой список означает "*".
	Metrics        *metrics.Metrics
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(menus handlers.MenuService, authSvc AuthService, opts Options) http.Handler {
	root := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Middleware (внешний -> внутренний).
	root.Use(
		opts.Metrics.Middleware(),       // метрики видят и ответы Recover
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Recover(),            // паника логируется с request_id, 500 попадает в запись "http"
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"Location", "X-Request-Id"},
			MaxAge:         300,
		}),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	root.NotFound(notFound)
	root.MethodNotAllowed(methodNotAllowed)

	// Зависимости хендлеров.
	h := handlers.New(menus, authSvc, opts.Metrics, opts.BasePath)
	requireAuth := middleware.RequireAuth(authSvc, opts.Metrics)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		sub.NotFound(notFound)
		sub.MethodNotAllowed(methodNotAllowed)
		registerRoutes(sub, h, requireAuth)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, requireAuth)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, requireAuth middleware.Middleware) {
	// auth (публичные)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/validate", h.ValidateToken)

	// menu (только с bearer-токеном)
	r.Route("/menu", func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/", h.ListMenus)
		r.Get("/search", h.SearchMenus)
		r.Post("/", h.CreateMenu)
		r.Get("/{id}", h.GetMenu)
		r.Put("/{id}", h.UpdateMenu)
		r.Delete("/{id}", h.DeleteMenu)
	})
}

// Fallback — конверт 404 для путей вне API (корневой mux сервиса).
func Fallback(logger *slog.Logger) http.Handler {
	return middleware.Chain(http.HandlerFunc(notFound),
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recover(),
	)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	response.WriteError(w, r, response.ErrRouteNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.WriteError(w, r, response.ErrMethodNotAllowed)
}
