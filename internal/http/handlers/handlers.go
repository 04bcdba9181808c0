package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/menu-service/internal/auth"
	"github.com/pribylovaa/menu-service/internal/http/middleware"
	"github.com/pribylovaa/menu-service/internal/http/response"
	"github.com/pribylovaa/menu-service/internal/models"
	"github.com/pribylovaa/menu-service/internal/pkg/log"
	"github.com/pribylovaa/menu-service/internal/pkg/redact"
	"github.com/pribylovaa/menu-service/internal/service"
)

// Сообщения успешных ответов.
const (
	msgMenusListed    = "Menus obtidos com sucesso"
	msgMenusSearched  = "Busca realizada com sucesso"
	msgMenuFound      = "Menu obtido com sucesso"
	msgMenuCreated    = "Menu criado com sucesso"
	msgMenuUpdated    = "Menu atualizado com sucesso"
	msgMenuDeleted    = "Menu deletado com sucesso"
	msgLoginSucceeded = "Login realizado com sucesso"
	msgTokenValid     = "Token válido"
	msgTokenInvalid   = "Token inválido"
)

// MenuService — сценарии над меню, которые нужны транспорту.
type MenuService interface {
	List(ctx context.Context) ([]models.Menu, error)
	Search(ctx context.Context, name string) ([]models.Menu, error)
	MenuByID(ctx context.Context, id int64) (*models.Menu, error)
	Create(ctx context.Context, in models.MenuInput) (*models.Menu, error)
	Update(ctx context.Context, id int64, in models.MenuInput) (*models.Menu, error)
	Delete(ctx context.Context, id int64) error
}

// AuthService — логин и проверка токенов.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	ValidateToken(ctx context.Context, token string) bool
}

// LoginObserver учитывает исходы логина (метрики). Может быть nil.
type LoginObserver interface {
	ObserveLogin(ok bool)
}

// Handlers агрегирует зависимости REST-обработчиков.
type Handlers struct {
	Menus    MenuService
	Auth     AuthService
	Observer LoginObserver

	// BasePath — префикс для заголовка Location, например "/api".
	BasePath string
}

func New(menus MenuService, authSvc AuthService, obs LoginObserver, basePath string) *Handlers {
	return &Handlers{
		Menus:    menus,
		Auth:     authSvc,
		Observer: obs,
		BasePath: basePath,
	}
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
// Любая ошибка разбора превращается в response.ErrMalformedRequest.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: %w", response.ErrMalformedRequest, err)
	}

	return nil
}

// pathID разбирает {id} из пути; нечисловой или неположительный id — ошибка валидации.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.InvalidIDError()
	}

	return id, nil
}

func (h *Handlers) observeLogin(ok bool) {
	if h.Observer != nil {
		h.Observer.ObserveLogin(ok)
	}
}

// actorCtx добавляет в логгер запроса пользователя из токена, если он есть.
func actorCtx(r *http.Request) context.Context {
	ctx := r.Context()
	if claims, ok := middleware.ClaimsFrom(ctx); ok {
		return log.With(ctx, "actor", redact.Username(claims.Username))
	}

	return ctx
}
