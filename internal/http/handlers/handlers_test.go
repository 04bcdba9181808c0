package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/menu-service/internal/auth"
	"github.com/pribylovaa/menu-service/internal/config"
	"github.com/pribylovaa/menu-service/internal/http/middleware"
	"github.com/pribylovaa/menu-service/internal/pkg/log"
	"github.com/pribylovaa/menu-service/internal/service"
	"github.com/pribylovaa/menu-service/internal/storage/memory"
	"github.com/pribylovaa/menu-service/mocks"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

type loginCounter struct{ ok, failed int }

func (c *loginCounter) ObserveLogin(ok bool) {
	if ok {
		c.ok++
		return
	}
	c.failed++
}

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()

	tokens, err := auth.NewTokenManager(config.JWTConfig{
		Secret:            "handlers-test-secret-0123456789abcd",
		Issuer:            "menu-service",
		Audience:          "menu-client",
		ExpirationMinutes: 60,
	})
	require.NoError(t, err)

	v, err := auth.NewStaticVerifier("admin", "admin123")
	require.NoError(t, err)

	return auth.New(v, tokens)
}

// newTestRouter регистрирует обработчики без middleware авторизации.
func newTestRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Post("/auth/login", h.Login)
	r.Post("/auth/validate", h.ValidateToken)
	r.Get("/menu", h.ListMenus)
	r.Get("/menu/search", h.SearchMenus)
	r.Get("/menu/{id}", h.GetMenu)
	r.Post("/menu", h.CreateMenu)
	r.Put("/menu/{id}", h.UpdateMenu)
	r.Delete("/menu/{id}", h.DeleteMenu)
	return r
}

func newMemoryHandlers(t *testing.T) (http.Handler, *loginCounter) {
	t.Helper()

	obs := &loginCounter{}
	h := New(service.New(memory.New()), newAuthService(t), obs, "/api")
	return newTestRouter(h), obs
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, strings.NewReader(body)))

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr, env
}

func TestLogin(t *testing.T) {
	t.Parallel()

	h, obs := newMemoryHandlers(t)

	rr, env := do(t, h, http.MethodPost, "/auth/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, env.Success)
	require.Equal(t, "Login realizado com sucesso", env.Message)

	var data struct {
		Token     string `json:"token"`
		Username  string `json:"username"`
		ExpiresIn int64  `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	require.Equal(t, "admin", data.Username)
	require.EqualValues(t, 3600, data.ExpiresIn)

	rr, env = do(t, h, http.MethodPost, "/auth/login", `{"username":"admin","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, env.Success)
	require.Equal(t, "Usuário ou senha inválidos", env.Message)

	rr, env = do(t, h, http.MethodPost, "/auth/login", `{"username":`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "Requisição inválida", env.Message)

	require.Equal(t, 1, obs.ok)
	require.Equal(t, 1, obs.failed)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	h, _ := newMemoryHandlers(t)

	_, env := do(t, h, http.MethodPost, "/auth/login", `{"username":"admin","password":"admin123"}`)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	rr, env := do(t, h, http.MethodPost, "/auth/validate", `{"token":"`+data.Token+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Token válido", env.Message)
	require.JSONEq(t, "true", string(env.Data))

	rr, env = do(t, h, http.MethodPost, "/auth/validate", `{"token":"garbage"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, env.Success)
	require.Equal(t, "Token inválido", env.Message)
	require.JSONEq(t, "false", string(env.Data))

	rr, _ = do(t, h, http.MethodPost, "/auth/validate", `{"token":"x","extra":1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMenuCRUD(t *testing.T) {
	t.Parallel()

	h, _ := newMemoryHandlers(t)

	rr, env := do(t, h, http.MethodGet, "/menu", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, "[]", string(env.Data))

	rr, env = do(t, h, http.MethodPost, "/menu", `{"nome":"Dashboard","ordem":1,"icone":"dashboard","descricao":"Painel"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "Menu criado com sucesso", env.Message)
	require.Equal(t, "/api/menu/1", rr.Header().Get("Location"))

	var created struct {
		ID        int64  `json:"id"`
		Name      string `json:"nome"`
		Status    string `json:"status"`
		Desc      string `json:"descricao"`
		CreatedAt string `json:"criadoEm"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.EqualValues(t, 1, created.ID)
	require.Equal(t, "Ativo", created.Status)
	require.Equal(t, "Painel", created.Desc)
	require.NotEmpty(t, created.CreatedAt)

	rr, env = do(t, h, http.MethodPost, "/menu", `{"nome":"Dashboard","ordem":2,"icone":"x"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "Já existe um menu com o nome 'Dashboard'", env.Message)

	rr, env = do(t, h, http.MethodGet, "/menu/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Menu obtido com sucesso", env.Message)

	rr, env = do(t, h, http.MethodPut, "/menu/1", `{"nome":"Dashboard","ordem":3,"icone":"dash","status":"Inativo"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Menu atualizado com sucesso", env.Message)
	require.Contains(t, string(env.Data), `"status":"Inativo"`)

	rr, env = do(t, h, http.MethodGet, "/menu/search?nome=dash", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Busca realizada com sucesso", env.Message)
	require.Contains(t, string(env.Data), `"nome":"Dashboard"`)

	rr, env = do(t, h, http.MethodDelete, "/menu/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Menu deletado com sucesso", env.Message)
	require.JSONEq(t, "true", string(env.Data))

	rr, env = do(t, h, http.MethodGet, "/menu/1", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Menu com ID '1' não foi encontrado.", env.Message)

	rr, _ = do(t, h, http.MethodDelete, "/menu/1", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMenu_ValidationErrors(t *testing.T) {
	t.Parallel()

	h, _ := newMemoryHandlers(t)

	rr, env := do(t, h, http.MethodPost, "/menu", `{"nome":"","ordem":0,"icone":"","status":"Ligado"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "Erro de validação", env.Message)
	require.Contains(t, env.Errors, "nome")
	require.Contains(t, env.Errors, "ordem")
	require.Contains(t, env.Errors, "icone")
	require.Contains(t, env.Errors, "status")

	for _, target := range []string{"/menu/abc", "/menu/0", "/menu/-3"} {
		rr, env = do(t, h, http.MethodGet, target, "")
		require.Equal(t, http.StatusBadRequest, rr.Code, target)
		require.Contains(t, env.Errors, "id", target)
	}

	rr, env = do(t, h, http.MethodPost, "/menu", `{"nome":"Grande","ordem":3000000000,"icone":"x"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, []string{"A ordem deve ser no máximo 2147483647"}, env.Errors["ordem"])

	rr, _ = do(t, h, http.MethodPut, "/menu/1", `not json`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr, env = do(t, h, http.MethodPut, "/menu/42", `{"nome":"X","ordem":1,"icone":"x"}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Menu com ID '42' não foi encontrado.", env.Message)
}

func TestMenu_StorageFailureIs500WithoutDetails(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockMenuStorage(ctrl)
	st.EXPECT().ListMenus(gomock.Any()).Return(nil, errors.New("connection refused: db-host:5432"))

	h := newTestRouter(New(service.New(st), newAuthService(t), nil, "/api"))

	rr, env := do(t, h, http.MethodGet, "/menu", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "Erro interno do servidor", env.Message)
	require.NotContains(t, rr.Body.String(), "db-host")
}

func TestMenu_CanceledContextIs499(t *testing.T) {
	t.Parallel()

	h, _ := newMemoryHandlers(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/menu", nil).WithContext(ctx))

	require.Equal(t, 499, rr.Code)
}

// recHandler собирает сообщения и атрибуты записей (включая накопленные через With).
type recHandler struct {
	base    []slog.Attr
	records *[]map[string]any
}

func (h recHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recHandler) Handle(_ context.Context, r slog.Record) error {
	rec := map[string]any{"msg": r.Message}
	for _, a := range h.base {
		rec[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec[a.Key] = a.Value.Any()
		return true
	})
	*h.records = append(*h.records, rec)
	return nil
}

func (h recHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return recHandler{base: append(append([]slog.Attr(nil), h.base...), attrs...), records: h.records}
}

func (h recHandler) WithGroup(string) slog.Handler { return h }

func TestCreateMenu_LogsActorFromToken(t *testing.T) {
	t.Parallel()

	authSvc := newAuthService(t)
	res, err := authSvc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	h := New(service.New(memory.New()), authSvc, nil, "/api")
	r := chi.NewRouter()
	r.With(middleware.RequireAuth(authSvc, nil)).Post("/menu", h.CreateMenu)

	var records []map[string]any
	ctx := log.Into(context.Background(), slog.New(recHandler{records: &records}))

	req := httptest.NewRequest(http.MethodPost, "/menu", strings.NewReader(`{"nome":"Dashboard","ordem":1,"icone":"d"}`)).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+res.Token)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created map[string]any
	for _, rec := range records {
		if rec["msg"] == "menu_created" {
			created = rec
		}
	}
	require.NotNil(t, created)
	require.Equal(t, "ad***", created["actor"])
}
