// menuclient — Go-клиент REST API menu-service.
//
// Клиент хранит сессию (токен и имя пользователя) в TokenStore и
// подставляет "Authorization: Bearer" во все запросы к /menu. Ответ 401
// на защищённый запрос очищает сохранённую сессию.
package menuclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNotLoggedIn — в хранилище нет сессии.
var ErrNotLoggedIn = errors.New("not logged in")

// Menu — пункт меню в том виде, в каком его отдаёт API.
type Menu struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nome"`
	Order       int       `json:"ordem"`
	Icon        string    `json:"icone"`
	Description *string   `json:"descricao,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"criadoEm"`
	UpdatedAt   time.Time `json:"atualizadoEm"`
}

// MenuInput — тело создания и обновления. Пустой Status сервер трактует как "Ativo".
type MenuInput struct {
	Name        string  `json:"nome"`
	Order       int     `json:"ordem"`
	Icon        string  `json:"icone"`
	Description *string `json:"descricao,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// LoginResult — ответ на успешный логин.
type LoginResult struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresIn int64  `json:"expiresIn"`
}

// APIError — неуспешный ответ сервера.
type APIError struct {
	Status  int
	Message string
	Errors  map[string][]string
}

// Error выводит сообщение и ошибки полей в виде "поле: msg1, msg2".
func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}

	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s", e.Status, e.Message)
	for _, f := range fields {
		fmt.Fprintf(&b, "\n  %s: %s", f, strings.Join(e.Errors[f], ", "))
	}

	return b.String()
}

// IsUnauthorized сообщает, что сервер ответил 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// Client — клиент menu-service.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (по умолчанию таймаут 10s).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore задаёт хранилище сессии (по умолчанию MemoryStore).
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.store = s }
}

// New создаёт клиент. baseURL — адрес API вместе с префиксом, например "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login выполняет вход и сохраняет токен вместе с именем пользователя.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	const op = "menuclient/Login"

	var out LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, false, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := c.store.Save(Session{Token: out.Token, Username: out.Username}); err != nil {
		return nil, fmt.Errorf("%s: save session: %w", op, err)
	}

	return &out, nil
}

// Logout удаляет сохранённую сессию. Сервер не участвует: токены не отзываются.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Session возвращает сохранённую сессию или ErrNotLoggedIn.
func (c *Client) Session() (Session, error) {
	return c.store.Load()
}

// ValidateToken спрашивает у сервера, валиден ли токен.
// Любая ошибка транспорта трактуется как невалидный токен.
func (c *Client) ValidateToken(ctx context.Context, token string) bool {
	var valid bool
	if err := c.do(ctx, http.MethodPost, "/auth/validate", map[string]string{"token": token}, false, &valid); err != nil {
		return false
	}

	return valid
}

func (c *Client) List(ctx context.Context) ([]Menu, error) {
	var out []Menu
	if err := c.do(ctx, http.MethodGet, "/menu", nil, true, &out); err != nil {
		return nil, fmt.Errorf("menuclient/List: %w", err)
	}

	return out, nil
}

// Search ищет меню по подстроке имени; пустая строка возвращает все меню.
func (c *Client) Search(ctx context.Context, name string) ([]Menu, error) {
	path := "/menu/search"
	if name != "" {
		path += "?" + url.Values{"nome": {name}}.Encode()
	}

	var out []Menu
	if err := c.do(ctx, http.MethodGet, path, nil, true, &out); err != nil {
		return nil, fmt.Errorf("menuclient/Search: %w", err)
	}

	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*Menu, error) {
	var out Menu
	if err := c.do(ctx, http.MethodGet, menuPath(id), nil, true, &out); err != nil {
		return nil, fmt.Errorf("menuclient/Get: %w", err)
	}

	return &out, nil
}

func (c *Client) Create(ctx context.Context, in MenuInput) (*Menu, error) {
	var out Menu
	if err := c.do(ctx, http.MethodPost, "/menu", in, true, &out); err != nil {
		return nil, fmt.Errorf("menuclient/Create: %w", err)
	}

	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, in MenuInput) (*Menu, error) {
	var out Menu
	if err := c.do(ctx, http.MethodPut, menuPath(id), in, true, &out); err != nil {
		return nil, fmt.Errorf("menuclient/Update: %w", err)
	}

	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, menuPath(id), nil, true, nil); err != nil {
		return fmt.Errorf("menuclient/Delete: %w", err)
	}

	return nil
}

func menuPath(id int64) string {
	return "/menu/" + strconv.FormatInt(id, 10)
}

// do выполняет запрос и разбирает конверт. Для protected-запросов
// подставляет токен и очищает сессию на 401.
func (c *Client) do(ctx context.Context, method, path string, in any, protected bool, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if protected {
		if sess, err := c.store.Load(); err == nil {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		} else if !errors.Is(err, ErrNotLoggedIn) {
			return fmt.Errorf("load session: %w", err)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("unexpected response: %v", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		if protected && resp.StatusCode == http.StatusUnauthorized {
			_ = c.store.Clear()
		}

		return &APIError{Status: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}

	return nil
}
