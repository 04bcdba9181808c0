// auth содержит аутентификацию menu-service:
// проверку учётных данных (CredentialVerifier), выпуск и проверку
// подписанных HS256 токенов (TokenManager) и сценарий логина (Service).
//
// Токены не хранятся на сервере: валидность определяется подписью,
// issuer/audience и сроком жизни.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/menu-service/internal/pkg/log"
	"github.com/pribylovaa/menu-service/internal/pkg/redact"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна. Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — токен отсутствует или не прошёл проверку. Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")
)

// ConfigurationError — параметры токенов непригодны; процесс не должен стартовать.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("jwt configuration: %s: %s", e.Field, e.Reason)
}

// Principal — аутентифицированный субъект.
type Principal struct {
	ID       string
	Username string
	Roles    []string
}

// CredentialVerifier проверяет пару логин/пароль.
// Реализация возвращает ErrInvalidCredentials при несовпадении.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*Principal, error)
}

// LoginResult — результат успешного логина.
type LoginResult struct {
	Token     string
	Username  string
	ExpiresIn int64
	ExpiresAt time.Time
}

// Service — сценарий логина и проверки токенов.
type Service struct {
	verifier CredentialVerifier
	tokens   *TokenManager
}

// New создает новый экземпляр Service.
func New(verifier CredentialVerifier, tokens *TokenManager) *Service {
	return &Service{
		verifier: verifier,
		tokens:   tokens,
	}
}

// Login проверяет учётные данные и выпускает токен.
// Ошибки: ErrInvalidCredentials; прочие ошибки верификатора и подписи возвращаются обёрнутыми.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	const op = "auth/Login"
	lg := log.From(ctx).With("op", op, "username", redact.Username(username))

	principal, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			lg.Warn("login_failed")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		lg.Error("verifier error", "err", err)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, expiresAt, err := s.tokens.Issue(ctx, principal.ID, principal.Username, principal.Roles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("login_succeeded", "expires_at", expiresAt)

	return &LoginResult{
		Token:     token,
		Username:  principal.Username,
		ExpiresIn: s.tokens.ExpiresIn(),
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken сообщает, валиден ли токен. Ошибок не возвращает.
func (s *Service) ValidateToken(ctx context.Context, token string) bool {
	_, ok := s.tokens.Validate(ctx, token)
	return ok
}

// Validate проверяет токен и возвращает его claims; используется middleware авторизации.
func (s *Service) Validate(ctx context.Context, token string) (*Claims, bool) {
	return s.tokens.Validate(ctx, token)
}
