package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/menu-service/internal/config"
	"github.com/pribylovaa/menu-service/internal/pkg/log"
)

// minSecretLen — минимальная длина HMAC-секрета.
const minSecretLen = 32

// Claims — полезная нагрузка токена.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет токены HS256.
// Безопасен для конкурентного использования.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenManager проверяет параметры и возвращает *ConfigurationError, если они непригодны.
func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	switch {
	case cfg.Secret == "":
		return nil, &ConfigurationError{Field: "secret", Reason: "must not be empty"}
	case len(cfg.Secret) < minSecretLen:
		return nil, &ConfigurationError{Field: "secret", Reason: fmt.Sprintf("must be at least %d characters", minSecretLen)}
	case strings.TrimSpace(cfg.Issuer) == "":
		return nil, &ConfigurationError{Field: "issuer", Reason: "must not be empty"}
	case strings.TrimSpace(cfg.Audience) == "":
		return nil, &ConfigurationError{Field: "audience", Reason: "must not be empty"}
	case cfg.ExpirationMinutes <= 0:
		return nil, &ConfigurationError{Field: "expiration_minutes", Reason: "must be greater than zero"}
	}

	return &TokenManager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TTL(),
		now:      time.Now,
	}, nil
}

// ExpiresIn — срок жизни токена в секундах.
func (m *TokenManager) ExpiresIn() int64 {
	return int64(m.ttl / time.Second)
}

// Issue подписывает токен для субъекта и возвращает его вместе со временем истечения.
func (m *TokenManager) Issue(ctx context.Context, subject, username string, roles []string) (string, time.Time, error) {
	const op = "auth/token/Issue"

	lg := log.From(ctx)

	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		lg.Error("token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	lg.Debug("token_issued",
		slog.String("op", op),
		slog.String("sub", subject),
		slog.String("jti", claims.ID),
		slog.Time("exp", claims.ExpiresAt.Time),
	)

	return signed, claims.ExpiresAt.Time, nil
}

// Validate проверяет подпись, алгоритм, issuer, audience и срок (без допуска на рассинхрон часов).
// Ошибок не возвращает: причина отказа пишется в лог, результат — false.
func (m *TokenManager) Validate(ctx context.Context, tokenStr string) (*Claims, bool) {
	const op = "auth/token/Validate"

	lg := log.From(ctx)

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: unexpected signing method %v", op, t.Header["alg"])
			}

			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		reason := rejectReason(err)
		if token != nil && token.Method != nil && token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			reason = "algorithm"
		}

		lg.Warn("token_rejected",
			slog.String("op", op),
			slog.String("reason", reason),
		)
		return nil, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		lg.Warn("token_rejected",
			slog.String("op", op),
			slog.String("reason", "subject_missing"),
		)
		return nil, false
	}

	return claims, true
}

// SubjectOf возвращает subject валидного токена.
func (m *TokenManager) SubjectOf(ctx context.Context, tokenStr string) (string, bool) {
	claims, ok := m.Validate(ctx, tokenStr)
	if !ok {
		return "", false
	}

	return claims.Subject, true
}

// rejectReason — короткий код причины отказа для логов.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "algorithm"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "not_yet_valid"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "issuer"
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return "audience"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "claim_missing"
	default:
		return "invalid"
	}
}
