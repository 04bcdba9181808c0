package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// StaticVerifier принимает ровно одну сконфигурированную пару логин/пароль.
// Пароль держится в памяти только как bcrypt-хэш.
type StaticVerifier struct {
	username     string
	passwordHash []byte
	principal    Principal
}

var _ CredentialVerifier = (*StaticVerifier)(nil)

// NewStaticVerifier хэширует пароль при создании.
// Субъект фиксирован: ID "1", роль "Admin".
func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	const op = "auth/NewStaticVerifier"

	if username == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", op, &ConfigurationError{Field: "credentials", Reason: "username and password must be set"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &StaticVerifier{
		username:     username,
		passwordHash: hash,
		principal: Principal{
			ID:       "1",
			Username: username,
			Roles:    []string{"Admin"},
		},
	}, nil
}

func (v *StaticVerifier) Verify(ctx context.Context, username, password string) (*Principal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	// хэш сравнивается и при неверном логине.
	passErr := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	p := v.principal
	p.Roles = append([]string(nil), v.principal.Roles...)

	return &p, nil
}
