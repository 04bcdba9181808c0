package models

import "time"

// MenuResponse — меню в ответах REST API.
type MenuResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nome"`
	Order       int       `json:"ordem"`
	Icon        string    `json:"icone"`
	Description *string   `json:"descricao,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"criadoEm"`
	UpdatedAt   time.Time `json:"atualizadoEm"`
}

// MenuRequest — тело POST /menu и PUT /menu/{id}.
// Status необязателен: пустое значение означает "Ativo".
type MenuRequest struct {
	Name        string  `json:"nome"`
	Order       int     `json:"ordem"`
	Icon        string  `json:"icone"`
	Description *string `json:"descricao"`
	Status      string  `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresIn int64  `json:"expiresIn"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}
