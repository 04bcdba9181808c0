// response стандартизирует ответы HTTP-слоя menu-service.
//
// Каждый ответ, включая ошибки, 404/405 маршрутизатора и паники,
// оборачивается в единый конверт Envelope. ToHTTP — единственная точка
// перевода ошибок сервисного слоя в HTTP-статус и сообщение.
package response

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/menu-service/internal/auth"
	"github.com/pribylovaa/menu-service/internal/pkg/log"
	"github.com/pribylovaa/menu-service/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// Сообщения конверта.
const (
	MsgValidation       = "Erro de validação"
	MsgInternal         = "Erro interno do servidor"
	MsgInvalidLogin     = "Usuário ou senha inválidos"
	MsgUnauthorized     = "Não autorizado"
	MsgMalformedRequest = "Requisição inválida"
	MsgRouteNotFound    = "Recurso não encontrado"
	MsgMethodNotAllowed = "Método não permitido"
	MsgCanceled         = "Requisição cancelada"
	MsgTimeout          = "Tempo limite da requisição excedido"
)

var (
	// ErrMalformedRequest — тело запроса не разобрано (битый JSON, неизвестные поля).
	ErrMalformedRequest = errors.New("malformed request")
	// ErrRouteNotFound — маршрут не зарегистрирован.
	ErrRouteNotFound = errors.New("route not found")
	// ErrMethodNotAllowed — маршрут есть, метода нет.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Envelope — единый формат ответа для клиента.
type Envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	Data      any                 `json:"data,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и конверт.
//
// Поведение:
//   - *service.ValidationError -> 400, ошибки по полям;
//   - *service.DuplicateNameError -> 400, сообщение с конфликтующим именем;
//   - *service.NotFoundError -> 404;
//   - auth.ErrInvalidCredentials / auth.ErrInvalidToken -> 401;
//   - ErrMalformedRequest -> 400, ErrRouteNotFound -> 404, ErrMethodNotAllowed -> 405;
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504;
//   - err == nil или что угодно ещё -> 500 без деталей.
func ToHTTP(err error) (int, Envelope) {
	env := Envelope{Timestamp: now()}

	var (
		verr *service.ValidationError
		derr *service.DuplicateNameError
		nerr *service.NotFoundError
	)

	switch {
	case err == nil:
		env.Message = MsgInternal
		return http.StatusInternalServerError, env
	case errors.As(err, &verr):
		env.Message = MsgValidation
		env.Errors = verr.Fields
		return http.StatusBadRequest, env
	case errors.As(err, &derr):
		env.Message = derr.Error()
		return http.StatusBadRequest, env
	case errors.As(err, &nerr):
		env.Message = nerr.Error()
		return http.StatusNotFound, env
	case errors.Is(err, auth.ErrInvalidCredentials):
		env.Message = MsgInvalidLogin
		return http.StatusUnauthorized, env
	case errors.Is(err, auth.ErrInvalidToken):
		env.Message = MsgUnauthorized
		return http.StatusUnauthorized, env
	case errors.Is(err, ErrMalformedRequest):
		env.Message = MsgMalformedRequest
		return http.StatusBadRequest, env
	case errors.Is(err, ErrRouteNotFound):
		env.Message = MsgRouteNotFound
		return http.StatusNotFound, env
	case errors.Is(err, ErrMethodNotAllowed):
		env.Message = MsgMethodNotAllowed
		return http.StatusMethodNotAllowed, env
	case errors.Is(err, context.Canceled):
		env.Message = MsgCanceled
		return StatusClientClosedRequest, env
	case errors.Is(err, context.DeadlineExceeded):
		env.Message = MsgTimeout
		return http.StatusGatewayTimeout, env
	default:
		env.Message = MsgInternal
		return http.StatusInternalServerError, env
	}
}

// WriteError пишет конверт ошибки. 5xx логируются с деталями, клиенту они не уходят.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := ToHTTP(err)

	if status >= http.StatusInternalServerError {
		errText := "<nil>"
		if err != nil {
			errText = err.Error()
		}

		log.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "request_failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("err", errText),
		)
	}

	writeJSON(w, status, env)
}

// WriteSuccess пишет успешный конверт с данными.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

var now = func() time.Time { return time.Now().UTC() }
