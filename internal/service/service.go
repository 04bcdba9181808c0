// service содержит бизнес-правила menu-service:
// валидацию полей меню, уникальность имени и сценарии CRUD поверх storage.
package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pribylovaa/menu-service/internal/storage"
)

var (
	// ErrValidation — входные данные не прошли валидацию (HTTP 400).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound — сущность не найдена (HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName — имя меню уже занято (HTTP 400).
	ErrDuplicateName = errors.New("duplicate name")
	// ErrInternal — внутренняя ошибка сервиса (HTTP 500).
	ErrInternal = errors.New("internal")
)

// ValidationError — ошибки валидации, сгруппированные по полям.
type ValidationError struct {
	Fields map[string][]string
}

// Add добавляет сообщение к полю.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError — сущность Entity с ключом Key отсутствует.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s com ID '%v' não foi encontrado.", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateNameError — конфликт имени меню. OnUpdate меняет формулировку сообщения.
type DuplicateNameError struct {
	Name     string
	OnUpdate bool
}

func (e *DuplicateNameError) Error() string {
	if e.OnUpdate {
		return fmt.Sprintf("Já existe outro menu com o nome '%s'", e.Name)
	}

	return fmt.Sprintf("Já existe um menu com o nome '%s'", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// menuEntity — имя сущности в сообщениях NotFoundError.
const menuEntity = "Menu"

// Service — описывает бизнес-логику menu-service.
type Service struct {
	storage storage.MenuStorage
	now     func() time.Time
}

// New создает новый экземпляр Service.
func New(st storage.MenuStorage) *Service {
	return &Service{
		storage: st,
		now:     time.Now,
	}
}

// timestamp — текущее время в UTC с точностью до микросекунд (как timestamptz).
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
