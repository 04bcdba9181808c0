// models содержит доменные сущности menu-service.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"fmt"
	"math"
	"time"
)

// MenuStatus — статус пункта меню. Нулевое значение означает «не задан».
type MenuStatus int8

const (
	MenuStatusUnspecified MenuStatus = iota
	MenuStatusActive
	MenuStatusInactive
)

// Текстовые значения статуса на проводе.
const (
	StatusActiveText   = "Ativo"
	StatusInactiveText = "Inativo"
)

func (s MenuStatus) String() string {
	switch s {
	case MenuStatusActive:
		return StatusActiveText
	case MenuStatusInactive:
		return StatusInactiveText
	default:
		return "unspecified"
	}
}

// Valid сообщает, является ли значение одним из допустимых статусов.
func (s MenuStatus) Valid() bool {
	return s == MenuStatusActive || s == MenuStatusInactive
}

// ParseMenuStatus разбирает текстовый статус. Пустая строка даёт MenuStatusUnspecified без ошибки.
func ParseMenuStatus(s string) (MenuStatus, error) {
	switch s {
	case "":
		return MenuStatusUnspecified, nil
	case StatusActiveText:
		return MenuStatusActive, nil
	case StatusInactiveText:
		return MenuStatusInactive, nil
	default:
		return MenuStatusUnspecified, fmt.Errorf("unknown menu status %q", s)
	}
}

// Ограничения полей меню (в рунах).
const (
	MenuNameMaxLen        = 255
	MenuIconMaxLen        = 255
	MenuDescriptionMaxLen = 1000
)

// MenuOrderMax — верхняя граница order, совпадает с INTEGER в PostgreSQL.
const MenuOrderMax = math.MaxInt32

// Имена полей в ответах об ошибках валидации.
const (
	FieldName        = "nome"
	FieldOrder       = "ordem"
	FieldIcon        = "icone"
	FieldDescription = "descricao"
	FieldStatus      = "status"
	FieldID          = "id"
)

// Menu — внутренняя доменная модель пункта навигации.
// Description == nil означает отсутствие описания.
type Menu struct {
	ID          int64
	Name        string
	Order       int
	Icon        string
	Description *string
	Status      MenuStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuInput — изменяемые поля меню, приходящие от клиента при создании и обновлении.
// RawStatus хранит исходную строку, чтобы валидатор мог сообщить о неверном значении.
type MenuInput struct {
	Name        string
	Order       int
	Icon        string
	Description *string
	RawStatus   string
}
