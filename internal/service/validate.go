package service

import (
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/menu-service/internal/models"
)

// Сообщения валидатора.
const (
	msgNameRequired  = "O nome do menu é obrigatório"
	msgNameTooLong   = "O nome do menu deve ter no máximo 255 caracteres"
	msgOrderPositive = "A ordem deve ser maior que zero"
	msgOrderTooLarge = "A ordem deve ser no máximo 2147483647"
	msgIconRequired  = "O ícone do menu é obrigatório"
	msgIconTooLong   = "O ícone deve ter no máximo 255 caracteres"
	msgDescTooLong   = "A descrição deve ter no máximo 1000 caracteres"
	msgStatusInvalid = "O status deve ser 'Ativo' ou 'Inativo'"
	msgIDInvalid     = "O ID deve ser um número inteiro positivo"
)

// validateMenuInput проверяет поля и возвращает разобранный статус.
// Незаданный статус становится Active. Длины считаются в рунах.
func validateMenuInput(in models.MenuInput) (models.MenuStatus, *ValidationError) {
	verr := &ValidationError{}

	switch {
	case strings.TrimSpace(in.Name) == "":
		verr.Add(models.FieldName, msgNameRequired)
	case utf8.RuneCountInString(in.Name) > models.MenuNameMaxLen:
		verr.Add(models.FieldName, msgNameTooLong)
	}

	switch {
	case in.Order <= 0:
		verr.Add(models.FieldOrder, msgOrderPositive)
	case int64(in.Order) > models.MenuOrderMax:
		verr.Add(models.FieldOrder, msgOrderTooLarge)
	}

	switch {
	case strings.TrimSpace(in.Icon) == "":
		verr.Add(models.FieldIcon, msgIconRequired)
	case utf8.RuneCountInString(in.Icon) > models.MenuIconMaxLen:
		verr.Add(models.FieldIcon, msgIconTooLong)
	}

	if in.Description != nil && utf8.RuneCountInString(*in.Description) > models.MenuDescriptionMaxLen {
		verr.Add(models.FieldDescription, msgDescTooLong)
	}

	status, err := models.ParseMenuStatus(in.RawStatus)
	if err != nil {
		verr.Add(models.FieldStatus, msgStatusInvalid)
	}
	if status == models.MenuStatusUnspecified {
		status = models.MenuStatusActive
	}

	if verr.empty() {
		return status, nil
	}

	return status, verr
}

// InvalidIDError — ошибка валидации для нечислового или неположительного id из пути.
func InvalidIDError() *ValidationError {
	verr := &ValidationError{}
	verr.Add(models.FieldID, msgIDInvalid)
	return verr
}
