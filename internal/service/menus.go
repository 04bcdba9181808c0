package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/menu-service/internal/models"
	"github.com/pribylovaa/menu-service/internal/pkg/log"
	"github.com/pribylovaa/menu-service/internal/storage"
)

// List возвращает все меню, отсортированные по order.
// Пустой результат — пустой срез без ошибки.
func (s *Service) List(ctx context.Context) ([]models.Menu, error) {
	const op = "service/menus/List"
	lg := log.From(ctx).With("op", op)

	result, err := s.storage.ListMenus(ctx)
	if err != nil {
		lg.Error("storage error on ListMenus", "err", err)

		return nil, internal(op, err)
	}

	return result, nil
}

// Search ищет меню по подстроке имени без учёта регистра.
// Пустая строка эквивалентна List.
func (s *Service) Search(ctx context.Context, name string) ([]models.Menu, error) {
	const op = "service/menus/Search"
	lg := log.From(ctx).With("op", op, "query", name)

	result, err := s.storage.SearchMenus(ctx, name)
	if err != nil {
		lg.Error("storage error on SearchMenus", "err", err)

		return nil, internal(op, err)
	}

	return result, nil
}

// MenuByID возвращает меню по id.
// Поведение: при отсутствии записи возвращает *NotFoundError (errors.Is(err, ErrNotFound)).
func (s *Service) MenuByID(ctx context.Context, id int64) (*models.Menu, error) {
	const op = "service/menus/MenuByID"
	lg := log.From(ctx).With("op", op, "menu_id", id)

	result, err := s.menuByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			lg.Warn("menu not found")
		} else {
			lg.Error("storage error on MenuByID", "err", err)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// Create создаёт меню.
//
// Порядок: валидация полей -> проверка уникальности имени -> метки времени -> запись.
// Ошибки: *ValidationError, *DuplicateNameError (в том числе при гонке, пойманной хранилищем),
// ErrInternal для прочих ошибок хранилища.
func (s *Service) Create(ctx context.Context, in models.MenuInput) (*models.Menu, error) {
	const op = "service/menus/Create"
	lg := log.From(ctx).With("op", op, "name", in.Name)

	status, verr := validateMenuInput(in)
	if verr != nil {
		lg.Warn("invalid argument", "fields", verr.Fields)

		return nil, fmt.Errorf("%s: %w", op, verr)
	}

	exists, err := s.storage.MenuNameExists(ctx, in.Name, 0)
	if err != nil {
		lg.Error("storage error on MenuNameExists", "err", err)

		return nil, internal(op, err)
	}
	if exists {
		lg.Warn("duplicate menu name")

		return nil, fmt.Errorf("%s: %w", op, &DuplicateNameError{Name: in.Name})
	}

	now := s.timestamp()
	menu := &models.Menu{
		Name:        in.Name,
		Order:       in.Order,
		Icon:        in.Icon,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := s.storage.CreateMenu(ctx, menu)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Warn("duplicate menu name on insert")

			return nil, fmt.Errorf("%s: %w", op, &DuplicateNameError{Name: in.Name})
		}
		lg.Error("storage error on CreateMenu", "err", err)

		return nil, internal(op, err)
	}

	lg.Info("menu_created", "menu_id", result.ID)

	return result, nil
}

// Update полностью заменяет изменяемые поля меню id.
//
// Порядок: валидация -> поиск записи -> уникальность имени среди остальных -> запись.
// Переименование меню в его же текущее имя допустимо.
func (s *Service) Update(ctx context.Context, id int64, in models.MenuInput) (*models.Menu, error) {
	const op = "service/menus/Update"
	lg := log.From(ctx).With("op", op, "menu_id", id, "name", in.Name)

	status, verr := validateMenuInput(in)
	if verr != nil {
		lg.Warn("invalid argument", "fields", verr.Fields)

		return nil, fmt.Errorf("%s: %w", op, verr)
	}

	current, err := s.menuByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			lg.Warn("menu not found")
		} else {
			lg.Error("storage error on MenuByID", "err", err)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := s.storage.MenuNameExists(ctx, in.Name, id)
	if err != nil {
		lg.Error("storage error on MenuNameExists", "err", err)

		return nil, internal(op, err)
	}
	if exists {
		lg.Warn("duplicate menu name")

		return nil, fmt.Errorf("%s: %w", op, &DuplicateNameError{Name: in.Name, OnUpdate: true})
	}

	current.Name = in.Name
	current.Order = in.Order
	current.Icon = in.Icon
	current.Description = in.Description
	current.Status = status
	current.UpdatedAt = s.timestamp()
	if current.UpdatedAt.Before(current.CreatedAt) {
		current.UpdatedAt = current.CreatedAt
	}

	result, err := s.storage.UpdateMenu(ctx, current)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			lg.Warn("duplicate menu name on update")

			return nil, fmt.Errorf("%s: %w", op, &DuplicateNameError{Name: in.Name, OnUpdate: true})
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("menu disappeared before update")

			return nil, fmt.Errorf("%s: %w", op, &NotFoundError{Entity: menuEntity, Key: id})
		default:
			lg.Error("storage error on UpdateMenu", "err", err)

			return nil, internal(op, err)
		}
	}

	lg.Info("menu_updated")

	return result, nil
}

// Delete удаляет меню id; *NotFoundError, если его нет.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "service/menus/Delete"
	lg := log.From(ctx).With("op", op, "menu_id", id)

	if _, err := s.menuByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			lg.Warn("menu not found")
		} else {
			lg.Error("storage error on MenuByID", "err", err)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	deleted, err := s.storage.DeleteMenu(ctx, id)
	if err != nil {
		lg.Error("storage error on DeleteMenu", "err", err)

		return internal(op, err)
	}
	if !deleted {
		lg.Warn("menu disappeared before delete")

		return fmt.Errorf("%s: %w", op, &NotFoundError{Entity: menuEntity, Key: id})
	}

	lg.Info("menu_deleted")

	return nil
}

// menuByID переводит storage.ErrNotFound в *NotFoundError, прочие ошибки — в ErrInternal.
func (s *Service) menuByID(ctx context.Context, id int64) (*models.Menu, error) {
	result, err := s.storage.MenuByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Entity: menuEntity, Key: id}
		}

		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return result, nil
}

// internal оборачивает ошибку хранилища в ErrInternal, сохраняя цепочку
// (транспорт отличает отмену контекста и таймаут от прочих сбоев).
func internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
