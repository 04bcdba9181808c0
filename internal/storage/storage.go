// storage содержит контракты слоя хранилищ menu-service.
//
// Реализации: memory (эфемерная, в памяти процесса) и postgres (pgxpool).
// Бэкенд выбирается один раз при старте процесса.
package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/menu-service/internal/models"
)

var (
	// ErrNotFound — меню не найдено.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — меню с тем же именем уже существует.
	ErrAlreadyExists = errors.New("already exists")
)

// MenuStorage — контракт репозитория меню.
type MenuStorage interface {
	// ListMenus возвращает все меню, отсортированные по order, затем по id.
	ListMenus(ctx context.Context) ([]models.Menu, error)
	// SearchMenus ищет по подстроке имени без учёта регистра.
	// Пустая или пробельная подстрока эквивалентна ListMenus,
	// непустая используется как есть (пробелы не обрезаются).
	SearchMenus(ctx context.Context, name string) ([]models.Menu, error)
	// MenuByID возвращает ErrNotFound, если меню нет.
	MenuByID(ctx context.Context, id int64) (*models.Menu, error)
	// MenuNameExists проверяет точное (с учётом регистра) совпадение имени.
	// excludeID == 0 означает «никого не исключать».
	MenuNameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	// CreateMenu присваивает id и сохраняет запись. ErrAlreadyExists при конфликте имени.
	CreateMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error)
	// UpdateMenu полностью заменяет изменяемые поля, created_at не трогает.
	UpdateMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error)
	// DeleteMenu возвращает false, если удалять было нечего.
	DeleteMenu(ctx context.Context, id int64) (bool, error)
}

// Storage — верхнеуровневый интерфейс хранилища.
type Storage interface {
	MenuStorage
	Close()
}
