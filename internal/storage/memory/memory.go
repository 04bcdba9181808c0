// memory — эфемерная реализация storage.Storage в памяти процесса.
// Используется для локальной разработки и тестов; данные теряются при рестарте.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pribylovaa/menu-service/internal/models"
	"github.com/pribylovaa/menu-service/internal/storage"
)

// Storage хранит меню в map под sync.RWMutex.
// Проверка уникальности имени и запись выполняются под одной эксклюзивной блокировкой.
type Storage struct {
	mu     sync.RWMutex
	nextID int64
	menus  map[int64]models.Menu
}

var _ storage.Storage = (*Storage)(nil)

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		nextID: 1,
		menus:  make(map[int64]models.Menu),
	}
}

// Close — no-op, нужен для соответствия storage.Storage.
func (s *Storage) Close() {}

func (s *Storage) ListMenus(ctx context.Context) ([]models.Menu, error) {
	const op = "storage/memory/menus/ListMenus"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectLocked(func(models.Menu) bool { return true }), nil
}

func (s *Storage) SearchMenus(ctx context.Context, name string) ([]models.Menu, error) {
	const op = "storage/memory/menus/SearchMenus"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	matchAll := strings.TrimSpace(name) == ""
	needle := strings.ToLower(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectLocked(func(m models.Menu) bool {
		return matchAll || strings.Contains(strings.ToLower(m.Name), needle)
	}), nil
}

func (s *Storage) MenuByID(ctx context.Context, id int64) (*models.Menu, error) {
	const op = "storage/memory/menus/MenuByID"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.menus[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return cloneMenu(m), nil
}

func (s *Storage) MenuNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	const op = "storage/memory/menus/MenuNameExists"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nameTakenLocked(name, excludeID), nil
}

func (s *Storage) CreateMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	const op = "storage/memory/menus/CreateMenu"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTakenLocked(menu.Name, 0) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	m := *cloneMenu(*menu)
	m.ID = s.nextID
	s.nextID++
	s.menus[m.ID] = m

	return cloneMenu(m), nil
}

func (s *Storage) UpdateMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	const op = "storage/memory/menus/UpdateMenu"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.menus[menu.ID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if s.nameTakenLocked(menu.Name, menu.ID) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	m := *cloneMenu(*menu)
	m.CreatedAt = original.CreatedAt
	s.menus[m.ID] = m

	return cloneMenu(m), nil
}

func (s *Storage) DeleteMenu(ctx context.Context, id int64) (bool, error) {
	const op = "storage/memory/menus/DeleteMenu"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menus[id]; !ok {
		return false, nil
	}
	delete(s.menus, id)

	return true, nil
}

// nameTakenLocked — точное сравнение имени; вызывать под блокировкой.
func (s *Storage) nameTakenLocked(name string, excludeID int64) bool {
	for id, m := range s.menus {
		if id != excludeID && m.Name == name {
			return true
		}
	}

	return false
}

// collectLocked отбирает меню по предикату и сортирует по order, затем по id.
func (s *Storage) collectLocked(keep func(models.Menu) bool) []models.Menu {
	out := make([]models.Menu, 0, len(s.menus))
	for _, m := range s.menus {
		if keep(m) {
			out = append(out, *cloneMenu(m))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})

	return out
}

func cloneMenu(m models.Menu) *models.Menu {
	if m.Description != nil {
		d := *m.Description
		m.Description = &d
	}

	return &m
}
