package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/pribylovaa/menu-service/internal/models"
)

// SeedMenus — демонстрационный набор меню для локальной разработки.
func SeedMenus() []models.Menu {
	desc := func(s string) *string { return &s }

	return []models.Menu{
		{Name: "Dashboard", Order: 1, Icon: "dashboard", Description: desc("Página principal do sistema"), Status: models.MenuStatusActive},
		{Name: "Usuários", Order: 2, Icon: "users", Description: desc("Gerenciamento de usuários"), Status: models.MenuStatusActive},
		{Name: "Relatórios", Order: 3, Icon: "chart", Description: desc("Visualização de relatórios"), Status: models.MenuStatusActive},
		{Name: "Configurações", Order: 4, Icon: "settings", Description: desc("Configurações do sistema"), Status: models.MenuStatusInactive},
		{Name: "Produtos", Order: 5, Icon: "shopping-cart", Description: desc("Catálogo de produtos"), Status: models.MenuStatusActive},
	}
}

// Seed заполняет хранилище демонстрационными меню, проставляя одинаковые метки времени.
func (s *Storage) Seed(ctx context.Context) error {
	const op = "storage/memory/seed/Seed"

	now := time.Now().UTC().Truncate(time.Microsecond)
	for _, m := range SeedMenus() {
		m.CreatedAt, m.UpdatedAt = now, now
		if _, err := s.CreateMenu(ctx, &m); err != nil {
			return fmt.Errorf("%s: %q: %w", op, m.Name, err)
		}
	}

	return nil
}
