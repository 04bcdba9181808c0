package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/menu-service/internal/models"
	"github.com/pribylovaa/menu-service/internal/storage"
)

// menuColumns — единый список колонок таблицы menus для SELECT/RETURNING,
// чтобы порядок сканирования везде совпадал.
const menuColumns = `
id, nome, ordem, icone, descricao, status, created_at, updated_at
`

// scanMenu сканирует одну строку меню; SMALLINT status приводится к models.MenuStatus.
func scanMenu(row pgx.Row) (*models.Menu, error) {
	var menu models.Menu
	var status int16

	if err := row.Scan(
		&menu.ID,
		&menu.Name,
		&menu.Order,
		&menu.Icon,
		&menu.Description,
		&status,
		&menu.CreatedAt,
		&menu.UpdatedAt,
	); err != nil {
		return nil, err
	}

	menu.Status = models.MenuStatus(status)
	menu.CreatedAt = menu.CreatedAt.UTC()
	menu.UpdatedAt = menu.UpdatedAt.UTC()

	return &menu, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (s *Storage) ListMenus(ctx context.Context) ([]models.Menu, error) {
	const op = "storage/postgres/menus/ListMenus"

	q := `SELECT ` + menuColumns + ` FROM menus ORDER BY ordem ASC, id ASC`

	result, err := s.queryMenus(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// SearchMenus ищет через ILIKE; спецсимволы шаблона в подстроке экранируются.
func (s *Storage) SearchMenus(ctx context.Context, name string) ([]models.Menu, error) {
	const op = "storage/postgres/menus/SearchMenus"

	if strings.TrimSpace(name) == "" {
		return s.ListMenus(ctx)
	}

	q := `
	SELECT ` + menuColumns + `
	FROM menus
	WHERE nome ILIKE '%' || $1 || '%' ESCAPE '\'
	ORDER BY ordem ASC, id ASC
	`

	result, err := s.queryMenus(ctx, q, escapeLike(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (s *Storage) MenuByID(ctx context.Context, id int64) (*models.Menu, error) {
	const op = "storage/postgres/menus/MenuByID"

	q := `SELECT ` + menuColumns + ` FROM menus WHERE id = $1`

	result, err := scanMenu(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// MenuNameExists: id из BIGSERIAL начинается с 1, поэтому excludeID == 0 никого не исключает.
func (s *Storage) MenuNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	const op = "storage/postgres/menus/MenuNameExists"

	q := `SELECT EXISTS (SELECT 1 FROM menus WHERE nome = $1 AND id <> $2)`

	var exists bool
	if err := s.db.QueryRow(ctx, q, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// CreateMenu вставляет запись; конфликт UNIQUE (nome) даёт storage.ErrAlreadyExists.
func (s *Storage) CreateMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	const op = "storage/postgres/menus/CreateMenu"

	q := `
	INSERT INTO menus (nome, ordem, icone, descricao, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING
	` + menuColumns

	row := s.db.QueryRow(ctx, q,
		menu.Name,
		menu.Order,
		menu.Icon,
		menu.Description,
		int16(menu.Status),
		menu.CreatedAt.UTC(),
		menu.UpdatedAt.UTC(),
	)

	result, err := scanMenu(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// UpdateMenu перезаписывает изменяемые поля и updated_at; created_at остаётся прежним.
func (s *Storage) UpdateMenu(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	const op = "storage/postgres/menus/UpdateMenu"

	q := `
	UPDATE menus
	SET nome = $2, ordem = $3, icone = $4, descricao = $5, status = $6, updated_at = $7
	WHERE id = $1
	RETURNING
	` + menuColumns

	row := s.db.QueryRow(ctx, q,
		menu.ID,
		menu.Name,
		menu.Order,
		menu.Icon,
		menu.Description,
		int16(menu.Status),
		menu.UpdatedAt.UTC(),
	)

	result, err := scanMenu(row)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		case isUniqueViolation(err):
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (s *Storage) DeleteMenu(ctx context.Context, id int64) (bool, error) {
	const op = "storage/postgres/menus/DeleteMenu"

	tag, err := s.db.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return tag.RowsAffected() > 0, nil
}

// queryMenus выполняет запрос и собирает все строки; пустой результат — пустой срез.
func (s *Storage) queryMenus(ctx context.Context, q string, args ...any) ([]models.Menu, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Menu, 0)
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
