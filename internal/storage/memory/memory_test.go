package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pribylovaa/menu-service/internal/models"
	"github.com/pribylovaa/menu-service/internal/storage"

	"github.com/stretchr/testify/require"
)

func newMenu(name string, order int) *models.Menu {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Menu{
		Name:      name,
		Order:     order,
		Icon:      "icon",
		Status:    models.MenuStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func names(ms []models.Menu) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func TestCreateAndGet_RoundTrip(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	desc := "Página principal"
	in := newMenu("Dashboard", 1)
	in.Description = &desc

	created, err := s.CreateMenu(ctx, in)
	require.NoError(t, err)
	require.EqualValues(t, 1, created.ID)

	got, err := s.MenuByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
	require.Equal(t, "Página principal", *got.Description)

	next, err := s.CreateMenu(ctx, newMenu("Produtos", 2))
	require.NoError(t, err)
	require.EqualValues(t, 2, next.ID)
}

func TestCreate_CopiesInput(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	desc := "original"
	in := newMenu("Dashboard", 1)
	in.Description = &desc

	created, err := s.CreateMenu(ctx, in)
	require.NoError(t, err)

	// мутации входа и результата не должны затрагивать хранилище.
	desc = "changed"
	created.Name = "Hacked"

	got, err := s.MenuByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Dashboard", got.Name)
	require.Equal(t, "original", *got.Description)
}

func TestCreate_DuplicateName(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	_, err := s.CreateMenu(ctx, newMenu("Dashboard", 1))
	require.NoError(t, err)

	_, err = s.CreateMenu(ctx, newMenu("Dashboard", 2))
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	// имя сравнивается с учётом регистра.
	_, err = s.CreateMenu(ctx, newMenu("dashboard", 2))
	require.NoError(t, err)

	all, err := s.ListMenus(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestMenuByID_NotFound(t *testing.T) {
	t.Parallel()

	_, err := New().MenuByID(context.Background(), 42)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMenuNameExists(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	created, err := s.CreateMenu(ctx, newMenu("Dashboard", 1))
	require.NoError(t, err)

	ok, err := s.MenuNameExists(ctx, "Dashboard", 0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.MenuNameExists(ctx, "Dashboard", created.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.MenuNameExists(ctx, "DASHBOARD", 0)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	a, err := s.CreateMenu(ctx, newMenu("A", 1))
	require.NoError(t, err)
	_, err = s.CreateMenu(ctx, newMenu("B", 2))
	require.NoError(t, err)

	t.Run("self_name_ok", func(t *testing.T) {
		upd := *a
		upd.Order = 10
		upd.UpdatedAt = a.UpdatedAt.Add(time.Second)
		upd.CreatedAt = time.Time{}

		got, err := s.UpdateMenu(ctx, &upd)
		require.NoError(t, err)
		require.Equal(t, 10, got.Order)
		require.Equal(t, a.CreatedAt, got.CreatedAt, "created_at не меняется")
		require.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("conflict_with_other", func(t *testing.T) {
		upd := *a
		upd.Name = "B"

		_, err := s.UpdateMenu(ctx, &upd)
		require.ErrorIs(t, err, storage.ErrAlreadyExists)

		got, err := s.MenuByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, "A", got.Name)
	})

	t.Run("not_found", func(t *testing.T) {
		upd := *a
		upd.ID = 999

		_, err := s.UpdateMenu(ctx, &upd)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	m, err := s.CreateMenu(ctx, newMenu("A", 1))
	require.NoError(t, err)

	ok, err := s.DeleteMenu(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.DeleteMenu(ctx, m.ID)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.MenuByID(ctx, m.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestList_OrderedByOrderThenID(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	for _, in := range []*models.Menu{newMenu("C", 3), newMenu("A1", 1), newMenu("B", 2), newMenu("A2", 1)} {
		_, err := s.CreateMenu(ctx, in)
		require.NoError(t, err)
	}

	all, err := s.ListMenus(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"A1", "A2", "B", "C"}, names(all))
}

func TestList_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	all, err := New().ListMenus(context.Background())
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx))

	got, err := s.SearchMenus(ctx, "ÇÕ")
	require.NoError(t, err)
	require.Equal(t, []string{"Configurações"}, names(got))

	got, err = s.SearchMenus(ctx, "rio")
	require.NoError(t, err)
	require.Equal(t, []string{"Usuários", "Relatórios"}, names(got))

	got, err = s.SearchMenus(ctx, "nothing-matches")
	require.NoError(t, err)
	require.Empty(t, got)

	// непустая подстрока сравнивается как есть, без обрезки пробелов.
	got, err = s.SearchMenus(ctx, "  Dash")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = s.SearchMenus(ctx, "board")
	require.NoError(t, err)
	require.Equal(t, []string{"Dashboard"}, names(got))

	all, err := s.ListMenus(ctx)
	require.NoError(t, err)
	for _, q := range []string{"", "   "} {
		got, err = s.SearchMenus(ctx, q)
		require.NoError(t, err)
		require.Equal(t, all, got, "пустой запрос эквивалентен списку")
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx))

	all, err := s.ListMenus(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Dashboard", "Usuários", "Relatórios", "Configurações", "Produtos"}, names(all))
	require.Equal(t, models.MenuStatusInactive, all[3].Status)

	// повторный seed упирается в уникальность имён.
	require.ErrorIs(t, s.Seed(ctx), storage.ErrAlreadyExists)
}

func TestContextCanceled(t *testing.T) {
	t.Parallel()

	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListMenus(ctx)
	require.ErrorIs(t, err, context.Canceled)
	_, err = s.CreateMenu(ctx, newMenu("A", 1))
	require.ErrorIs(t, err, context.Canceled)
	_, err = s.DeleteMenu(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCreate_ConcurrentSameName_OnlyOneWins(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	const n = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		success  int
		conflict int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateMenu(ctx, newMenu("Dashboard", 1))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, storage.ErrAlreadyExists):
				conflict++
			default:
				panic(fmt.Sprintf("unexpected error: %v", err))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, success)
	require.Equal(t, n-1, conflict)
}
