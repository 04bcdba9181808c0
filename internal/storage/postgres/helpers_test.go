package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dash", escapeLike("dash"))
	require.Equal(t, `100\%`, escapeLike("100%"))
	require.Equal(t, `a\_b`, escapeLike("a_b"))
	require.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
}

func TestMigrateURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	require.Equal(t, "pgx5://u@h/db", migrateURL("postgresql://u@h/db"))
	require.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}
