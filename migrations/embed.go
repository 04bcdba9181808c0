// migrations содержит SQL-миграции схемы menu-service, встроенные в бинарь.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
