// Package redact маскирует чувствительные значения перед записью в логи.
package redact

// Username оставляет первые два символа логина.
func Username(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return "***"
	}

	return string(r[:2]) + "***"
}
