package utils

// NilIfEmpty возвращает nil для пустой строки, чтобы в БД писался NULL.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
