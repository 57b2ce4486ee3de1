package repositories

import "strings"

func joinFields(fields []string) string {
	return strings.Join(fields, ", ")
}
