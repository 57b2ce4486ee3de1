package printclient

import (
	"print3d-service/internal/dto"
	"print3d-service/pkg/types"
)

// FilterOrders оставляет заявки с нужным статусом ("all" или пусто - любой),
// email которых содержит подстроку без учёта регистра. Порядок сохраняется, вход не меняется.
func FilterOrders(all []dto.OrderDTO, status, emailSubstring string) []dto.OrderDTO {
	filter := types.OrderFilter{Status: status, Email: emailSubstring}
	out := make([]dto.OrderDTO, 0, len(all))
	for _, o := range all {
		if filter.Matches(o.Status, o.Email) {
			out = append(out, o)
		}
	}
	return out
}
