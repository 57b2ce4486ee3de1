package events

import "print3d-service/internal/entities"

const OrderCreated = "order.created"

// OrderCreatedEvent - заявка сохранена в БД.
type OrderCreatedEvent struct {
	Order entities.Order
}

func (e OrderCreatedEvent) Name() string {
	return OrderCreated
}
