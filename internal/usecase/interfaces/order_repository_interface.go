package interfaces

import (
	"context"
	"time"

	"repairdesk/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Lookups and conditional updates return an empty Order (ID == "") when the
// order does not exist.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	Update(ctx context.Context, o entities.Order) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
	ListClosedBetween(ctx context.Context, locationID string, from, to time.Time) ([]entities.Order, error)
}
