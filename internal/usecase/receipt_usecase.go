package usecase

import (
	"context"
	"errors"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

var ErrReceiptUnavailable = errors.New("receipt not available for canceled orders")

// IReceiptRenderer prints an order as a document handed to the client.
type IReceiptRenderer interface {
	RenderReceipt(o entities.Order) ([]byte, error)
}

// IReceiptUseCase returns the printable document of an order along with the
// order itself so callers can check its location.
type IReceiptUseCase interface {
	OrderReceipt(ctx context.Context, orderID string) ([]byte, entities.Order, error)
}

type ReceiptUseCase struct {
	orders   *OrderUseCase
	renderer IReceiptRenderer
}

var _ IReceiptUseCase = (*ReceiptUseCase)(nil)

func NewReceiptUseCase(repo interfaces.IOrderRepository, renderer IReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{orders: NewOrderUseCase(repo), renderer: renderer}
}

func (u *ReceiptUseCase) OrderReceipt(ctx context.Context, orderID string) ([]byte, entities.Order, error) {
	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, entities.Order{}, err
	}
	if o.Status == entities.OrderStatusCanceled {
		return nil, o, ErrReceiptUnavailable
	}

	b, err := u.renderer.RenderReceipt(o)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("[receipt][usecase] render failed")
		return nil, o, err
	}
	return b, o, nil
}
