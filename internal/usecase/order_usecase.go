package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/domain/financials"
	"repairdesk/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidOrderID          = errors.New("invalid order id")
	ErrInvalidLocationID       = errors.New("invalid location_id")
	ErrOrderFinalized          = errors.New("order is closed or canceled")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidCloseInput       = errors.New("invalid close input")
)

var orderTransitions = map[entities.OrderStatus][]entities.OrderStatus{
	entities.OrderStatusNew:        {entities.OrderStatusInProgress, entities.OrderStatusCanceled},
	entities.OrderStatusInProgress: {entities.OrderStatusReady, entities.OrderStatusCanceled},
	entities.OrderStatusReady:      {entities.OrderStatusInProgress, entities.OrderStatusClosed, entities.OrderStatusCanceled},
}

type CreateOrderInput struct {
	LocationID     string
	ClientID       string
	TechnicianID   string
	TechnicianName string
	LeadSource     string
	Lines          []entities.LineItem
	Prepayment     decimal.Decimal
}

// CloseOrderInput carries the values settled at pickup. A nil FinalCost keeps the
// estimated cost and a zero CompletedAt means now.
type CloseOrderInput struct {
	FinalCost        *decimal.Decimal
	MasterCommission *decimal.Decimal
	CompletedAt      time.Time
}

// IOrderUseCase exposes order intake, kanban and closing operations.
type IOrderUseCase interface {
	Quote(lines []entities.LineItem, prepayment decimal.Decimal) (financials.OrderFinancials, error)
	CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	RecalculateOrder(ctx context.Context, id string, lines []entities.LineItem, prepayment decimal.Decimal) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
	CloseOrder(ctx context.Context, id string, in CloseOrderInput) (entities.Order, error)
}

type OrderUseCase struct {
	repo interfaces.IOrderRepository
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

func (u *OrderUseCase) Quote(lines []entities.LineItem, prepayment decimal.Decimal) (financials.OrderFinancials, error) {
	return financials.CalculateOrderTotal(lines, prepayment)
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	locationID := strings.TrimSpace(in.LocationID)
	if locationID == "" {
		return entities.Order{}, ErrInvalidLocationID
	}

	f, err := financials.CalculateOrderTotal(in.Lines, in.Prepayment)
	if err != nil {
		log.Debug().Err(err).Str("location_id", locationID).Msg("[order][usecase] create rejected")
		return entities.Order{}, err
	}

	now := time.Now().UTC()
	o := entities.Order{
		ID:             uuid.NewString(),
		LocationID:     locationID,
		ClientID:       strings.TrimSpace(in.ClientID),
		TechnicianID:   strings.TrimSpace(in.TechnicianID),
		TechnicianName: strings.TrimSpace(in.TechnicianName),
		LeadSource:     strings.TrimSpace(in.LeadSource),
		Status:         entities.OrderStatusNew,
		AcceptedAt:     now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	applyFinancials(&o, in.Lines, f)

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("[order][usecase] repository create failed")
		return entities.Order{}, err
	}
	log.Info().Str("order_id", created.ID).Str("location_id", locationID).Str("subtotal", f.Subtotal.StringFixed(2)).Msg("[order][usecase] order created")
	return created, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// RecalculateOrder replaces the line items of an open order, e.g. after an
// additional repair is agreed with the client.
func (u *OrderUseCase) RecalculateOrder(ctx context.Context, id string, lines []entities.LineItem, prepayment decimal.Decimal) (entities.Order, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.IsFinal() {
		return entities.Order{}, ErrOrderFinalized
	}

	f, err := financials.CalculateOrderTotal(lines, prepayment)
	if err != nil {
		return entities.Order{}, err
	}
	applyFinancials(&o, lines, f)
	o.UpdatedAt = time.Now().UTC()

	updated, err := u.save(ctx, o)
	if err != nil {
		return entities.Order{}, err
	}
	log.Info().Str("order_id", o.ID).Str("subtotal", f.Subtotal.StringFixed(2)).Msg("[order][usecase] order recalculated")
	return updated, nil
}

func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	if status == entities.OrderStatusClosed {
		return u.CloseOrder(ctx, id, CloseOrderInput{})
	}

	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if !canTransition(o.Status, status) {
		log.Debug().Str("order_id", o.ID).Str("from", string(o.Status)).Str("to", string(status)).Msg("[order][usecase] transition rejected")
		return entities.Order{}, ErrInvalidStatusTransition
	}

	updated, err := u.repo.UpdateStatus(ctx, o.ID, status)
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return updated, nil
}

// CloseOrder moves a ready order to closed and fixes its final figures.
// Profit is the final cost less line costs and the master's commission.
func (u *OrderUseCase) CloseOrder(ctx context.Context, id string, in CloseOrderInput) (entities.Order, error) {
	if in.FinalCost != nil && in.FinalCost.IsNegative() {
		return entities.Order{}, ErrInvalidCloseInput
	}
	if in.MasterCommission != nil && in.MasterCommission.IsNegative() {
		return entities.Order{}, ErrInvalidCloseInput
	}

	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.IsFinal() {
		return entities.Order{}, ErrOrderFinalized
	}
	if !canTransition(o.Status, entities.OrderStatusClosed) {
		return entities.Order{}, ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	if in.FinalCost != nil {
		o.FinalCost = financials.Round2(*in.FinalCost)
	}
	if o.Prepayment.GreaterThan(o.FinalCost) {
		log.Warn().Str("order_id", o.ID).Str("final_cost", o.FinalCost.StringFixed(2)).Str("prepayment", o.Prepayment.StringFixed(2)).Msg("[order][usecase] final cost below prepayment")
		return entities.Order{}, ErrInvalidCloseInput
	}
	if in.MasterCommission != nil {
		o.MasterCommission = financials.Round2(*in.MasterCommission)
	}
	o.CompletedAt = in.CompletedAt.UTC()
	if in.CompletedAt.IsZero() {
		o.CompletedAt = now
	}
	o.TotalProfit = financials.Round2(o.FinalCost.Sub(o.CostTotal).Sub(o.MasterCommission))
	o.Status = entities.OrderStatusClosed
	o.UpdatedAt = now

	updated, err := u.save(ctx, o)
	if err != nil {
		return entities.Order{}, err
	}
	log.Info().Str("order_id", o.ID).Str("final_cost", o.FinalCost.StringFixed(2)).Str("total_profit", o.TotalProfit.StringFixed(2)).Msg("[order][usecase] order closed")
	return updated, nil
}

func (u *OrderUseCase) save(ctx context.Context, o entities.Order) (entities.Order, error) {
	updated, err := u.repo.Update(ctx, o)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("[order][usecase] repository update failed")
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return updated, nil
}

func applyFinancials(o *entities.Order, lines []entities.LineItem, f financials.OrderFinancials) {
	o.Lines = lines
	o.EstimatedCost = f.Subtotal
	o.FinalCost = f.Subtotal
	o.Prepayment = f.Prepayment
	o.ServicePrice = f.ServicesTotal
	o.PartsPrice = f.PartsTotal
	o.CostTotal = f.CostTotal
	o.TotalProfit = f.EstimatedProfit
	o.EstimatedDurationMinutes = f.EstimatedDurationMinutes
}

func canTransition(from, to entities.OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
