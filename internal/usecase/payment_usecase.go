package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrInvalidPaymentOrderID          = errors.New("invalid order_id")
	ErrInvalidPaymentKind             = errors.New("invalid payment kind")
	ErrInvalidProviderPayload         = errors.New("invalid payment provider payload")
	ErrNothingToCharge                = errors.New("nothing to charge")
	ErrOrderNotPayable                = errors.New("order not payable")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentSettings configures how payments reach the provider.
// With MockMode set the gateway is skipped and every payment is approved.
type PaymentSettings struct {
	MockMode       bool
	SandboxToken   bool
	TestPayerEmail string
}

// IPaymentUseCase charges an order's prepayment or settlement through the provider.
// The amount always comes from the stored order.
type IPaymentUseCase interface {
	CreateAndApprove(ctx context.Context, orderID string, kind entities.PaymentKind, payload json.RawMessage) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo      interfaces.IPaymentRepository
	orderRepo interfaces.IOrderRepository
	gateway   interfaces.IPaymentGateway
	settings  PaymentSettings
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, orderRepo interfaces.IOrderRepository, gateway interfaces.IPaymentGateway, settings PaymentSettings) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, orderRepo: orderRepo, gateway: gateway, settings: settings}
}

func (u *PaymentUseCase) CreateAndApprove(ctx context.Context, orderID string, kind entities.PaymentKind, payload json.RawMessage) (entities.Payment, error) {
	mockMode := u.settings.MockMode
	orderID = strings.TrimSpace(orderID)
	logger := log.With().Str("order_id", orderID).Str("kind", string(kind)).Logger()
	logger.Debug().Int("payload_len", len(payload)).Msg("[payment][usecase] create-and-approve start")

	if orderID == "" {
		return entities.Payment{}, ErrInvalidPaymentOrderID
	}
	if kind != entities.PaymentKindPrepayment && kind != entities.PaymentKindSettlement {
		return entities.Payment{}, ErrInvalidPaymentKind
	}
	if len(payload) == 0 || !json.Valid(payload) {
		if !mockMode {
			logger.Warn().Msg("[payment][usecase] invalid payload")
			return entities.Payment{}, ErrInvalidProviderPayload
		}
		payload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mockMode {
		return entities.Payment{}, errors.New("payment gateway not configured")
	}
	if u.orderRepo == nil {
		return entities.Payment{}, errors.New("order repository not configured")
	}
	if u.repo == nil {
		return entities.Payment{}, errors.New("payment repository not configured")
	}

	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error().Err(err).Msg("[payment][usecase] failed loading order")
		return entities.Payment{}, err
	}
	if order.ID == "" {
		return entities.Payment{}, ErrOrderNotFound
	}
	amount, err := chargeableAmount(order, kind)
	if err != nil {
		logger.Warn().Err(err).Str("status", string(order.Status)).Msg("[payment][usecase] order not chargeable")
		return entities.Payment{}, err
	}
	previous, err := u.repo.ListByOrderID(ctx, order.ID)
	if err != nil {
		logger.Error().Err(err).Msg("[payment][usecase] failed listing order payments")
		return entities.Payment{}, err
	}
	if charged := chargedSoFar(previous, kind); charged.IsPositive() {
		amount = amount.Sub(charged)
		if !amount.IsPositive() {
			logger.Warn().Str("charged", charged.StringFixed(2)).Msg("[payment][usecase] already charged")
			return entities.Payment{}, ErrNothingToCharge
		}
	}

	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil || reqMap == nil {
		if !mockMode {
			return entities.Payment{}, ErrInvalidProviderPayload
		}
		reqMap = map[string]any{}
	}
	if !mockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			logger.Warn().Msg("[payment][usecase] missing payment_method_id")
			return entities.Payment{}, ErrInvalidProviderPayload
		}
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			logger.Warn().Msg("[payment][usecase] missing/invalid payer")
			return entities.Payment{}, ErrInvalidProviderPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = order.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Order %s %s", order.ID, kind)
	}
	reqMap["transaction_amount"] = amount.InexactFloat64()
	payload, err = json.Marshal(reqMap)
	if err != nil {
		return entities.Payment{}, err
	}

	var (
		providerPaymentID string
		providerStatus    = "approved"
		providerResp      json.RawMessage
	)
	if mockMode {
		providerPaymentID, providerResp, err = mockProviderResponse(reqMap)
		if err != nil {
			return entities.Payment{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, payload)
		if err != nil {
			logger.Error().Err(err).Msg("[payment][usecase] payment gateway failed")
			return entities.Payment{}, classifyGatewayError(err)
		}
		logger.Info().Str("provider_payment_id", providerPaymentID).Str("provider_status", providerStatus).Msg("[payment][usecase] payment gateway success")
	}

	var parsed map[string]any
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		logger.Warn().Err(err).Msg("[payment][usecase] provider response unmarshal failed")
	}

	p := entities.Payment{
		ID:                 providerPaymentID,
		OrderID:            order.ID,
		Kind:               kind,
		Amount:             amount,
		Date:               time.Now().UTC(),
		Status:             paymentStatusFromProvider(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		logger.Error().Err(err).Str("payment_id", p.ID).Msg("[payment][usecase] payment repository create failed")
		return entities.Payment{}, err
	}
	logger.Info().Str("payment_id", created.ID).Str("amount", amount.StringFixed(2)).Msg("[payment][usecase] create-and-approve success")
	return created, nil
}

// chargeableAmount is the prepayment for deposits and the amount due for settlements.
// Settlements need the work to be done.
func chargeableAmount(o entities.Order, kind entities.PaymentKind) (decimal.Decimal, error) {
	if o.Status == entities.OrderStatusCanceled {
		return decimal.Zero, ErrOrderNotPayable
	}
	var amount decimal.Decimal
	switch kind {
	case entities.PaymentKindPrepayment:
		if o.Status == entities.OrderStatusClosed {
			return decimal.Zero, ErrOrderNotPayable
		}
		amount = o.Prepayment
	case entities.PaymentKindSettlement:
		if o.Status != entities.OrderStatusReady && o.Status != entities.OrderStatusClosed {
			return decimal.Zero, ErrOrderNotPayable
		}
		amount = o.AmountDue()
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrNothingToCharge
	}
	return amount, nil
}

// chargedSoFar sums the payments of kind that were approved or are still pending
// at the provider. Denied payments do not count.
func chargedSoFar(payments []entities.Payment, kind entities.PaymentKind) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Kind != kind || p.Status == entities.PaymentStatusDenied {
			continue
		}
		total = total.Add(p.Amount)
	}
	return total
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	default:
		return entities.PaymentStatusPending
	}
}

func mockProviderResponse(req map[string]any) (string, json.RawMessage, error) {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp := make(map[string]any, len(req)+5)
	for k, v := range req {
		resp[k] = v
	}
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now
	resp["date_approved"] = now
	b, err := json.Marshal(resp)
	return id, b, err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *PaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// Sandbox accepts payer.id or payer.email; fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if u.settings.TestPayerEmail != "" {
			payer["email"] = u.settings.TestPayerEmail
		} else if u.settings.SandboxToken {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidPaymentOrderID
	}
	return u.repo.ListByOrderID(ctx, orderID)
}
