package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	response "repairdesk/internal/adapter/http/dto/response"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"
	"repairdesk/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PaymentHandler handles HTTP requests for order payments.
type PaymentHandler struct {
	usecase  usecase.IPaymentUseCase
	orders   usecase.IOrderUseCase
	mockMode bool
}

// NewPaymentHandler wires the payment use case. orders is used to keep
// location-pinned callers inside their location.
func NewPaymentHandler(uc usecase.IPaymentUseCase, orders usecase.IOrderUseCase, mockMode bool) *PaymentHandler {
	return &PaymentHandler{usecase: uc, orders: orders, mockMode: mockMode}
}

// CreatePayment godoc
// @Summary      Charge an order
// @Description  Creates and processes a prepayment or settlement. The amount comes from the order.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        order_id  path      string  true   "Order ID"
// @Param        kind      query     string  false  "prepayment or settlement (default)"
// @Success      200       {object}  response.PaymentResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /payments/{order_id} [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	orderID := c.Param("order_id")
	kind := entities.PaymentKind(strings.ToLower(strings.TrimSpace(c.DefaultQuery("kind", string(entities.PaymentKindSettlement)))))
	logger := log.With().Str("order_id", orderID).Str("kind", string(kind)).Logger()
	logger.Debug().Msg("[payment][handler] create start")

	payload, err := readProviderPayload(c)
	if err != nil {
		if h.mockMode {
			logger.Debug().Err(err).Msg("[payment][handler] payload invalid in mock mode; fallback to empty payload")
			payload = json.RawMessage("{}")
		} else {
			logger.Warn().Err(err).Msg("[payment][handler] invalid payload")
			writeError(c, errInvalidRequest)
			return
		}
	}
	if !h.checkScope(c, orderID) {
		return
	}

	created, err := h.usecase.CreateAndApprove(c.Request.Context(), orderID, kind, payload)
	if err != nil {
		logger.Warn().Err(err).Msg("[payment][handler] create failed")
		writeError(c, mapPaymentError(err))
		return
	}
	logger.Info().Str("payment_id", created.ID).Str("status", string(created.Status)).Msg("[payment][handler] create success")

	c.JSON(http.StatusOK, response.FromPayment(created))
}

// GetPaymentByOrderID returns the latest payment for an order.
func (h *PaymentHandler) GetPaymentByOrderID(c *gin.Context) {
	orderID := c.Param("order_id")
	if !h.checkScope(c, orderID) {
		return
	}

	payments, err := h.usecase.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		log.Warn().Err(err).Str("order_id", orderID).Msg("[payment][handler] get-by-order failed")
		writeError(c, mapPaymentError(err))
		return
	}

	if len(payments) == 0 {
		writeError(c, pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound))
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	c.JSON(http.StatusOK, response.FromPayment(latest))
}

func (h *PaymentHandler) checkScope(c *gin.Context, orderID string) bool {
	if !restricted(c) || h.orders == nil {
		return true
	}
	o, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, mapPaymentError(err))
		return false
	}
	if !inScope(c, o.LocationID) {
		writeError(c, mapPaymentError(usecase.ErrOrderNotFound))
		return false
	}
	return true
}

// readProviderPayload accepts either {"provider_payload": {...}} or the bare provider body.
func readProviderPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["provider_payload"]; ok {
			if v := strings.TrimSpace(string(wrapped)); v == "" || v == "null" {
				return nil, errors.New("provider_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentOrderID), errors.Is(err, usecase.ErrInvalidPaymentKind),
		errors.Is(err, usecase.ErrInvalidProviderPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest),
		errors.Is(err, usecase.ErrInvalidOrderID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotPayable):
		return pkg.NewDomainErrorSimple("ORDER_NOT_PAYABLE", "Order cannot take this payment in its current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrNothingToCharge):
		return pkg.NewDomainErrorSimple("NOTHING_TO_CHARGE", "Nothing left to charge for this order", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
