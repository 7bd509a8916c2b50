package handlers

import (
	"errors"
	"net/http"

	request "repairdesk/internal/adapter/http/dto/request"
	response "repairdesk/internal/adapter/http/dto/response"
	"repairdesk/internal/usecase"
	"repairdesk/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)

// OrderHandler handles order intake, kanban moves and closing.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// Quote godoc
// @Summary      Quote an order
// @Description  Computes order financials for the given lines without persisting anything.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      request.QuoteRequest  true  "Lines and prepayment"
// @Success      200   {object}  response.FinancialsResponse
// @Failure      400   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/quote [post]
func (h *OrderHandler) Quote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidOrderPayload)
		return
	}

	f, err := h.usecase.Quote(payload.LineItems(), payload.Prepayment)
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrderFinancials(f))
}

// CreateOrder godoc
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateOrderRequest  true  "Order"
// @Success      201   {object}  response.OrderResponse
// @Failure      400   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidOrderPayload)
		return
	}
	locationID, ok := resolveLocation(c, payload.LocationID)
	if !ok {
		return
	}

	created, err := h.usecase.CreateOrder(c.Request.Context(), payload.ToInput(locationID))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	log.Info().Str("order_id", created.ID).Str("location_id", created.LocationID).Msg("[order][handler] order created")
	c.JSON(http.StatusCreated, response.FromOrder(created))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	if !inScope(c, o.LocationID) {
		writeError(c, mapOrderError(usecase.ErrOrderNotFound))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// RecalculateOrder replaces the lines of an open order.
func (h *OrderHandler) RecalculateOrder(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidOrderPayload)
		return
	}
	if !h.checkScope(c) {
		return
	}

	updated, err := h.usecase.RecalculateOrder(c.Request.Context(), c.Param("id"), payload.LineItems(), payload.Prepayment)
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(updated))
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidOrderPayload)
		return
	}
	if !h.checkScope(c) {
		return
	}

	updated, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), payload.OrderStatus())
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(updated))
}

// CloseOrder accepts an empty body, closing at the estimated cost.
func (h *OrderHandler) CloseOrder(c *gin.Context) {
	var payload request.CloseOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			writeError(c, errInvalidOrderPayload)
			return
		}
	}
	if !h.checkScope(c) {
		return
	}

	closed, err := h.usecase.CloseOrder(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(closed))
}

// checkScope loads the order for location-pinned callers before a mutation.
// Orders of other locations are reported as missing.
func (h *OrderHandler) checkScope(c *gin.Context) bool {
	if !restricted(c) {
		return true
	}
	o, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return false
	}
	if !inScope(c, o.LocationID) {
		writeError(c, mapOrderError(usecase.ErrOrderNotFound))
		return false
	}
	return true
}

func mapOrderError(err error) *pkg.AppError {
	if appErr, ok := validationError("INVALID_ORDER_LINES", err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidLocationID), errors.Is(err, usecase.ErrInvalidCloseInput):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderFinalized):
		return pkg.NewDomainErrorSimple("ORDER_FINALIZED", "Order is closed or canceled", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Invalid status transition", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
