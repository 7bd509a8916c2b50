package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"repairdesk/internal/usecase"
	"repairdesk/pkg"

	"github.com/gin-gonic/gin"
)

const pdfContentType = "application/pdf"

// ReceiptHandler serves printable order documents.
type ReceiptHandler struct {
	usecase usecase.IReceiptUseCase
}

func NewReceiptHandler(uc usecase.IReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{usecase: uc}
}

// GetReceipt godoc
// @Summary      Order receipt
// @Description  Work order for open orders, receipt once closed.
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path      string  true  "Order ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/receipt [get]
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	doc, o, err := h.usecase.OrderReceipt(c.Request.Context(), c.Param("id"))
	if err != nil && o.ID == "" {
		writeError(c, mapReceiptError(err))
		return
	}
	if !inScope(c, o.LocationID) {
		writeError(c, mapOrderError(usecase.ErrOrderNotFound))
		return
	}
	if err != nil {
		writeError(c, mapReceiptError(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", fmt.Sprintf("order_%s.pdf", o.ID)))
	c.Data(http.StatusOK, pdfContentType, doc)
}

func mapReceiptError(err error) *pkg.AppError {
	if errors.Is(err, usecase.ErrReceiptUnavailable) {
		return pkg.NewDomainErrorSimple("RECEIPT_UNAVAILABLE", "Canceled orders have no receipt", http.StatusConflict)
	}
	return mapOrderError(err)
}
