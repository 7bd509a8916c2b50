package routes

import (
	"repairdesk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathOrders = "/orders"

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler, receipts *handlers.ReceiptHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("/quote", h.Quote)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/lines", h.RecalculateOrder)
		orders.PATCH("/:id/status", h.UpdateStatus)
		orders.POST("/:id/close", h.CloseOrder)
		orders.GET("/:id/receipt", receipts.GetReceipt)
	}
}
