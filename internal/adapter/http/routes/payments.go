package routes

import (
	"repairdesk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathPayments = "/payments"

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:order_id", h.CreatePayment)
		payments.GET("/:order_id", h.GetPaymentByOrderID)
	}
}
