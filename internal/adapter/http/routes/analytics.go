package routes

import (
	"repairdesk/internal/adapter/http/handlers"
	"repairdesk/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const PathAnalytics = "/analytics"

func addAnalyticsRoutes(rg *gin.RouterGroup, h *handlers.AnalyticsHandler) {
	analytics := rg.Group(PathAnalytics)
	{
		// Technicians only get their own bonus row.
		analytics.GET("/bonuses", middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleManager, middleware.RoleTechnician), h.TechnicianBonuses)

		managers := analytics.Group("", middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleManager))
		managers.GET("/period", h.PeriodReport)
		managers.GET("/export", h.ExportPeriod)
		managers.POST("/bonus/calculate", h.CalculateBonus)
	}
}
