package routes

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "repairdesk/docs" // swag init output
	"repairdesk/internal/adapter/export"
	"repairdesk/internal/adapter/http/handlers"
	"repairdesk/internal/adapter/http/middleware"
	"repairdesk/internal/adapter/persistence/repository"
	"repairdesk/internal/config"
	"repairdesk/internal/infrastructure/database"
	"repairdesk/internal/infrastructure/payments"
	"repairdesk/internal/usecase"
	"repairdesk/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups everything the router exposes.
type Handlers struct {
	Orders    *handlers.OrderHandler
	Receipts  *handlers.ReceiptHandler
	Analytics *handlers.AnalyticsHandler
	Payments  *handlers.PaymentHandler
}

// Run wires the DynamoDB-backed services and blocks serving HTTP.
func Run(cfg *config.Config) error {
	h, err := buildHandlers(context.Background(), cfg)
	if err != nil {
		return err
	}

	router := NewRouter(cfg, h)
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("env", cfg.Environment).Msg("[http] listening")
	if err := router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the application: %w", err)
	}
	return nil
}

// NewRouter mounts middleware, swagger and the v1 API.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	setMiddlewares(router)
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(cfg.HTTP.AllowedOrigins))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(cfg.Auth))
	addOrderRoutes(protected, h.Orders, h.Receipts)
	addAnalyticsRoutes(protected, h.Analytics)
	addPaymentRoutes(protected, h.Payments)
	return router
}

func buildHandlers(ctx context.Context, cfg *config.Config) (Handlers, error) {
	ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
	if err != nil {
		return Handlers{}, err
	}

	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.AWS.OrdersTable)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, cfg.AWS.PaymentsTable)

	var gateway interfaces.IPaymentGateway
	if !cfg.Payments.MockGateway {
		mp, err := payments.NewMercadoPagoGateway(cfg.Payments)
		if err != nil {
			log.Warn().Err(err).Msg("[http] mercado pago gateway not configured")
		} else {
			gateway = mp
		}
	}

	orderUseCase := usecase.NewOrderUseCase(orderRepo)
	receiptUseCase := usecase.NewReceiptUseCase(orderRepo, export.NewReceiptRenderer(cfg.ShopName))
	analyticsUseCase := usecase.NewAnalyticsUseCase(orderRepo, cfg.Financials, cfg.Financials.Groupings(), export.NewExcelExporter())
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, orderRepo, gateway, usecase.PaymentSettings{
		MockMode:       cfg.Payments.MockGateway,
		SandboxToken:   strings.HasPrefix(cfg.Payments.MercadoPagoAccessToken, "TEST-"),
		TestPayerEmail: cfg.Payments.TestPayerEmail,
	})

	return Handlers{
		Orders:    handlers.NewOrderHandler(orderUseCase),
		Receipts:  handlers.NewReceiptHandler(receiptUseCase),
		Analytics: handlers.NewAnalyticsHandler(analyticsUseCase, cfg.Financials.ReportLocation),
		Payments:  handlers.NewPaymentHandler(paymentUseCase, orderUseCase, cfg.Payments.MockGateway),
	}, nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("[http] recovered from panic")
		c.AbortWithStatus(500)
	}))
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return cors.New(c)
		}
	}
	c.AllowOrigins = origins
	return cors.New(c)
}
