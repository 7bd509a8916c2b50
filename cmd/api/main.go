package main

import (
	"os"

	_ "repairdesk/docs"
	"repairdesk/internal/adapter/http/routes"
	"repairdesk/internal/config"
	"repairdesk/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

// @title           Repair Desk Financials API
// @version         1.0
// @description     Order totals, technician bonuses and period analytics for repair shops, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("[api] failed to load config")
		os.Exit(1)
	}
	logger.New(cfg.Environment)

	if err := routes.Run(cfg); err != nil {
		log.Fatal().Err(err).Msg("[api] server stopped")
	}
}
