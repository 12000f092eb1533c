package main

import (
	"os"

	"github.com/tenacity/erp/internal/pkg/logger"
	"github.com/tenacity/erp/internal/server"
)

// @title Tenacity ERP API
// @version 1.0
// @description Role-based education management dashboard: grading, early warnings, fees, hostel, reports and a help-desk chatbot.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token from POST /session, as "Bearer <token>"

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
