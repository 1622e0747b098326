package main

import (
	"agenda-api/core/logger"
	"agenda-api/core/server"

	_ "agenda-api/docs" // Swagger docs
)

// @title Agenda API
// @version 1.0
// @description Backend for the Agenda booking application: owners publish calendars of bookable slots, clients reserve them.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@agenda.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
