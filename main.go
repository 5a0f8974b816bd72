package main

import (
	"fmt"
	"log"

	"apparel-app/config"
	"apparel-app/controllers/idgen"
	"apparel-app/database"
	"apparel-app/migration"
	"apparel-app/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	// Pastikan database ada
	database.EnsureDatabaseExists(config.DBName)

	// Connect to database
	db, err := database.GetDBConnection(config.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	// Setup CORS middleware
	config.SetupCORS(app)

	// Setup routes
	routes.SetupAuthRoutes(app)
	routes.SetupDashboardRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupSupplierRoutes(app)
	routes.SetupProductRoutes(app)
	routes.SetupLocationRoutes(app)
	routes.SetupPurchaseOrderRoutes(app)
	routes.SetupGRNRoutes(app)

	port := config.APP_PORT
	fmt.Println("🚀 Server berjalan di port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
