package routes

import (
	"apparel-app/config"
	"apparel-app/controllers"
	"apparel-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupLocationRoutes(app *fiber.App) {

	locationController := &controllers.LocationController{}
	api := app.Group(config.MAIN_ROUTES+"/locations", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(locationController))

	api.Post("/upload-excel", locationController.UploadLocationsFromExcel)
	api.Post("/", locationController.CreateLocation)
	api.Get("/", locationController.GetAllLocations)
	api.Put("/:id", locationController.UpdateLocation)
	api.Delete("/:id", locationController.DeleteLocation)
}
