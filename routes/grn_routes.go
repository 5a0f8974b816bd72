package routes

import (
	"apparel-app/config"
	"apparel-app/controllers"
	"apparel-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupGRNRoutes(app *fiber.App) {

	grnController := &controllers.GRNController{}
	api := app.Group(config.MAIN_ROUTES+"/grn", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(grnController))

	api.Get("/remaining-qty", grnController.GetRemainingQty)
	api.Post("/validate-item", grnController.ValidateItem)
	api.Post("/", grnController.CreateGRN)
	api.Get("/history", grnController.GetGRNHistory)
	api.Get("/history/export", grnController.ExportGRNHistory)
	api.Get("/:grn_id", grnController.GetGRNDetails)
}
