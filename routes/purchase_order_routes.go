package routes

import (
	"apparel-app/config"
	"apparel-app/controllers"
	"apparel-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupPurchaseOrderRoutes(app *fiber.App) {

	poController := &controllers.PurchaseOrderController{}
	api := app.Group(config.MAIN_ROUTES+"/purchase-orders", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(poController))

	api.Post("/", poController.CreatePO)
	api.Get("/", poController.GetAllPO)
	api.Get("/:po_number", poController.GetPOByNumber)
	api.Put("/:po_number", poController.UpdatePO)
	api.Delete("/:po_number", poController.DeletePO)
	api.Post("/:po_number/approve", poController.ApprovePO)
}
