package routes

import (
	"apparel-app/config"
	"apparel-app/controllers"
	"apparel-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app *fiber.App) {

	productController := &controllers.ProductController{}
	api := app.Group(config.MAIN_ROUTES+"/products", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(productController))

	api.Post("/", productController.CreateProduct)
	api.Get("/", productController.GetAllProducts)
	api.Get("/:sku", productController.GetProductBySKU)
	api.Put("/:sku", productController.UpdateProduct)
	api.Delete("/:sku", productController.DeleteProduct)
}
