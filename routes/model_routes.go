package routes

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/controllers"
	"github.com/KenseiEmam/infinity-maintenance-backend/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupModelRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES+"/models", middleware.APIKeyAuth)
	modelController := controllers.NewModelController(db)

	api.Get("/", modelController.GetAllModels)
	api.Post("/", modelController.CreateModel)
}

func SetupManufacturerRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES+"/manufacturers", middleware.APIKeyAuth)
	manufacturerController := controllers.NewManufacturerController(db)

	api.Get("/", manufacturerController.GetAllManufacturers)
	api.Post("/", manufacturerController.CreateManufacturer)
}
