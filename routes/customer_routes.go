package routes

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/controllers"
	"github.com/KenseiEmam/infinity-maintenance-backend/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCustomerRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES+"/customers", middleware.APIKeyAuth)
	customerController := controllers.NewCustomerController(db)

	api.Get("/", customerController.GetAllCustomers)
	api.Post("/", customerController.CreateCustomer)
	api.Patch("/", customerController.UpdateCustomer)
	api.Get("/:id", customerController.GetCustomerByID)
}
