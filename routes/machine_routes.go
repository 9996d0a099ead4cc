package routes

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/controllers"
	"github.com/KenseiEmam/infinity-maintenance-backend/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMachineRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES+"/machines", middleware.APIKeyAuth)
	machineController := controllers.NewMachineController(db)

	api.Get("/", machineController.GetAllMachines)
	api.Post("/", machineController.CreateMachine)
	api.Get("/:id", machineController.GetMachineByID)
	api.Patch("/:id", machineController.UpdateMachine)
	api.Delete("/:id", machineController.DeleteMachine)
}
