package routes

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/controllers"
	"github.com/KenseiEmam/infinity-maintenance-backend/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCallRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES+"/calls", middleware.APIKeyAuth)
	callController := controllers.NewCallController(db)

	api.Get("/", callController.GetAllCalls)
	api.Post("/", callController.CreateCall)
	api.Patch("/:id/assign", callController.AssignCall)
}
