package routes

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/controllers"
	"github.com/KenseiEmam/infinity-maintenance-backend/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupScheduledVisitRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES+"/scheduled-visits", middleware.APIKeyAuth)
	visitController := controllers.NewScheduledVisitController(db)

	api.Get("/", visitController.GetAllScheduledVisits)
	api.Post("/", visitController.CreateScheduledVisit)
	api.Get("/:id", visitController.GetScheduledVisitByID)
	api.Patch("/:id", visitController.UpdateScheduledVisit)
	api.Delete("/:id", visitController.DeleteScheduledVisit)
}
