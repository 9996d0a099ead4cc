package routes

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/controllers"
	"github.com/KenseiEmam/infinity-maintenance-backend/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupJobSheetRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES+"/job-sheets", middleware.APIKeyAuth)
	jobSheetController := controllers.NewJobSheetController(db)

	api.Get("/", jobSheetController.GetAllJobSheets)
	api.Post("/", jobSheetController.CreateJobSheet)
	api.Get("/export", jobSheetController.ExportJobSheets)
	api.Get("/:id", jobSheetController.GetJobSheetByID)
	api.Patch("/:id", jobSheetController.UpdateJobSheet)
	api.Delete("/:id", jobSheetController.DeleteJobSheet)
}
