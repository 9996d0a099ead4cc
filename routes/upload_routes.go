package routes

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/controllers"
	"github.com/KenseiEmam/infinity-maintenance-backend/middleware"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUploadRoutes(app *fiber.App, db *gorm.DB, uploader services.ObjectUploader) {
	api := app.Group(config.MAIN_ROUTES+"/uploads", middleware.APIKeyAuth)
	uploadController := controllers.NewUploadController(db, uploader)

	api.Post("/", uploadController.UploadFile)
}

func SetupEmailRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES+"/email", middleware.APIKeyAuth)
	emailController := controllers.NewEmailController(db)

	api.Post("/send", emailController.SendContactMessage)
}
