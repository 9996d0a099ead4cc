package routes

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/controllers"
	"github.com/KenseiEmam/infinity-maintenance-backend/middleware"
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES+"/users", middleware.APIKeyAuth)
	userController := controllers.NewUserController(db)

	api.Post("/register-first-admin", userController.RegisterFirstAdmin)
	api.Post("/login", userController.Login)
	api.Post("/setup-password", userController.SetupPassword)
	api.Post("/forgot-password", userController.ForgotPassword)
	api.Post("/reset-password", userController.ResetPassword)

	api.Post("/invite", middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin), userController.InviteUser)

	api.Get("/", userController.GetAllUsers)
	api.Get("/:id", userController.GetUserByID)
	api.Patch("/:id", userController.UpdateUser)
}
