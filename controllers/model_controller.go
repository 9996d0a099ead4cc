package controllers

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ModelController struct {
	DB *gorm.DB
}

func NewModelController(db *gorm.DB) *ModelController {
	return &ModelController{DB: db}
}

func (c *ModelController) CreateModel(ctx *fiber.Ctx) error {
	var input struct {
		Name           string `json:"name"`
		ManufacturerID string `json:"manufacturerId"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" || input.ManufacturerID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing fields"})
	}

	model := models.Model{
		Name:           input.Name,
		ManufacturerID: input.ManufacturerID,
	}
	if err := c.DB.Create(&model).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(model)
}

func (c *ModelController) GetAllModels(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.Model{})
	if manufacturerID := ctx.Query("manufacturerId"); manufacturerID != "" {
		query = query.Where("manufacturer_id = ?", manufacturerID)
	}

	var list []models.Model
	if err := query.Preload("Manufacturer").Order("name asc").Find(&list).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(list)
}
