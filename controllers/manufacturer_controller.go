package controllers

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ManufacturerController struct {
	DB *gorm.DB
}

func NewManufacturerController(db *gorm.DB) *ManufacturerController {
	return &ManufacturerController{DB: db}
}

func (c *ManufacturerController) CreateManufacturer(ctx *fiber.Ctx) error {
	var input struct {
		Name string `json:"name"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name required"})
	}

	manufacturer := models.Manufacturer{Name: input.Name}
	if err := c.DB.Create(&manufacturer).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(manufacturer)
}

func (c *ManufacturerController) GetAllManufacturers(ctx *fiber.Ctx) error {
	var list []models.Manufacturer
	if err := c.DB.Order("name asc").Find(&list).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(list)
}
