package controllers

import (
	"errors"
	"strings"

	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/KenseiEmam/infinity-maintenance-backend/utils"
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MachineController struct {
	DB *gorm.DB
}

func NewMachineController(db *gorm.DB) *MachineController {
	return &MachineController{DB: db}
}

type machineInput struct {
	SerialNumber  string `json:"serialNumber" validate:"required"`
	CustomerID    string `json:"customerId" validate:"required"`
	ModelID       string `json:"modelId" validate:"required"`
	UnderWarranty bool   `json:"underWarranty"`
}

func (c *MachineController) CreateMachine(ctx *fiber.Ctx) error {
	var input machineInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	machine := models.Machine{
		SerialNumber:  input.SerialNumber,
		CustomerID:    input.CustomerID,
		ModelID:       input.ModelID,
		UnderWarranty: input.UnderWarranty,
	}
	if err := c.DB.Create(&machine).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(machine)
}

func (c *MachineController) GetAllMachines(ctx *fiber.Ctx) error {
	offset, limit := utils.Pagination(ctx)

	query := c.DB.Model(&models.Machine{})
	if customerID := ctx.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if serial := ctx.Query("serialNumber"); serial != "" {
		query = query.Where("LOWER(serial_number) LIKE ?", "%"+strings.ToLower(serial)+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var machines []models.Machine
	if err := query.
		Preload("Customer").
		Preload("Model.Manufacturer").
		Order("serial_number asc").
		Offset(offset).Limit(limit).
		Find(&machines).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"machines": machines, "count": count})
}

func (c *MachineController) GetMachineByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var machine models.Machine
	err := c.DB.
		Preload("Customer").
		Preload("Model.Manufacturer").
		Preload("JobSheets").
		Preload("Calls").
		Preload("ScheduledVisits").
		First(&machine, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(machine)
}

func (c *MachineController) UpdateMachine(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var input struct {
		SerialNumber  *string `json:"serialNumber"`
		CustomerID    *string `json:"customerId"`
		ModelID       *string `json:"modelId"`
		UnderWarranty *bool   `json:"underWarranty"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var machine models.Machine
	if err := c.DB.First(&machine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if input.SerialNumber != nil {
		updates["serial_number"] = *input.SerialNumber
	}
	if input.CustomerID != nil {
		updates["customer_id"] = *input.CustomerID
	}
	if input.ModelID != nil {
		updates["model_id"] = *input.ModelID
	}
	if input.UnderWarranty != nil {
		updates["under_warranty"] = *input.UnderWarranty
	}
	if len(updates) > 0 {
		if err := c.DB.Model(&machine).Updates(updates).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	if err := c.DB.Preload("Customer").Preload("Model.Manufacturer").First(&machine, "id = ?", id).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(machine)
}

func (c *MachineController) DeleteMachine(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var machine models.Machine
	if err := c.DB.First(&machine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&machine).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
