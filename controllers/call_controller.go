package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/KenseiEmam/infinity-maintenance-backend/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CallController struct {
	DB *gorm.DB
}

func NewCallController(db *gorm.DB) *CallController {
	return &CallController{DB: db}
}

func (c *CallController) CreateCall(ctx *fiber.Ctx) error {
	var input struct {
		CustomerID  string  `json:"customerId"`
		MachineID   *string `json:"machineId"`
		Description string  `json:"description"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.CustomerID == "" || input.Description == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	call := models.Call{
		CustomerID:  input.CustomerID,
		MachineID:   input.MachineID,
		Description: input.Description,
		CallTime:    time.Now(),
	}
	if err := c.DB.Create(&call).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(call)
}

// AssignCall stamps the assignment and queues a notification for the
// engineer. The assignment and the notification intent commit together.
func (c *CallController) AssignCall(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var input struct {
		AssignedToID string `json:"assignedToId"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.AssignedToID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "assignedToId is required"})
	}

	var engineer models.User
	if err := c.DB.First(&engineer, "id = ?", input.AssignedToID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Engineer not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var call models.Call
	if err := c.DB.Preload("Customer").Preload("Machine").First(&call, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Call not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&call).Updates(map[string]interface{}{
			"assigned_to_id": input.AssignedToID,
			"assigned_at":    now,
		}).Error; err != nil {
			return err
		}

		serial := "N/A"
		if call.Machine != nil {
			serial = call.Machine.SerialNumber
		}
		customerName := ""
		if call.Customer != nil {
			customerName = call.Customer.Name
		}

		return services.EnqueueEmail(tx, services.Email{
			To:      engineer.Email,
			Subject: "You have been assigned a new call",
			HTML: fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>You have been assigned a new service call.</p>
        <p><strong>Customer:</strong> %s</p>
        <p><strong>Machine Serial:</strong> %s</p>
        <p><strong>Description:</strong> %s</p>
        <p><strong>Assigned At:</strong> %s</p>
        <p>- Maintenance System</p>
      `, engineer.Name, customerName, serial, call.Description, now.Format("2006-01-02 15:04:05")),
		})
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	call.AssignedToID = &engineer.ID
	call.AssignedAt = &now
	return ctx.Status(fiber.StatusOK).JSON(call)
}

func (c *CallController) GetAllCalls(ctx *fiber.Ctx) error {
	offset, limit := utils.Pagination(ctx)

	query := c.DB.Model(&models.Call{})
	if customerID := ctx.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var calls []models.Call
	if err := query.
		Preload("Customer").
		Preload("Machine").
		Preload("AssignedTo").
		Order("call_time desc").
		Offset(offset).Limit(limit).
		Find(&calls).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"calls": calls, "count": count})
}
