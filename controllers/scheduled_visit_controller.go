package controllers

import (
	"errors"
	"fmt"

	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/KenseiEmam/infinity-maintenance-backend/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ScheduledVisitController struct {
	DB *gorm.DB
}

func NewScheduledVisitController(db *gorm.DB) *ScheduledVisitController {
	return &ScheduledVisitController{DB: db}
}

// CreateScheduledVisit rejects a booking when any visit already falls on
// the same calendar day. The check is read-then-write with no locking: two
// concurrent requests for the same day can both pass it. Accepted
// limitation at the expected deployment concurrency.
func (c *ScheduledVisitController) CreateScheduledVisit(ctx *fiber.Ctx) error {
	var input struct {
		MachineID string `json:"machineId"`
		VisitDate string `json:"visitDate"`
		Notes     string `json:"notes"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.MachineID == "" || input.VisitDate == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	visitDate, err := parseDate(input.VisitDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid visitDate"})
	}

	var machine models.Machine
	if err := c.DB.Preload("Customer").First(&machine, "id = ?", input.MachineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	start, end := utils.DayWindow(visitDate)
	var existing int64
	if err := c.DB.Model(&models.ScheduledVisit{}).
		Where("visit_date >= ? AND visit_date <= ?", start, end).
		Count(&existing).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if existing > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This date is already booked"})
	}

	visit := models.ScheduledVisit{
		MachineID: input.MachineID,
		VisitDate: visitDate,
		Notes:     input.Notes,
	}

	notes := input.Notes
	if notes == "" {
		notes = "None"
	}
	customerName := ""
	if machine.Customer != nil {
		customerName = machine.Customer.Name
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&visit).Error; err != nil {
			return err
		}
		return services.EnqueueEmail(tx, services.Email{
			To:      config.MaintenanceEmail,
			Subject: "A new booking was scheduled!",
			HTML: fmt.Sprintf(`
        <p>Hello Team,</p>
        <p>A new visit for Machine %s (Customer: %s) has been booked on %s.</p>
        <p>Notes if any: %s</p>
        <p>- Maintenance System</p>
      `, machine.SerialNumber, customerName, visitDate.Format("02 Jan 2006"), notes),
		})
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	visit.Machine = &machine
	return ctx.Status(fiber.StatusCreated).JSON(visit)
}

func (c *ScheduledVisitController) GetAllScheduledVisits(ctx *fiber.Ctx) error {
	offset, limit := utils.Pagination(ctx)

	query := c.DB.Model(&models.ScheduledVisit{})
	if visitDate := ctx.Query("visitDate"); visitDate != "" {
		parsed, err := parseDate(visitDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid visitDate"})
		}
		start, end := utils.DayWindow(parsed)
		query = query.Where("visit_date >= ? AND visit_date <= ?", start, end)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var visits []models.ScheduledVisit
	if err := query.
		Preload("Machine.Customer").
		Order("visit_date asc").
		Offset(offset).Limit(limit).
		Find(&visits).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"visits": visits, "count": count})
}

func (c *ScheduledVisitController) GetScheduledVisitByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var visit models.ScheduledVisit
	if err := c.DB.Preload("Machine.Customer").First(&visit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Visit not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(visit)
}

func (c *ScheduledVisitController) UpdateScheduledVisit(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var input struct {
		MachineID *string `json:"machineId"`
		VisitDate *string `json:"visitDate"`
		Notes     *string `json:"notes"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var visit models.ScheduledVisit
	if err := c.DB.First(&visit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Visit not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if input.MachineID != nil {
		updates["machine_id"] = *input.MachineID
	}
	if input.VisitDate != nil {
		parsed, err := parseDate(*input.VisitDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid visitDate"})
		}
		updates["visit_date"] = parsed
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) > 0 {
		if err := c.DB.Model(&visit).Updates(updates).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	if err := c.DB.Preload("Machine.Customer").First(&visit, "id = ?", id).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(visit)
}

func (c *ScheduledVisitController) DeleteScheduledVisit(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var visit models.ScheduledVisit
	if err := c.DB.First(&visit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Visit not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&visit).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
