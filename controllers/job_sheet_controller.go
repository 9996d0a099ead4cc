package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KenseiEmam/infinity-maintenance-backend/controllers/idgen"
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/KenseiEmam/infinity-maintenance-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type JobSheetController struct {
	DB *gorm.DB
}

func NewJobSheetController(db *gorm.DB) *JobSheetController {
	return &JobSheetController{DB: db}
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

type jobSheetCreateInput struct {
	Date            string                  `json:"date"`
	CallID          *string                 `json:"callId"`
	CustomerID      *string                 `json:"customerId"`
	MachineID       *string                 `json:"machineId"`
	EngineerID      *string                 `json:"engineerId"`
	ProblemReported string                  `json:"problemReported"`
	WorkCarriedOut  string                  `json:"workCarriedOut"`
	Recommendations string                  `json:"recommendations"`
	SpareParts      []models.SparePart      `json:"spareParts"`
	LaserData       []models.LaserDataEntry `json:"laserData"`
}

func (c *JobSheetController) CreateJobSheet(ctx *fiber.Ctx) error {
	var input jobSheetCreateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date := time.Now()
	if input.Date != "" {
		parsed, err := parseDate(input.Date)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
		}
		date = parsed
	}

	sheet := models.JobSheet{
		SheetNo:         idgen.NextSheetNo(),
		Date:            date,
		CallID:          input.CallID,
		CustomerID:      input.CustomerID,
		MachineID:       input.MachineID,
		EngineerID:      input.EngineerID,
		ProblemReported: input.ProblemReported,
		WorkCarriedOut:  input.WorkCarriedOut,
		Recommendations: input.Recommendations,
	}

	// Child identities are assigned here, never taken from the caller.
	for _, sp := range input.SpareParts {
		sp.Base = models.Base{}
		sheet.SpareParts = append(sheet.SpareParts, sp)
	}
	for _, ld := range input.LaserData {
		ld.Base = models.Base{}
		sheet.LaserData = append(sheet.LaserData, ld)
	}

	if err := c.DB.Create(&sheet).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var created models.JobSheet
	if err := c.preloaded().First(&created, "id = ?", sheet.ID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(created)
}

func (c *JobSheetController) preloaded() *gorm.DB {
	return c.DB.
		Preload("Customer").
		Preload("Machine").
		Preload("Engineer").
		Preload("SpareParts").
		Preload("LaserData").
		Preload("Attachments")
}

func (c *JobSheetController) GetAllJobSheets(ctx *fiber.Ctx) error {
	offset, limit := utils.Pagination(ctx)

	query := c.DB.Model(&models.JobSheet{})
	if customerName := ctx.Query("customerName"); customerName != "" {
		sub := c.DB.Model(&models.Customer{}).Select("id").
			Where("LOWER(name) LIKE ?", "%"+strings.ToLower(customerName)+"%")
		query = query.Where("customer_id IN (?)", sub)
	}
	if serial := ctx.Query("serialNumber"); serial != "" {
		sub := c.DB.Model(&models.Machine{}).Select("id").
			Where("LOWER(serial_number) LIKE ?", "%"+strings.ToLower(serial)+"%")
		query = query.Where("machine_id IN (?)", sub)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var sheets []models.JobSheet
	if err := query.
		Preload("Customer").
		Preload("Machine").
		Preload("Engineer").
		Preload("SpareParts").
		Preload("LaserData").
		Preload("Attachments").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&sheets).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"jobSheets": sheets, "count": count})
}

func (c *JobSheetController) GetJobSheetByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var sheet models.JobSheet
	if err := c.preloaded().First(&sheet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job Sheet not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(sheet)
}

type jobSheetUpdateInput struct {
	Date            *string                 `json:"date"`
	CallID          *string                 `json:"callId"`
	CustomerID      *string                 `json:"customerId"`
	MachineID       *string                 `json:"machineId"`
	EngineerID      *string                 `json:"engineerId"`
	ProblemReported *string                 `json:"problemReported"`
	WorkCarriedOut  *string                 `json:"workCarriedOut"`
	Recommendations *string                 `json:"recommendations"`
	SpareParts      []models.SparePart      `json:"spareParts"`
	LaserData       []models.LaserDataEntry `json:"laserData"`
}

// UpdateJobSheet applies a partial update to the sheet and reconciles both
// owned child collections against the submitted ones: children omitted from
// the submission are deleted, known identities are overwritten in full, the
// rest are created. The parent update and all child mutations run in one
// transaction; a child update hitting a concurrently deleted row aborts the
// whole operation.
func (c *JobSheetController) UpdateJobSheet(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var input jobSheetUpdateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if input.Date != nil {
		parsed, err := parseDate(*input.Date)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
		}
		updates["date"] = parsed
	}
	if input.CallID != nil {
		updates["call_id"] = *input.CallID
	}
	if input.CustomerID != nil {
		updates["customer_id"] = *input.CustomerID
	}
	if input.MachineID != nil {
		updates["machine_id"] = *input.MachineID
	}
	if input.EngineerID != nil {
		updates["engineer_id"] = *input.EngineerID
	}
	if input.ProblemReported != nil {
		updates["problem_reported"] = *input.ProblemReported
	}
	if input.WorkCarriedOut != nil {
		updates["work_carried_out"] = *input.WorkCarriedOut
	}
	if input.Recommendations != nil {
		updates["recommendations"] = *input.Recommendations
	}

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		var sheet models.JobSheet
		if err := tx.Preload("SpareParts").Preload("LaserData").First(&sheet, "id = ?", id).Error; err != nil {
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&sheet).Updates(updates).Error; err != nil {
				return err
			}
		}

		spDiff := services.Reconcile(sheet.SpareParts, input.SpareParts)
		if len(spDiff.DeleteIDs) > 0 {
			if err := tx.Where("id IN ? AND job_sheet_id = ?", spDiff.DeleteIDs, sheet.ID).
				Delete(&models.SparePart{}).Error; err != nil {
				return err
			}
		}
		for _, sp := range spDiff.Update {
			res := tx.Model(&models.SparePart{}).
				Where("id = ? AND job_sheet_id = ?", sp.ID, sheet.ID).
				Select("description", "quantity", "unit_cost").
				Updates(models.SparePart{
					Description: sp.Description,
					Quantity:    sp.Quantity,
					UnitCost:    sp.UnitCost,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		for _, sp := range spDiff.Create {
			sp.Base = models.Base{}
			sp.JobSheetID = sheet.ID
			if err := tx.Create(&sp).Error; err != nil {
				return err
			}
		}

		ldDiff := services.Reconcile(sheet.LaserData, input.LaserData)
		if len(ldDiff.DeleteIDs) > 0 {
			if err := tx.Where("id IN ? AND job_sheet_id = ?", ldDiff.DeleteIDs, sheet.ID).
				Delete(&models.LaserDataEntry{}).Error; err != nil {
				return err
			}
		}
		for _, ld := range ldDiff.Update {
			res := tx.Model(&models.LaserDataEntry{}).
				Where("id = ? AND job_sheet_id = ?", ld.ID, sheet.ID).
				Select("mode", "power_reading", "energy_reading", "remarks").
				Updates(models.LaserDataEntry{
					Mode:          ld.Mode,
					PowerReading:  ld.PowerReading,
					EnergyReading: ld.EnergyReading,
					Remarks:       ld.Remarks,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		for _, ld := range ldDiff.Create {
			ld.Base = models.Base{}
			ld.JobSheetID = sheet.ID
			if err := tx.Create(&ld).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job Sheet not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var updated models.JobSheet
	if err := c.preloaded().First(&updated, "id = ?", id).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(updated)
}

// DeleteJobSheet removes the sheet together with its spare parts, laser
// data and attachment pointers.
func (c *JobSheetController) DeleteJobSheet(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var sheet models.JobSheet
	if err := c.DB.First(&sheet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job Sheet not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_sheet_id = ?", sheet.ID).Delete(&models.SparePart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_sheet_id = ?", sheet.ID).Delete(&models.LaserDataEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_sheet_id = ?", sheet.ID).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sheet).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// ExportJobSheets writes the job-sheet history as an xlsx workbook.
func (c *JobSheetController) ExportJobSheets(ctx *fiber.Ctx) error {
	var sheets []models.JobSheet
	if err := c.DB.
		Preload("Customer").
		Preload("Machine").
		Preload("Engineer").
		Preload("SpareParts").
		Order("created_at desc").
		Find(&sheets).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Sheet No", "Date", "Customer", "Machine Serial", "Engineer", "Problem Reported", "Work Carried Out", "Spare Parts"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("Sheet1", cell, h)
	}

	for row, sheet := range sheets {
		customerName := ""
		if sheet.Customer != nil {
			customerName = sheet.Customer.Name
		}
		serial := ""
		if sheet.Machine != nil {
			serial = sheet.Machine.SerialNumber
		}
		engineerName := ""
		if sheet.Engineer != nil {
			engineerName = sheet.Engineer.Name
		}

		values := []interface{}{
			sheet.SheetNo,
			sheet.Date.Format("2006-01-02"),
			customerName,
			serial,
			engineerName,
			sheet.ProblemReported,
			sheet.WorkCarriedOut,
			len(sheet.SpareParts),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue("Sheet1", cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "job-sheets.xlsx"))
	return ctx.Send(buf.Bytes())
}
