package controllers_test

import (
	"net/http"
	"testing"

	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedMachine(t *testing.T, db *gorm.DB) (models.Customer, models.Machine) {
	t.Helper()

	customer := models.Customer{Name: "Dar Al Shifa", Address: "Hawally"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	manufacturer := models.Manufacturer{Name: "Lumenis"}
	if err := db.Create(&manufacturer).Error; err != nil {
		t.Fatalf("seed manufacturer: %v", err)
	}
	model := models.Model{Name: "M22", ManufacturerID: manufacturer.ID}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("seed model: %v", err)
	}
	machine := models.Machine{SerialNumber: "SN-1001", CustomerID: customer.ID, ModelID: model.ID}
	if err := db.Create(&machine).Error; err != nil {
		t.Fatalf("seed machine: %v", err)
	}
	return customer, machine
}

func seedJobSheet(t *testing.T, db *gorm.DB, customerID, machineID string, parts []models.SparePart, laser []models.LaserDataEntry) models.JobSheet {
	t.Helper()

	sheet := models.JobSheet{
		SheetNo:         "JS-TEST-" + t.Name(),
		CustomerID:      &customerID,
		MachineID:       &machineID,
		ProblemReported: "No output",
		SpareParts:      parts,
		LaserData:       laser,
	}
	if err := db.Create(&sheet).Error; err != nil {
		t.Fatalf("seed job sheet: %v", err)
	}
	return sheet
}

func TestCreateJobSheetAssignsChildIdentity(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)

	var created models.JobSheet
	resp := doJSON(t, app, jsonRequest(fiber.MethodPost, "/api/job-sheets", fiber.Map{
		"date":            "2026-08-20",
		"customerId":      customer.ID,
		"machineId":       machine.ID,
		"problemReported": "Low power output",
		"spareParts": []fiber.Map{
			{"description": "Flash lamp", "quantity": 1, "unitCost": "250.00"},
		},
		"laserData": []fiber.Map{
			{"mode": "SR", "powerReading": "14.2", "energyReading": "30"},
		},
	}), &created)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if created.SheetNo == "" {
		t.Fatal("expected a generated sheet number")
	}
	if len(created.SpareParts) != 1 || created.SpareParts[0].ID == "" {
		t.Fatalf("expected one spare part with a generated id, got %+v", created.SpareParts)
	}
	if created.SpareParts[0].JobSheetID != created.ID {
		t.Fatal("expected spare part linked to the new sheet")
	}
	if len(created.LaserData) != 1 || created.LaserData[0].ID == "" {
		t.Fatalf("expected one laser entry with a generated id, got %+v", created.LaserData)
	}
}

// Omitting a collection from the update means the caller wants it empty.
func TestUpdateJobSheetOmittedCollectionDeletesChildren(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)
	sheet := seedJobSheet(t, db, customer.ID, machine.ID,
		[]models.SparePart{{Description: "Flash lamp", Quantity: 1}},
		[]models.LaserDataEntry{{Mode: "SR"}},
	)

	resp := doJSON(t, app, jsonRequest(fiber.MethodPatch, "/api/job-sheets/"+sheet.ID, fiber.Map{
		"workCarriedOut": "Replaced lamp",
	}), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var parts, laser int64
	db.Model(&models.SparePart{}).Where("job_sheet_id = ?", sheet.ID).Count(&parts)
	db.Model(&models.LaserDataEntry{}).Where("job_sheet_id = ?", sheet.ID).Count(&laser)
	if parts != 0 || laser != 0 {
		t.Fatalf("expected children removed, got %d parts %d laser rows", parts, laser)
	}

	var reloaded models.JobSheet
	db.First(&reloaded, "id = ?", sheet.ID)
	if reloaded.WorkCarriedOut != "Replaced lamp" {
		t.Fatalf("expected parent updated, got %q", reloaded.WorkCarriedOut)
	}
}

// Submitting a known identity overwrites every mutable field, zero values
// included.
func TestUpdateJobSheetOverwritesChildInFull(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)
	sheet := seedJobSheet(t, db, customer.ID, machine.ID,
		[]models.SparePart{{Description: "Flash lamp", Quantity: 5, UnitCost: decimal.RequireFromString("250.00")}},
		nil,
	)
	partID := sheet.SpareParts[0].ID

	resp := doJSON(t, app, jsonRequest(fiber.MethodPatch, "/api/job-sheets/"+sheet.ID, fiber.Map{
		"spareParts": []fiber.Map{
			{"id": partID, "description": "Flash lamp", "quantity": 2, "unitCost": "0"},
		},
	}), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var part models.SparePart
	if err := db.First(&part, "id = ?", partID).Error; err != nil {
		t.Fatalf("reload part: %v", err)
	}
	if part.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", part.Quantity)
	}
	if !part.UnitCost.IsZero() {
		t.Fatalf("expected zero unit cost applied, got %s", part.UnitCost)
	}

	var count int64
	db.Model(&models.SparePart{}).Where("job_sheet_id = ?", sheet.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected the same single row, got %d", count)
	}
}

func TestUpdateJobSheetUnknownChildIDCreates(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)
	sheet := seedJobSheet(t, db, customer.ID, machine.ID, nil, nil)

	var updated models.JobSheet
	resp := doJSON(t, app, jsonRequest(fiber.MethodPatch, "/api/job-sheets/"+sheet.ID, fiber.Map{
		"spareParts": []fiber.Map{
			{"id": "never-persisted", "description": "Fuse", "quantity": 1},
		},
	}), &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if len(updated.SpareParts) != 1 {
		t.Fatalf("expected one part, got %d", len(updated.SpareParts))
	}
	if updated.SpareParts[0].ID == "never-persisted" {
		t.Fatal("expected the submitted identity to be reassigned")
	}
	if updated.SpareParts[0].Description != "Fuse" {
		t.Fatalf("unexpected part: %+v", updated.SpareParts[0])
	}
}

func TestUpdateJobSheetReconcilesBothCollections(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)
	sheet := seedJobSheet(t, db, customer.ID, machine.ID,
		[]models.SparePart{
			{Description: "Flash lamp", Quantity: 1},
			{Description: "Filter", Quantity: 2},
		},
		[]models.LaserDataEntry{{Mode: "SR", PowerReading: "14.2"}},
	)
	keepID := sheet.SpareParts[0].ID
	dropID := sheet.SpareParts[1].ID
	laserID := sheet.LaserData[0].ID

	var updated models.JobSheet
	resp := doJSON(t, app, jsonRequest(fiber.MethodPatch, "/api/job-sheets/"+sheet.ID, fiber.Map{
		"spareParts": []fiber.Map{
			{"id": keepID, "description": "Flash lamp", "quantity": 3},
			{"description": "Fuse", "quantity": 1},
		},
		"laserData": []fiber.Map{
			{"id": laserID, "mode": "SR", "powerReading": "15.0", "energyReading": "", "remarks": ""},
		},
	}), &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if len(updated.SpareParts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(updated.SpareParts))
	}
	if err := db.First(&models.SparePart{}, "id = ?", dropID).Error; err != gorm.ErrRecordNotFound {
		t.Fatalf("expected dropped part gone, got %v", err)
	}
	var kept models.SparePart
	db.First(&kept, "id = ?", keepID)
	if kept.Quantity != 3 {
		t.Fatalf("expected kept part updated, got %d", kept.Quantity)
	}

	var laser models.LaserDataEntry
	db.First(&laser, "id = ?", laserID)
	if laser.PowerReading != "15.0" {
		t.Fatalf("expected laser reading overwritten, got %q", laser.PowerReading)
	}
}

func TestUpdateJobSheetNotFound(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, jsonRequest(fiber.MethodPatch, "/api/job-sheets/missing", fiber.Map{
		"workCarriedOut": "x",
	}), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteJobSheetRemovesChildren(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)
	sheet := seedJobSheet(t, db, customer.ID, machine.ID,
		[]models.SparePart{{Description: "Flash lamp", Quantity: 1}},
		[]models.LaserDataEntry{{Mode: "SR"}},
	)

	resp := doJSON(t, app, jsonRequest(fiber.MethodDelete, "/api/job-sheets/"+sheet.ID, nil), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	var parts, laser int64
	db.Model(&models.SparePart{}).Where("job_sheet_id = ?", sheet.ID).Count(&parts)
	db.Model(&models.LaserDataEntry{}).Where("job_sheet_id = ?", sheet.ID).Count(&laser)
	if parts != 0 || laser != 0 {
		t.Fatalf("expected children removed with the sheet, got %d parts %d laser rows", parts, laser)
	}
}

func TestGetAllJobSheetsFiltersBySerial(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)
	other := models.Machine{SerialNumber: "SN-2002", CustomerID: customer.ID, ModelID: machine.ModelID}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed machine: %v", err)
	}
	seedJobSheet(t, db, customer.ID, machine.ID, nil, nil)

	otherSheet := models.JobSheet{SheetNo: "JS-OTHER-" + t.Name(), CustomerID: &customer.ID, MachineID: &other.ID}
	if err := db.Create(&otherSheet).Error; err != nil {
		t.Fatalf("seed sheet: %v", err)
	}

	var result struct {
		JobSheets []models.JobSheet `json:"jobSheets"`
		Count     int64             `json:"count"`
	}
	resp := doJSON(t, app, jsonRequest(fiber.MethodGet, "/api/job-sheets?serialNumber=sn-1001", nil), &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if result.Count != 1 || len(result.JobSheets) != 1 {
		t.Fatalf("expected the single matching sheet, got count %d len %d", result.Count, len(result.JobSheets))
	}
	if result.JobSheets[0].Machine == nil || result.JobSheets[0].Machine.SerialNumber != "SN-1001" {
		t.Fatal("expected machine preloaded on the match")
	}
}
