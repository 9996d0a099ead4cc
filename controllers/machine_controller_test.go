package controllers_test

import (
	"net/http"
	"testing"

	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/gofiber/fiber/v2"
)

func TestCreateMachine(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)

	var created models.Machine
	resp := doJSON(t, app, jsonRequest(fiber.MethodPost, "/api/machines", fiber.Map{
		"serialNumber": "SN-9999",
		"customerId":   customer.ID,
		"modelId":      machine.ModelID,
	}), &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if created.SerialNumber != "SN-9999" {
		t.Fatalf("unexpected machine: %+v", created)
	}
}

func TestCreateMachineMissingFields(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, jsonRequest(fiber.MethodPost, "/api/machines", fiber.Map{
		"serialNumber": "SN-9999",
	}), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetAllMachinesFilters(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)

	otherCustomer := models.Customer{Name: "Other Clinic"}
	if err := db.Create(&otherCustomer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	other := models.Machine{SerialNumber: "SN-2002", CustomerID: otherCustomer.ID, ModelID: machine.ModelID}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed machine: %v", err)
	}

	var result struct {
		Machines []models.Machine `json:"machines"`
		Count    int64            `json:"count"`
	}
	resp := doJSON(t, app, jsonRequest(fiber.MethodGet, "/api/machines?customerId="+customer.ID, nil), &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if result.Count != 1 || len(result.Machines) != 1 {
		t.Fatalf("expected one machine for the customer, got count %d len %d", result.Count, len(result.Machines))
	}
	if result.Machines[0].Customer == nil || result.Machines[0].Customer.Name != customer.Name {
		t.Fatal("expected customer preloaded")
	}
	if result.Machines[0].Model == nil || result.Machines[0].Model.Manufacturer == nil {
		t.Fatal("expected model and manufacturer preloaded")
	}
}

func TestGetMachineByIDIncludesHistory(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer, machine := seedMachine(t, db)
	seedJobSheet(t, db, customer.ID, machine.ID, nil, nil)

	var got models.Machine
	resp := doJSON(t, app, jsonRequest(fiber.MethodGet, "/api/machines/"+machine.ID, nil), &got)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(got.JobSheets) != 1 {
		t.Fatalf("expected the service history included, got %d sheets", len(got.JobSheets))
	}
}

func TestDeleteMachine(t *testing.T) {
	app, db, _ := newTestApp(t)
	_, machine := seedMachine(t, db)

	resp := doJSON(t, app, jsonRequest(fiber.MethodDelete, "/api/machines/"+machine.ID, nil), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, jsonRequest(fiber.MethodDelete, "/api/machines/"+machine.ID, nil), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on a second delete, got %d", resp.StatusCode)
	}
}
