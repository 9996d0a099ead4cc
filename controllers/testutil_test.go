package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/migration"
	"github.com/KenseiEmam/infinity-maintenance-backend/routes"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAPIKey = "test-api-key"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type fakeUploader struct {
	fail bool
	keys []string
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	if f.fail {
		return "", fmt.Errorf("storage unavailable")
	}
	f.keys = append(f.keys, key)
	return "https://files.test/" + key, nil
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *fakeUploader) {
	t.Helper()

	config.MAIN_ROUTES = "/api"
	config.APIKey = testAPIKey
	config.JWTSecret = "test-secret"
	config.JWTExpiration = 3600
	config.FrontendURL = "http://localhost:3000"
	config.MaintenanceEmail = "maintenance@example.com"
	config.ContactEmail = "contact@example.com"

	db := newTestDB(t)
	uploader := &fakeUploader{}

	app := fiber.New()
	routes.SetupUserRoutes(app, db)
	routes.SetupCustomerRoutes(app, db)
	routes.SetupMachineRoutes(app, db)
	routes.SetupModelRoutes(app, db)
	routes.SetupManufacturerRoutes(app, db)
	routes.SetupCallRoutes(app, db)
	routes.SetupJobSheetRoutes(app, db)
	routes.SetupScheduledVisitRoutes(app, db)
	routes.SetupUploadRoutes(app, db, uploader)
	routes.SetupEmailRoutes(app, db)

	return app, db, uploader
}

var _ services.ObjectUploader = (*fakeUploader)(nil)

func jsonRequest(method, path string, payload interface{}) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", testAPIKey)
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, out interface{}) *http.Response {
	t.Helper()

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL.Path, err)
	}
	if out != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response of %s %s: %v", req.Method, req.URL.Path, err)
		}
	}
	return resp
}
