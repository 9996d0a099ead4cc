package controllers

import (
	"errors"
	"mime/multipart"
	"path/filepath"

	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadController struct {
	DB       *gorm.DB
	Uploader services.ObjectUploader
}

func NewUploadController(db *gorm.DB, uploader services.ObjectUploader) *UploadController {
	return &UploadController{DB: db, Uploader: uploader}
}

func detectContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// UploadFile stores the file in object storage and attaches it to the
// job sheet. No attachment row is written when the store fails.
func (c *UploadController) UploadFile(ctx *fiber.Ctx) error {
	header, err := ctx.FormFile("file")
	jobSheetID := ctx.FormValue("jobSheetId")
	if err != nil || jobSheetID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file or jobSheetId"})
	}

	var sheet models.JobSheet
	if err := c.DB.First(&sheet, "id = ?", jobSheetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job Sheet not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	file, err := header.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	contentType := detectContentType(header)
	key := uuid.NewString() + filepath.Ext(header.Filename)

	url, err := c.Uploader.Upload(ctx.Context(), key, contentType, file)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload failed"})
	}

	attachment := models.Attachment{
		JobSheetID: sheet.ID,
		URL:        url,
		FileType:   services.ResourceType(contentType),
	}
	if err := c.DB.Create(&attachment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(attachment)
}
