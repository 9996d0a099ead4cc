package controllers

import (
	"fmt"
	"html"

	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EmailController struct {
	DB *gorm.DB
}

func NewEmailController(db *gorm.DB) *EmailController {
	return &EmailController{DB: db}
}

// SendContactMessage queues a contact-form message to the company inbox.
// Reply-To carries the sender's own address.
func (c *EmailController) SendContactMessage(ctx *fiber.Ctx) error {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" || input.Email == "" || input.Message == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	}

	err := services.EnqueueEmail(c.DB, services.Email{
		To:      config.ContactEmail,
		ReplyTo: input.Email,
		Subject: fmt.Sprintf("New message from %s", input.Name),
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", input.Name, input.Email, input.Message),
		HTML: fmt.Sprintf(`
      <p><strong>From:</strong> %s &lt;%s&gt;</p>
      <p>%s</p>
    `, html.EscapeString(input.Name), html.EscapeString(input.Email), html.EscapeString(input.Message)),
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
