package middleware

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/gofiber/fiber/v2"
)

// APIKeyAuth rejects any request that does not carry the shared-secret
// header. It runs before every handler.
func APIKeyAuth(ctx *fiber.Ctx) error {
	apiKey := ctx.Get("X-Api-Key")
	if apiKey == "" || apiKey != config.APIKey {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: Invalid API key",
		})
	}
	return ctx.Next()
}
