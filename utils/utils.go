package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GenerateToken returns a high-entropy random hex string of n bytes.
// Used for single-use invite and reset tokens.
func GenerateToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Pagination parses the page/pageSize query parameters with the defaults
// the API uses everywhere.
func Pagination(ctx *fiber.Ctx) (offset, limit int) {
	page, err := strconv.Atoi(ctx.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(ctx.Query("pageSize", "10"))
	if err != nil || size < 1 {
		size = 10
	}
	return (page - 1) * size, size
}

// DayWindow returns the local calendar-day boundaries around t,
// 00:00:00.000 through 23:59:59.999.
func DayWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end = start.Add(24*time.Hour - time.Millisecond)
	return
}
