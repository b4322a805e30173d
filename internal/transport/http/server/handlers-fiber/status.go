package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Healthz reports process liveness.
func (h *Handler) Healthz(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusOK)
}

// Statusz reports gateway session state. It returns 503 while the bot is
// disconnected so orchestrators can gate readiness on it.
func (h *Handler) Statusz(c *fiber.Ctx) error {
	status := h.uc.Status()
	code := http.StatusOK
	if !status.Connected {
		code = http.StatusServiceUnavailable
	}
	return c.Status(code).JSON(status)
}
