// Package handlers_fiber wires the HTTP health surface.
package handlers_fiber

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/usecase"
)

// Handler serves liveness and session-status endpoints.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.StatusUsecaseInterface
}

// NewHandler constructs the HTTP handler with service dependencies.
func NewHandler(log *zap.SugaredLogger, uc usecase.StatusUsecaseInterface) *Handler {
	return &Handler{
		log: log.Named("transport.http"),
		uc:  uc,
	}
}

// RegisterRoutes attaches the health surface to the app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", h.Healthz)
	app.Get("/statusz", h.Statusz)
}
