package handlers

import (
	"log"

	"wellness/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles the anonymous public catalog.
type SessionHandler struct {
	service *services.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

// RegisterRoutes registers the public catalog routes with the Fiber app.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/sessions", h.HandleGetPublicSessions)
}

// HandleGetPublicSessions lists every published session. No auth, no
// pagination.
func (h *SessionHandler) HandleGetPublicSessions(c *fiber.Ctx) error {
	sessions, err := h.service.ListPublished()
	if err != nil {
		log.Printf("Error fetching public sessions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}
