package handlers

import (
	"errors"
	"log"

	"wellness/internal/middleware"
	"wellness/internal/models"
	"wellness/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MySessionHandler handles HTTP requests for the authenticated owner's
// sessions. Every route behind it requires the auth gate.
type MySessionHandler struct {
	service *services.SessionService
}

// NewMySessionHandler creates a new MySessionHandler.
func NewMySessionHandler(service *services.SessionService) *MySessionHandler {
	return &MySessionHandler{
		service: service,
	}
}

// RegisterRoutes registers the owner session routes with the Fiber app.
func (h *MySessionHandler) RegisterRoutes(router fiber.Router, authGate fiber.Handler) {
	myRoutes := router.Group("/my-sessions", authGate)
	myRoutes.Get("/", h.HandleGetMySessions)
	myRoutes.Get("/:id", h.HandleGetSessionByID)
	myRoutes.Post("/save-draft", h.HandleSaveDraft)
	myRoutes.Post("/publish", h.HandlePublish)
	myRoutes.Delete("/:id", h.HandleDeleteSession)
}

// ownerID pulls the verified user injected by the auth gate.
func ownerID(c *fiber.Ctx) (string, bool) {
	user, ok := c.Locals(middleware.UserContextKey).(*models.User)
	if !ok {
		return "", false
	}
	return user.ID, true
}

// sessionError maps service errors to HTTP responses. Unexpected errors
// collapse to a generic 500; their detail stays in the server log.
func sessionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid session ID",
		})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Session not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fallback,
		})
	}
}

// HandleGetMySessions returns all of the owner's sessions, drafts included.
func (h *MySessionHandler) HandleGetMySessions(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}

	sessions, err := h.service.ListMine(owner)
	if err != nil {
		log.Printf("Error fetching sessions for user %s: %v", owner, err)
		return sessionError(c, err, "Server error fetching your sessions")
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

// HandleGetSessionByID returns a single owner-scoped session.
func (h *MySessionHandler) HandleGetSessionByID(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}

	session, err := h.service.Get(owner, c.Params("id"))
	if err != nil {
		log.Printf("Error fetching session %s for user %s: %v", c.Params("id"), owner, err)
		return sessionError(c, err, "Server error fetching the session")
	}
	return c.JSON(fiber.Map{"session": session})
}

// SessionRequest represents the body of save-draft and publish calls. Tags
// travel as a single comma-delimited string.
type SessionRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Tags        string `json:"tags"`
	JSONFileURL string `json:"json_file_url"`
}

func (r SessionRequest) fields() services.SessionFields {
	return services.SessionFields{
		Title:       r.Title,
		Tags:        r.Tags,
		JSONFileURL: r.JSONFileURL,
	}
}

// HandleSaveDraft creates a new draft when no id is supplied and updates
// the existing owner-scoped record otherwise. Updating always forces the
// status back to draft. The branch happens exactly once, here at the API
// boundary; the service has no optional-id upsert.
func (h *MySessionHandler) HandleSaveDraft(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}

	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing save-draft request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var session *models.Session
	var err error
	if req.ID != "" {
		session, err = h.service.UpdateDraft(owner, req.ID, req.fields())
	} else {
		session, err = h.service.CreateDraft(owner, req.fields())
	}
	if err != nil {
		log.Printf("Error saving draft for user %s: %v", owner, err)
		return sessionError(c, err, "Server error saving draft")
	}

	return c.JSON(fiber.Map{
		"message": "Draft saved successfully",
		"session": session,
	})
}

// HandlePublish publishes an existing owner-scoped session. The id is
// mandatory; publishing never creates a record.
func (h *MySessionHandler) HandlePublish(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}

	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing publish request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	session, err := h.service.Publish(owner, req.ID, req.fields())
	if err != nil {
		log.Printf("Error publishing session %s for user %s: %v", req.ID, owner, err)
		return sessionError(c, err, "Server error publishing session")
	}

	return c.JSON(fiber.Map{
		"message": "Session published successfully",
		"session": session,
	})
}

// HandleDeleteSession permanently removes an owner-scoped session.
func (h *MySessionHandler) HandleDeleteSession(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}

	if err := h.service.Delete(owner, c.Params("id")); err != nil {
		log.Printf("Error deleting session %s for user %s: %v", c.Params("id"), owner, err)
		return sessionError(c, err, "Server error deleting session")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Session deleted successfully",
	})
}
