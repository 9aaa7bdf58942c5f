package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skincache/internal/models"
	"skincache/internal/repositories"
	"skincache/internal/services"
	"skincache/pkg/logging"
)

var validate = validator.New()

// WaitlistHandler handles HTTP requests for waitlist sign-ups.
type WaitlistHandler struct {
	service *services.WaitlistService
}

// NewWaitlistHandler creates a new WaitlistHandler.
func NewWaitlistHandler(service *services.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{
		service: service,
	}
}

// RegisterRoutes registers the waitlist routes with the Fiber app.
func (h *WaitlistHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/join", h.HandleJoin)
}

// HandleJoin adds a new entry to the waitlist.
func (h *WaitlistHandler) HandleJoin(c *fiber.Ctx) error {
	var req models.JoinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Name and a valid email are required",
		})
	}

	if _, err := h.service.Join(req); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "Email already exists",
			})
		}
		logging.Sugar.Errorw("waitlist join failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not join waitlist",
		})
	}

	return c.JSON(fiber.Map{"message": "Success"})
}
