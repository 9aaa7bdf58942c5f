package handlers

import (
	"github.com/gofiber/fiber/v2"

	"skincache/internal/models"
	"skincache/internal/services"
	"skincache/pkg/logging"
)

// ChallengeHandler handles HTTP requests for challenge streaks.
type ChallengeHandler struct {
	service *services.StreakService
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(service *services.StreakService) *ChallengeHandler {
	return &ChallengeHandler{
		service: service,
	}
}

// RegisterRoutes registers the challenge routes with the Fiber app.
func (h *ChallengeHandler) RegisterRoutes(router fiber.Router) {
	challengeRoutes := router.Group("/challenge")
	challengeRoutes.Post("/status", h.HandleStatus)
	challengeRoutes.Post("/checkin", h.HandleCheckin)
}

func parseChallengeRequest(c *fiber.Ctx) (*models.ChallengeRequest, error) {
	var req models.ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return &req, nil
}

// HandleStatus returns the streak state for a pair without side effects.
func (h *ChallengeHandler) HandleStatus(c *fiber.Ctx) error {
	req, err := parseChallengeRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "email and challenge_name are required",
		})
	}

	status, err := h.service.Status(req.Email, req.ChallengeName)
	if err != nil {
		logging.Sugar.Errorw("streak status failed", "email", req.Email, "challenge", req.ChallengeName, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not read challenge status",
		})
	}
	return c.JSON(status)
}

// HandleCheckin applies one daily check-in for a pair.
func (h *ChallengeHandler) HandleCheckin(c *fiber.Ctx) error {
	req, err := parseChallengeRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "email and challenge_name are required",
		})
	}

	result, err := h.service.Checkin(req.Email, req.ChallengeName)
	if err != nil {
		logging.Sugar.Errorw("streak checkin failed", "email", req.Email, "challenge", req.ChallengeName, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not check in",
		})
	}
	return c.JSON(result)
}
