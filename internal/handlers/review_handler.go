package handlers

import (
	"github.com/gofiber/fiber/v2"

	"skincache/internal/models"
	"skincache/internal/services"
	"skincache/pkg/logging"
)

// ReviewHandler handles HTTP requests for community reviews.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/submit-review", h.HandleSubmit)
	router.Get("/reviews", h.HandleList)
}

// HandleSubmit stores a new review.
func (h *ReviewHandler) HandleSubmit(c *fiber.Ctx) error {
	var req models.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "name, skinType, title and review are required",
		})
	}

	if _, err := h.service.Submit(req); err != nil {
		logging.Sugar.Errorw("review submit failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not store review",
		})
	}

	return c.JSON(fiber.Map{"message": "Review added!"})
}

// HandleList returns every review, newest first.
func (h *ReviewHandler) HandleList(c *fiber.Ctx) error {
	reviews, err := h.service.List()
	if err != nil {
		logging.Sugar.Errorw("review list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not retrieve reviews",
		})
	}
	return c.JSON(reviews)
}
