package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"skincache/internal/services"
	"skincache/pkg/logging"
)

// AnalysisHandler handles the two analysis proxy endpoints. Both always
// answer with JSON: upstream failures become {"error": ...} payloads rather
// than transport-level errors.
type AnalysisHandler struct {
	analysis    *services.AnalysisService
	ingredients *services.IngredientService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysis *services.AnalysisService, ingredients *services.IngredientService) *AnalysisHandler {
	return &AnalysisHandler{
		analysis:    analysis,
		ingredients: ingredients,
	}
}

// RegisterRoutes registers the analysis routes with the Fiber app.
func (h *AnalysisHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/analyze", h.HandleAnalyze)
	router.Post("/analyze-ingredients", h.HandleAnalyzeIngredients)
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// HandleAnalyze runs the face/skin analysis on an uploaded photo, combined
// with an air-quality reading for the given coordinates.
func (h *AnalysisHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "image file is required",
		})
	}
	image, err := readUpload(file)
	if err != nil {
		logging.Sugar.Errorw("failed to read uploaded image", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not read image file",
		})
	}

	result, err := h.analysis.Analyze(c.Context(), image, c.FormValue("lat"), c.FormValue("lon"))
	if err != nil {
		if errors.Is(err, services.ErrMissingKeys) {
			return c.JSON(fiber.Map{"error": "analysis keys missing"})
		}
		logging.Sugar.Errorw("face analysis failed", "error", err)
		return c.JSON(fiber.Map{"error": "analysis service unavailable"})
	}
	return c.JSON(result)
}

// HandleAnalyzeIngredients runs the generative ingredient analysis on free
// text and/or an uploaded label photo.
func (h *AnalysisHandler) HandleAnalyzeIngredients(c *fiber.Ctx) error {
	text := c.FormValue("text")

	var (
		image    []byte
		mimeType string
	)
	if file, err := c.FormFile("file"); err == nil {
		data, err := readUpload(file)
		if err != nil {
			logging.Sugar.Errorw("failed to read uploaded label image", "error", err)
			return c.JSON(fiber.Map{"error": "could not read uploaded file"})
		}
		image = data
		mimeType = file.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
	}

	analysis, err := h.ingredients.Analyze(c.Context(), text, image, mimeType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoInput):
			return c.JSON(fiber.Map{"error": "no ingredient text or image provided"})
		case errors.Is(err, services.ErrMissingKeys):
			return c.JSON(fiber.Map{"error": "analysis keys missing"})
		default:
			logging.Sugar.Errorw("ingredient analysis failed", "error", err)
			return c.JSON(fiber.Map{"error": "analysis service unavailable"})
		}
	}
	return c.JSON(fiber.Map{"analysis": analysis})
}
