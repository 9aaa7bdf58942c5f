package services

import (
	"context"
	"errors"
	"strings"

	"skincache/internal/clients"
)

// ErrNoInput is returned when an ingredient analysis request carries neither
// text nor an image.
var ErrNoInput = errors.New("no ingredient text or image provided")

// ingredientPrompt instructs the model to answer with one fixed JSON object
// and nothing else.
const ingredientPrompt = `You are a skincare ingredient analyst. Analyze the ingredient list provided (as text below and/or in the attached image) and respond with ONLY a JSON object in exactly this shape, no prose and no markdown:
{
  "rating": <integer 1-10 overall formula score>,
  "skinTypeFit": {"oily": "<good|neutral|bad>", "dry": "<good|neutral|bad>", "sensitive": "<good|neutral|bad>", "combination": "<good|neutral|bad>"},
  "heroIngredients": [{"name": "<ingredient>", "benefit": "<one sentence>"}],
  "riskyIngredients": [{"name": "<ingredient>", "risk": "<one sentence>"}],
  "verdict": "<two sentence summary>"
}`

// IngredientService proxies ingredient lists to the generative model and
// normalizes its reply.
type IngredientService struct {
	genai *clients.GenAIClient
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(genai *clients.GenAIClient) *IngredientService {
	return &IngredientService{
		genai: genai,
	}
}

// Analyze builds the prompt, calls the model and returns its reply with any
// markdown code fences stripped. The reply is passed through as a string;
// the caller is responsible for treating it as opaque JSON.
func (s *IngredientService) Analyze(ctx context.Context, text string, image []byte, mimeType string) (string, error) {
	if strings.TrimSpace(text) == "" && len(image) == 0 {
		return "", ErrNoInput
	}
	if !s.genai.Configured() {
		return "", ErrMissingKeys
	}

	prompt := ingredientPrompt
	if strings.TrimSpace(text) != "" {
		prompt += "\n\nIngredient list:\n" + text
	}

	raw, err := s.genai.Generate(ctx, prompt, image, mimeType)
	if err != nil {
		return "", err
	}
	return StripCodeFence(raw), nil
}

// StripCodeFence removes a wrapping markdown code fence (``` or ```json)
// from the model's reply, which some models add despite instructions.
func StripCodeFence(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```")
	if nl := strings.IndexByte(out, '\n'); nl >= 0 {
		// Drop the language tag on the opening fence line.
		first := strings.TrimSpace(out[:nl])
		if first == "" || !strings.ContainsAny(first, "{[") {
			out = out[nl+1:]
		}
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
