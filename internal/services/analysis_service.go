package services

import (
	"context"
	"errors"

	"skincache/internal/clients"
	"skincache/pkg/logging"
)

// ErrMissingKeys is returned when the vision API credentials are absent.
var ErrMissingKeys = errors.New("analysis keys missing")

// AnalysisService combines the face/skin attribute lookup with an
// air-quality reading into one report.
type AnalysisService struct {
	vision *clients.VisionClient
	air    *clients.AirQualityClient
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(vision *clients.VisionClient, air *clients.AirQualityClient) *AnalysisService {
	return &AnalysisService{
		vision: vision,
		air:    air,
	}
}

// Analyze forwards the image to the vision API and, when coordinates are
// present, looks up the local air quality. The vision call is the value of
// the request and its failure is surfaced; a weather failure degrades to a
// neutral index instead.
func (s *AnalysisService) Analyze(ctx context.Context, image []byte, lat, lon string) (map[string]interface{}, error) {
	if !s.vision.Configured() {
		return nil, ErrMissingKeys
	}

	face, err := s.vision.Detect(ctx, image)
	if err != nil {
		return nil, err
	}

	aqi := clients.NeutralAQI
	if lat != "" && lon != "" && s.air.Configured() {
		if v, err := s.air.AQI(ctx, lat, lon); err != nil {
			logging.Sugar.Warnw("air-quality lookup failed, using neutral index", "error", err)
		} else {
			aqi = v
		}
	}

	return map[string]interface{}{
		"face":    face,
		"weather": map[string]interface{}{"aqi": aqi},
	}, nil
}
