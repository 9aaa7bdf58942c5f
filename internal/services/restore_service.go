package services

import (
	"context"
	"fmt"

	"skincache/internal/clients"
	"skincache/internal/models"
	"skincache/internal/repositories"
	"skincache/pkg/logging"
)

// RestoreService pulls the remote review backup into the local store at
// startup. The merge is strictly additive: rows already present locally are
// never touched, and remote rows are matched on (title, name). That key is
// not unique, so two distinct reviews sharing a title and author collapse
// into one across a restore; the backup rows carry no stable id to do better.
type RestoreService struct {
	reviewRepo repositories.ReviewRepository
	sheets     *clients.SheetsClient
	sheetURL   string
}

// NewRestoreService creates a new RestoreService.
func NewRestoreService(reviewRepo repositories.ReviewRepository, sheets *clients.SheetsClient, sheetURL string) *RestoreService {
	return &RestoreService{
		reviewRepo: reviewRepo,
		sheets:     sheets,
		sheetURL:   sheetURL,
	}
}

// Run performs one restore pass and returns how many rows were merged in.
// Callers treat failure as non-fatal: an unreachable backup service must not
// prevent startup.
func (s *RestoreService) Run(ctx context.Context) (int, error) {
	if s.sheetURL == "" {
		logging.Sugar.Debugw("no review backup sheet configured, skipping restore")
		return 0, nil
	}

	remote, err := s.sheets.FetchReviews(ctx, s.sheetURL)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch review backup: %w", err)
	}

	restored := 0
	for _, row := range remote {
		exists, err := s.reviewRepo.ExistsByTitleAndName(row.Title, row.Name)
		if err != nil {
			return restored, fmt.Errorf("restore lookup failed: %w", err)
		}
		if exists {
			continue
		}

		review := &models.Review{
			Name:      row.Name,
			SkinType:  row.SkinType,
			Title:     row.Title,
			FullStory: row.FullStory,
			Location:  row.Location,
			Concerns:  row.Concerns,
			Rating:    row.Rating,
			// The backup schema calls this column date.
			Time: row.Date,
		}
		if review.Rating == 0 {
			review.Rating = 5
		}
		if review.Time == "" {
			review.Time = "Just now"
		}

		if err := s.reviewRepo.Create(review); err != nil {
			return restored, fmt.Errorf("restore insert failed: %w", err)
		}
		restored++
	}
	return restored, nil
}
