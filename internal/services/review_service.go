package services

import (
	"context"

	"skincache/internal/clients"
	"skincache/internal/dispatch"
	"skincache/internal/models"
	"skincache/internal/repositories"
	"skincache/pkg/events"
)

// ReviewService handles review submission and listing. Like the waitlist,
// the insert is synchronous and the backup push is deferred.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	sheets     *clients.SheetsClient
	sheetURL   string
	dispatcher *dispatch.Dispatcher
	publisher  *events.Publisher
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	sheets *clients.SheetsClient,
	sheetURL string,
	dispatcher *dispatch.Dispatcher,
	publisher *events.Publisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		sheets:     sheets,
		sheetURL:   sheetURL,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

// Submit stores a new review and schedules the backup push.
func (s *ReviewService) Submit(req models.ReviewRequest) (*models.Review, error) {
	review := &models.Review{
		Name:      req.Name,
		SkinType:  req.SkinType,
		Title:     req.Title,
		FullStory: req.Review,
		Location:  req.Location,
		Concerns:  req.Concerns,
		Rating:    5,
		Time:      "Just now",
	}
	if review.Location == "" {
		review.Location = "Community Member"
	}
	if review.Concerns == "" {
		review.Concerns = "User Verification Pending"
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	if s.sheetURL != "" {
		row := map[string]interface{}{
			"name":      review.Name,
			"skinType":  review.SkinType,
			"title":     review.Title,
			"fullStory": review.FullStory,
			"location":  review.Location,
			"concerns":  review.Concerns,
			"rating":    review.Rating,
			"date":      review.Time,
		}
		s.dispatcher.Enqueue("review.sheet-push", func(ctx context.Context) error {
			return s.sheets.PushRow(ctx, s.sheetURL, row)
		})
	}

	if s.publisher != nil {
		id, title := review.ID, review.Title
		s.dispatcher.Enqueue("review.event", func(ctx context.Context) error {
			return s.publisher.Publish("review.created", map[string]interface{}{
				"id":    id,
				"title": title,
			})
		})
	}

	return review, nil
}

// List returns every review, newest first.
func (s *ReviewService) List() ([]models.Review, error) {
	return s.reviewRepo.GetAll()
}
