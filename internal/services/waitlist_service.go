package services

import (
	"context"

	"skincache/internal/clients"
	"skincache/internal/dispatch"
	"skincache/internal/mailer"
	"skincache/internal/models"
	"skincache/internal/repositories"
	"skincache/pkg/events"
	"skincache/pkg/logging"
)

// WaitlistService handles waitlist sign-ups. The row insert is synchronous;
// the backup push, welcome email and event mirror are deferred and
// best-effort.
type WaitlistService struct {
	userRepo   repositories.UserRepository
	sheets     *clients.SheetsClient
	sheetURL   string
	mail       *mailer.Mailer
	dispatcher *dispatch.Dispatcher
	publisher  *events.Publisher
}

// NewWaitlistService creates a new WaitlistService. The publisher may be nil
// when no broker is configured.
func NewWaitlistService(
	userRepo repositories.UserRepository,
	sheets *clients.SheetsClient,
	sheetURL string,
	mail *mailer.Mailer,
	dispatcher *dispatch.Dispatcher,
	publisher *events.Publisher,
) *WaitlistService {
	return &WaitlistService{
		userRepo:   userRepo,
		sheets:     sheets,
		sheetURL:   sheetURL,
		mail:       mail,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

// Join inserts the waitlist entry and schedules the deferred side effects.
// A duplicate email returns repositories.ErrEmailTaken untouched so the
// handler can answer with a conflict.
func (s *WaitlistService) Join(req models.JoinRequest) (*models.User, error) {
	user := &models.User{Name: req.Name, Email: req.Email}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if s.sheetURL != "" {
		name, email := user.Name, user.Email
		s.dispatcher.Enqueue("waitlist.sheet-push", func(ctx context.Context) error {
			return s.sheets.PushRow(ctx, s.sheetURL, map[string]interface{}{
				"name":  name,
				"email": email,
			})
		})
	}

	if s.mail != nil && s.mail.Configured() {
		name, email := user.Name, user.Email
		s.dispatcher.Enqueue("waitlist.welcome-email", func(ctx context.Context) error {
			return s.mail.SendWelcome(email, name)
		})
	}

	if s.publisher != nil {
		id, email := user.ID, user.Email
		s.dispatcher.Enqueue("waitlist.event", func(ctx context.Context) error {
			return s.publisher.Publish("waitlist.joined", map[string]interface{}{
				"id":    id,
				"email": email,
			})
		})
	} else {
		logging.Sugar.Debugw("no event broker configured, skipping waitlist.joined")
	}

	return user, nil
}
