package services

import (
	"errors"
	"fmt"
	"time"

	"skincache/internal/repositories"
)

// dateLayout is the calendar-date format stored in last_checkin_date.
const dateLayout = "2006-01-02"

// Streak statuses returned to the caller.
const (
	StreakStatusNew          = "new"
	StreakStatusActive       = "active"
	CheckinStatusSuccess     = "success"
	CheckinStatusAlreadyDone = "already_done"
)

// StatusResult is the response of a streak status lookup.
type StatusResult struct {
	Status      string  `json:"status"`
	Day         int     `json:"day"`
	LastCheckin *string `json:"last_checkin"`
}

// CheckinResult is the response of a check-in attempt.
type CheckinResult struct {
	Status  string `json:"status"`
	Day     int    `json:"day"`
	Message string `json:"message"`
}

// StreakService implements the daily check-in state machine. The calendar
// date always comes from the injected clock, never from the client, so a
// spoofed request date cannot advance a streak.
type StreakService struct {
	trackerRepo repositories.TrackerRepository
	now         func() time.Time
}

// NewStreakService creates a new StreakService. A nil clock defaults to
// time.Now.
func NewStreakService(trackerRepo repositories.TrackerRepository, now func() time.Time) *StreakService {
	if now == nil {
		now = time.Now
	}
	return &StreakService{
		trackerRepo: trackerRepo,
		now:         now,
	}
}

// Status reads the streak state for a pair without side effects.
func (s *StreakService) Status(email, challenge string) (*StatusResult, error) {
	tracker, err := s.trackerRepo.Get(email, challenge)
	if errors.Is(err, repositories.ErrNotFound) {
		return &StatusResult{Status: StreakStatusNew, Day: 0, LastCheckin: nil}, nil
	}
	if err != nil {
		return nil, err
	}
	last := tracker.LastCheckinDate
	return &StatusResult{
		Status:      StreakStatusActive,
		Day:         tracker.CurrentDay,
		LastCheckin: &last,
	}, nil
}

// Checkin applies one check-in for today. Repeated check-ins on the same
// calendar day are idempotent; a check-in after a gap of any length advances
// the streak by one rather than resetting it.
func (s *StreakService) Checkin(email, challenge string) (*CheckinResult, error) {
	today := s.now().Format(dateLayout)

	tracker, already, err := s.trackerRepo.Checkin(email, challenge, today)
	if err != nil {
		return nil, err
	}

	if already {
		return &CheckinResult{
			Status:  CheckinStatusAlreadyDone,
			Day:     tracker.CurrentDay,
			Message: "Already checked in today",
		}, nil
	}
	return &CheckinResult{
		Status:  CheckinStatusSuccess,
		Day:     tracker.CurrentDay,
		Message: fmt.Sprintf("Day %d complete", tracker.CurrentDay),
	}, nil
}
