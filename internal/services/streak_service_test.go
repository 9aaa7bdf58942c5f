package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skincache/internal/repositories"
	"skincache/internal/services"
)

// fakeClock lets tests advance the process calendar day by day.
type fakeClock struct {
	current time.Time
}

func newFakeClock(day string) *fakeClock {
	t, _ := time.Parse("2006-01-02", day)
	return &fakeClock{current: t}
}

func (f *fakeClock) Now() time.Time { return f.current }

func (f *fakeClock) AdvanceDays(n int) { f.current = f.current.AddDate(0, 0, n) }

func TestStreakService_StatusForUnknownPair(t *testing.T) {
	service := services.NewStreakService(repositories.NewMockTrackerRepository(), nil)

	status, err := service.Status("a@x.com", "hydration")
	require.NoError(t, err)

	assert.Equal(t, services.StreakStatusNew, status.Status)
	assert.Equal(t, 0, status.Day)
	assert.Nil(t, status.LastCheckin)
}

func TestStreakService_FirstCheckin(t *testing.T) {
	clock := newFakeClock("2026-08-01")
	service := services.NewStreakService(repositories.NewMockTrackerRepository(), clock.Now)

	result, err := service.Checkin("a@x.com", "hydration")
	require.NoError(t, err)

	assert.Equal(t, services.CheckinStatusSuccess, result.Status)
	assert.Equal(t, 1, result.Day)

	status, err := service.Status("a@x.com", "hydration")
	require.NoError(t, err)
	assert.Equal(t, services.StreakStatusActive, status.Status)
	assert.Equal(t, 1, status.Day)
	if assert.NotNil(t, status.LastCheckin) {
		assert.Equal(t, "2026-08-01", *status.LastCheckin)
	}
}

func TestStreakService_SameDayCheckinIsIdempotent(t *testing.T) {
	clock := newFakeClock("2026-08-01")
	service := services.NewStreakService(repositories.NewMockTrackerRepository(), clock.Now)

	_, err := service.Checkin("a@x.com", "hydration")
	require.NoError(t, err)

	result, err := service.Checkin("a@x.com", "hydration")
	require.NoError(t, err)
	assert.Equal(t, services.CheckinStatusAlreadyDone, result.Status)
	assert.Equal(t, 1, result.Day)
}

func TestStreakService_ConsecutiveDays(t *testing.T) {
	clock := newFakeClock("2026-08-01")
	service := services.NewStreakService(repositories.NewMockTrackerRepository(), clock.Now)

	for day := 1; day <= 5; day++ {
		result, err := service.Checkin("a@x.com", "hydration")
		require.NoError(t, err)
		assert.Equal(t, services.CheckinStatusSuccess, result.Status)
		assert.Equal(t, day, result.Day)
		clock.AdvanceDays(1)
	}
}

// A missed day does not reset the streak: the next check-in still advances it
// by exactly one. Deliberate product behavior, not a bug.
func TestStreakService_GapStillAdvances(t *testing.T) {
	clock := newFakeClock("2026-08-01")
	service := services.NewStreakService(repositories.NewMockTrackerRepository(), clock.Now)

	_, err := service.Checkin("a@x.com", "hydration")
	require.NoError(t, err)

	clock.AdvanceDays(9)

	result, err := service.Checkin("a@x.com", "hydration")
	require.NoError(t, err)
	assert.Equal(t, services.CheckinStatusSuccess, result.Status)
	assert.Equal(t, 2, result.Day)
}

func TestStreakService_DayCountEqualsDistinctDates(t *testing.T) {
	clock := newFakeClock("2026-08-01")
	service := services.NewStreakService(repositories.NewMockTrackerRepository(), clock.Now)

	gaps := []int{1, 3, 1, 7, 2}
	day := 0
	for _, gap := range gaps {
		result, err := service.Checkin("a@x.com", "hydration")
		require.NoError(t, err)
		day++
		assert.Equal(t, day, result.Day)
		clock.AdvanceDays(gap)
	}
}
