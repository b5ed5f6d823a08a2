package reports

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
)

const defaultWindowDays = 30

// ParseRange turns the startDate/endDate query values into a closed UTC
// range of whole days. Missing start defaults to 30 days before now and
// missing end to today; the end is extended to the last instant of its day.
func ParseRange(startRaw, endRaw string, now time.Time) (Range, error) {
	now = now.UTC()

	start := startOfDay(now.AddDate(0, 0, -defaultWindowDays))
	if startRaw != "" {
		t, err := dto.ParseDate(startRaw)
		if err != nil {
			return Range{}, apperr.Validation("startDate: %v", err)
		}
		start = startOfDay(t)
	}

	end := endOfDay(now)
	if endRaw != "" {
		t, err := dto.ParseDate(endRaw)
		if err != nil {
			return Range{}, apperr.Validation("endDate: %v", err)
		}
		end = endOfDay(t)
	}

	if start.After(end) {
		return Range{}, apperr.Validation("startDate must not be after endDate")
	}
	return Range{Start: start, End: end}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
