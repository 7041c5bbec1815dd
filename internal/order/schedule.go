package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

const clockLayout = "15:04"

func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// ParseClock validates an HH:MM time of day.
func ParseClock(s string) (string, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("time must be HH:MM: %w", err)
	}
	return t.Format(clockLayout), nil
}

// NextRun is the first occurrence of the schedule strictly after now, in
// now's location.
func NextRun(r model.RecurringOrder, now time.Time) (time.Time, error) {
	clock, err := time.Parse(clockLayout, r.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule %s: time must be HH:MM", r.ID)
	}
	days := (int(r.Weekday) - int(now.Weekday()) + 7) % 7
	candidate := time.Date(now.Year(), now.Month(), now.Day()+days, clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate, nil
}
