package facility

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a clock time within one day, stored as minutes since
// midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return NewTimeOfDay(h, m), nil
}

// timeOfDayFrom extracts the TimeOfDay from an instant.
func timeOfDayFrom(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// Minutes returns the value as minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON renders the time as "HH:MM".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalJSON accepts "HH:MM".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if _, err := fmt.Sscanf(string(data), "%q", &s); err != nil {
		return fmt.Errorf("invalid time %s", data)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Shift is a scheduled duty interval for one staff member on one day.
// The end is strictly after the start within the same day; overnight
// shifts are not supported.
type Shift struct {
	Day   time.Weekday `json:"day"`
	Start TimeOfDay    `json:"start"`
	End   TimeOfDay    `json:"end"`
}

// NewShift validates the interval and builds a shift.
func NewShift(day time.Weekday, start, end TimeOfDay) (Shift, error) {
	if end <= start {
		return Shift{}, fmt.Errorf("shift end %s must be after start %s", end, start)
	}
	return Shift{Day: day, Start: start, End: end}, nil
}

// Hours returns the shift duration in whole hours.
func (s Shift) Hours() int {
	return (s.End.Minutes() - s.Start.Minutes()) / 60
}

// covers reports whether the shift fully contains [start, end].
func (s Shift) covers(start, end TimeOfDay) bool {
	return s.Start <= start && s.End >= end
}

func (s Shift) String() string {
	return fmt.Sprintf("%s %s-%s", s.Day, s.Start, s.End)
}

// ParseWeekday maps a day name ("Monday", case-insensitive) to a
// time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}
