package slot

import (
	"strconv"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// Window is a half-open [Start, End) interval of zero-padded "HH:MM" clock times.
type Window struct {
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

func (w Window) Valid() bool {
	return ValidClock(w.Start) && ValidClock(w.End) && w.Start < w.End
}

// Overlaps reports whether two windows intersect. Touching boundaries do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && w.End > o.Start
}

// StartHour returns the hour component of Start.
func (w Window) StartHour() (int, error) {
	if !ValidClock(w.Start) {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(w.Start[:2])
}

// ValidClock accepts only zero-padded "HH:MM" so that string order equals time order.
func ValidClock(s string) bool {
	if len(s) != len(clockLayout) {
		return false
	}
	_, err := time.Parse(clockLayout, s)
	return err == nil
}

func ValidDate(s string) bool {
	if len(s) != len(dateLayout) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Weekday returns the lowercase English weekday name of a YYYY-MM-DD date.
func Weekday(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return lowerWeekday(t.Weekday())
}

func lowerWeekday(d time.Weekday) string {
	names := [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	return names[d]
}
