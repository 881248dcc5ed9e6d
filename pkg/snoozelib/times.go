package snoozelib

import (
	"errors"
	"time"
)

// TimeType names an entry in the snooze time catalog.
type TimeType string

const (
	InAnHour     TimeType = "wake-in-an-hour"
	LaterToday   TimeType = "wake-later-today"
	ThisEvening  TimeType = "wake-this-evening"
	Tomorrow     TimeType = "wake-tomorrow"
	ThisWeekend  TimeType = "wake-this-weekend"
	NextWeek     TimeType = "wake-next-week"
	NextMonth    TimeType = "wake-next-month"
	NextOpenTime TimeType = "wake-next-open"
	PickTime     TimeType = "wake-pick-time"
)

var (
	// ErrPickTime signals that the caller must collect an explicit instant
	// from the user instead of computing one from the catalog.
	ErrPickTime = errors.New("snoozelib: time must be picked by the user")

	// ErrUnknownTimeType is returned for a catalog key that does not exist.
	ErrUnknownTimeType = errors.New("snoozelib: unknown time type")
)

const (
	morningHour = 9
	eveningHour = 19
)

// TimeForType resolves a catalog key to a wake time in milliseconds since
// the epoch, relative to ref. It is a pure function of (ref, t).
//
// The result is never before ref, except that fixed-bucket labels such as
// ThisEvening resolve to ref itself once the bucket has already started.
// NextOpenTime yields the NextOpen sentinel and PickTime yields ErrPickTime.
func TimeForType(ref time.Time, t TimeType) (int64, error) {
	switch t {
	case InAnHour:
		return Millis(ref.Add(time.Hour)), nil
	case LaterToday:
		return Millis(ref.Add(3 * time.Hour)), nil
	case ThisEvening:
		evening := dayAt(ref, eveningHour)
		if !evening.After(ref) {
			return Millis(ref), nil
		}
		return Millis(evening), nil
	case Tomorrow:
		return Millis(dayAt(ref.AddDate(0, 0, 1), morningHour)), nil
	case ThisWeekend:
		return Millis(nextWeekday(ref, time.Saturday)), nil
	case NextWeek:
		return Millis(nextWeekday(ref, time.Monday)), nil
	case NextMonth:
		return Millis(dayAt(ref.AddDate(0, 1, 0), morningHour)), nil
	case NextOpenTime:
		return NextOpen, nil
	case PickTime:
		return 0, ErrPickTime
	default:
		return 0, ErrUnknownTimeType
	}
}

// dayAt returns t's day at the given hour, minutes zeroed.
func dayAt(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// nextWeekday returns the first morning of the given weekday strictly after
// ref.
func nextWeekday(ref time.Time, day time.Weekday) time.Time {
	d := ref
	for {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() == day {
			return dayAt(d, morningHour)
		}
	}
}

// TimeEntry pairs a catalog key with its human label, in menu order.
type TimeEntry struct {
	Type  TimeType
	Label string
}

// KnownTimes returns the snooze time catalog in the order the context menu
// and panels present it.
func KnownTimes() []TimeEntry {
	return []TimeEntry{
		{InAnHour, "In an Hour"},
		{LaterToday, "Later Today"},
		{ThisEvening, "This Evening"},
		{Tomorrow, "Tomorrow"},
		{ThisWeekend, "This Weekend"},
		{NextWeek, "Next Week"},
		{NextMonth, "Next Month"},
		{NextOpenTime, "Next Time the Browser Opens"},
		{PickTime, "Pick a Date/Time"},
	}
}
