package snoozelib

import (
	"testing"
	"time"
)

// refNoon is a Wednesday at 12:00 local time, used as the anchor for the
// catalog resolution tests.
var refNoon = time.Date(2024, time.March, 13, 12, 0, 0, 0, time.Local)

func TestTimeForTypeCatalog(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		typ  TimeType
		want time.Time
	}{
		{
			name: "in an hour",
			ref:  refNoon,
			typ:  InAnHour,
			want: refNoon.Add(time.Hour),
		},
		{
			name: "later today",
			ref:  refNoon,
			typ:  LaterToday,
			want: refNoon.Add(3 * time.Hour),
		},
		{
			name: "this evening before the evening",
			ref:  refNoon,
			typ:  ThisEvening,
			want: time.Date(2024, time.March, 13, 19, 0, 0, 0, time.Local),
		},
		{
			name: "this evening once the evening started",
			ref:  time.Date(2024, time.March, 13, 21, 30, 0, 0, time.Local),
			typ:  ThisEvening,
			want: time.Date(2024, time.March, 13, 21, 30, 0, 0, time.Local),
		},
		{
			name: "tomorrow morning",
			ref:  refNoon,
			typ:  Tomorrow,
			want: time.Date(2024, time.March, 14, 9, 0, 0, 0, time.Local),
		},
		{
			name: "this weekend is saturday morning",
			ref:  refNoon,
			typ:  ThisWeekend,
			want: time.Date(2024, time.March, 16, 9, 0, 0, 0, time.Local),
		},
		{
			name: "next week is monday morning",
			ref:  refNoon,
			typ:  NextWeek,
			want: time.Date(2024, time.March, 18, 9, 0, 0, 0, time.Local),
		},
		{
			name: "next week from a monday skips to the following monday",
			ref:  time.Date(2024, time.March, 18, 12, 0, 0, 0, time.Local),
			typ:  NextWeek,
			want: time.Date(2024, time.March, 25, 9, 0, 0, 0, time.Local),
		},
		{
			name: "next month same day",
			ref:  refNoon,
			typ:  NextMonth,
			want: time.Date(2024, time.April, 13, 9, 0, 0, 0, time.Local),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TimeForType(tc.ref, tc.typ)
			if err != nil {
				t.Fatalf("TimeForType(%s): %v", tc.typ, err)
			}
			if got != Millis(tc.want) {
				t.Errorf("TimeForType(%s) = %s, want %s",
					tc.typ, FromMillis(got), tc.want)
			}
		})
	}
}

func TestTimeForTypeNextOpenSentinel(t *testing.T) {
	got, err := TimeForType(refNoon, NextOpenTime)
	if err != nil {
		t.Fatalf("TimeForType(NextOpenTime): %v", err)
	}
	if got != NextOpen {
		t.Errorf("TimeForType(NextOpenTime) = %d, want sentinel %d", got, NextOpen)
	}
}

func TestTimeForTypePickTime(t *testing.T) {
	if _, err := TimeForType(refNoon, PickTime); err != ErrPickTime {
		t.Errorf("TimeForType(PickTime) err = %v, want ErrPickTime", err)
	}
}

func TestTimeForTypeUnknown(t *testing.T) {
	if _, err := TimeForType(refNoon, TimeType("wake-never")); err != ErrUnknownTimeType {
		t.Errorf("TimeForType(unknown) err = %v, want ErrUnknownTimeType", err)
	}
}

// TestTimeForTypeNeverBeforeRef checks the catalog invariant that no
// resolvable entry produces an instant before its reference time.
func TestTimeForTypeNeverBeforeRef(t *testing.T) {
	refs := []time.Time{
		refNoon,
		time.Date(2024, time.December, 31, 23, 59, 0, 0, time.Local),
		time.Date(2024, time.March, 16, 8, 0, 0, 0, time.Local), // saturday morning
	}
	for _, ref := range refs {
		for _, entry := range KnownTimes() {
			got, err := TimeForType(ref, entry.Type)
			if err != nil || got == NextOpen {
				continue
			}
			if got < Millis(ref) {
				t.Errorf("TimeForType(%s at %s) = %s, before ref",
					entry.Type, ref, FromMillis(got))
			}
		}
	}
}

func TestKnownTimesOrder(t *testing.T) {
	entries := KnownTimes()
	if len(entries) != 9 {
		t.Fatalf("KnownTimes() returned %d entries, want 9", len(entries))
	}
	if entries[0].Type != InAnHour {
		t.Errorf("first entry = %s, want %s", entries[0].Type, InAnHour)
	}
	if entries[len(entries)-1].Type != PickTime {
		t.Errorf("last entry = %s, want %s", entries[len(entries)-1].Type, PickTime)
	}
	for _, e := range entries {
		if e.Label == "" {
			t.Errorf("entry %s has no label", e.Type)
		}
	}
}
