// Package snoozelib provides the core structures and utilities for managing
// snoozed tabs: the persisted record set, the named time catalog, and the
// per-installation identity used by the bookmark mirror.
package snoozelib

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// NextOpen is the sentinel wake time meaning "reopen the next time the
// browser starts" rather than at a fixed instant. Records carrying it are
// rewritten to the current time during the daemon's startup pass.
const NextOpen int64 = -1

// SnoozeRecord describes a tab that has been closed and should be reopened
// at WakeTime. It is the unit of scheduled work in the alarm store.
type SnoozeRecord struct {
	// Key is the content-derived identifier of the record. It is computed
	// once when the record is confirmed and stored immutably; see IdForRecord.
	Key string `json:"key"`
	// Url is the address the woken tab navigates to.
	Url string `json:"url"`
	// Title is the tab title shown in notifications and bookmarks.
	Title string `json:"title"`
	// WakeTime is the wake instant in milliseconds since the epoch, or the
	// NextOpen sentinel.
	WakeTime int64 `json:"time"`
	// TimeType is the catalog key that produced WakeTime, retained so the
	// record keeps its human label when displayed or re-edited.
	TimeType TimeType `json:"timeType"`
	// WindowId is the window the tab was snoozed from. The woken tab is
	// placed back there if that window still exists.
	WindowId int64 `json:"windowId,omitempty"`
}

// RecordsMap is the alarm store mapping, indexed by record key.
type RecordsMap map[string]*SnoozeRecord

// Concrete reports whether the record has a real wake instant rather than
// the NextOpen sentinel.
func (r *SnoozeRecord) Concrete() bool {
	return r.WakeTime != NextOpen
}

// Due reports whether the record's wake time has passed at now. NextOpen
// records are never due; they are resolved at startup instead.
func (r *SnoozeRecord) Due(now time.Time) bool {
	return r.Concrete() && r.WakeTime <= Millis(now)
}

// IdForRecord derives the record key from its stable fields. The same
// (url, title, time) triple always yields the same key regardless of
// insertion order, and distinct (url, time) pairs never collide.
func IdForRecord(r *SnoozeRecord) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s\x00%s\x00%d", r.Url, r.Title, r.WakeTime))
	return hex.EncodeToString(sum[:16])
}

// Millis converts t to milliseconds since the epoch.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts a wake time back to a time.Time. It must not be called
// with the NextOpen sentinel.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
