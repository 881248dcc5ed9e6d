package common

import "github.com/niteowll/SnoozeTabs/pkg/snoozelib"

// SnoozeParams is the payload carried by schedule, confirm, cancel and
// click operations. It mirrors the snooze record shape plus the ephemeral
// TabId of the originating tab, which is never persisted.
type SnoozeParams struct {
	Url      string             `json:"url"`
	Title    string             `json:"title"`
	Time     int64              `json:"time"`
	TimeType snoozelib.TimeType `json:"timeType"`
	WindowId int64              `json:"windowId,omitempty"`
	TabId    int64              `json:"tabId,omitempty"`
}

// Record converts the params to a snooze record with its content-derived
// key populated. The ephemeral TabId is dropped here.
func (p *SnoozeParams) Record() *snoozelib.SnoozeRecord {
	r := &snoozelib.SnoozeRecord{
		Url:      p.Url,
		Title:    p.Title,
		WakeTime: p.Time,
		TimeType: p.TimeType,
		WindowId: p.WindowId,
	}
	r.Key = snoozelib.IdForRecord(r)
	return r
}

// UpdateParams carries an atomic edit: the record to drop and its
// replacement.
type UpdateParams struct {
	Old     SnoozeParams `json:"old"`
	Updated SnoozeParams `json:"updated"`
}

// SetConfirmParams toggles the persisted dont-show preference.
type SetConfirmParams struct {
	DontShow bool `json:"dontShow"`
}

// ConfirmResponse reports the key under which a record was persisted.
type ConfirmResponse struct {
	Key string `json:"key"`
}

// ListResponse returns the pending record set, earliest wake time first.
type ListResponse struct {
	Items    []*snoozelib.SnoozeRecord `json:"items"`
	DontShow bool                      `json:"dont_show"`
}

// WakeUpdate is pushed to pool subscribers as due tabs are materialized.
type WakeUpdate struct {
	Action   WakeAction `json:"action"`
	Key      string     `json:"key"`
	Url      string     `json:"url"`
	Title    string     `json:"title"`
	WindowId int64      `json:"window_id,omitempty"`
	TabId    int64      `json:"tab_id,omitempty"`
}
