package snoozelib

import (
	"testing"

	"github.com/spf13/afero"
)

func newTestManager(t *testing.T) (*Manager, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	m, err := InitManagerFs(fs, "userdata.snooze")
	if err != nil {
		t.Fatalf("InitManagerFs: %v", err)
	}
	return m, fs
}

func testRecord(url string, wake int64) *SnoozeRecord {
	r := &SnoozeRecord{Url: url, Title: "t", WakeTime: wake, TimeType: PickTime}
	r.Key = IdForRecord(r)
	return r
}

func TestManagerSaveAndGet(t *testing.T) {
	m, _ := newTestManager(t)
	defer m.Close()

	r := testRecord("https://example.com/a", 1000)
	if err := m.Save(RecordsMap{r.Key: r}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := m.Get(r.Key)
	if got == nil {
		t.Fatal("Get returned nil after Save")
	}
	if got.Url != r.Url || got.WakeTime != r.WakeTime {
		t.Errorf("Get = %+v, want %+v", got, r)
	}
}

// TestManagerSaveMerges verifies that Save overwrites matching keys and
// leaves the rest of the store untouched.
func TestManagerSaveMerges(t *testing.T) {
	m, _ := newTestManager(t)
	defer m.Close()

	a := testRecord("https://example.com/a", 1000)
	b := testRecord("https://example.com/b", 2000)
	if err := m.Save(RecordsMap{a.Key: a, b.Key: b}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated := *a
	updated.WakeTime = 5000
	if err := m.Save(RecordsMap{a.Key: &updated}); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	if got := m.Get(a.Key); got.WakeTime != 5000 {
		t.Errorf("updated record wake = %d, want 5000", got.WakeTime)
	}
	if got := m.Get(b.Key); got == nil || got.WakeTime != 2000 {
		t.Errorf("untouched record changed: %+v", got)
	}
}

func TestManagerRemove(t *testing.T) {
	m, _ := newTestManager(t)
	defer m.Close()

	a := testRecord("https://example.com/a", 1000)
	b := testRecord("https://example.com/b", 2000)
	if err := m.Save(RecordsMap{a.Key: a, b.Key: b}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Remove(a.Key, "no-such-key"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if m.Get(a.Key) != nil {
		t.Error("removed record still present")
	}
	if m.Get(b.Key) == nil {
		t.Error("unrelated record removed")
	}
}

func TestManagerGetAllReturnsCopy(t *testing.T) {
	m, _ := newTestManager(t)
	defer m.Close()

	a := testRecord("https://example.com/a", 1000)
	if err := m.Save(RecordsMap{a.Key: a}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	all := m.GetAll()
	delete(all, a.Key)
	if m.Get(a.Key) == nil {
		t.Error("mutating GetAll result changed the store")
	}
}

func TestManagerPersistsAcrossReopen(t *testing.T) {
	fs := afero.NewMemMapFs()
	m, err := InitManagerFs(fs, "userdata.snooze")
	if err != nil {
		t.Fatalf("InitManagerFs: %v", err)
	}
	a := testRecord("https://example.com/a", 1000)
	if err := m.Save(RecordsMap{a.Key: a}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.SetDontShow(true); err != nil {
		t.Fatalf("SetDontShow: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	m2, err := InitManagerFs(fs, "userdata.snooze")
	if err != nil {
		t.Fatalf("InitManagerFs reopen: %v", err)
	}
	defer m2.Close()
	if got := m2.Get(a.Key); got == nil || got.Url != a.Url {
		t.Errorf("record lost across reopen: %+v", got)
	}
	if !m2.DontShow() {
		t.Error("dont-show preference lost across reopen")
	}
}

// TestManagerCorruptFileStartsFresh verifies that an unreadable store file
// yields an empty store instead of an error.
func TestManagerCorruptFileStartsFresh(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "userdata.snooze", []byte("not gob data"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, err := InitManagerFs(fs, "userdata.snooze")
	if err != nil {
		t.Fatalf("InitManagerFs on corrupt file: %v", err)
	}
	defer m.Close()
	if n := len(m.GetAll()); n != 0 {
		t.Errorf("corrupt store yielded %d records, want 0", n)
	}
}
