package browser

import (
	"context"
	"fmt"
	"sync"
)

// FakeTab records a tab opened through the Fake host.
type FakeTab struct {
	Id       int64
	Url      string
	WindowId int64
	Active   bool
}

// FakeNote records a notification created through the Fake host.
type FakeNote struct {
	Id      string
	Title   string
	Message string
}

// FakeInjection records a script injection through the Fake host.
type FakeInjection struct {
	TabId  int64
	Script string
}

// Fake is an in-memory Host for tests. Call records are exported so tests
// can assert on them; failure knobs simulate host-API rejections.
type Fake struct {
	mu sync.Mutex

	WindowIds []int64
	TabTotal  int

	Opened      []FakeTab
	Closed      []int64
	Activated   []int64
	Focused     []int64
	Injections  []FakeInjection
	Notes       []FakeNote

	// FailOpenUrl makes Open fail for a specific url.
	FailOpenUrl string
	// FailInject makes every Inject call fail.
	FailInject bool

	nextTab int64
}

// NewFake creates a Fake host with the given windows present.
func NewFake(windowIds ...int64) *Fake {
	return &Fake{WindowIds: windowIds, nextTab: 100}
}

func (f *Fake) Open(_ context.Context, url string, windowId int64, active bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailOpenUrl != "" && url == f.FailOpenUrl {
		return 0, fmt.Errorf("fake: cannot open %s", url)
	}
	f.nextTab++
	f.Opened = append(f.Opened, FakeTab{Id: f.nextTab, Url: url, WindowId: windowId, Active: active})
	f.TabTotal++
	return f.nextTab, nil
}

func (f *Fake) Close(_ context.Context, tabId int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = append(f.Closed, tabId)
	if f.TabTotal > 0 {
		f.TabTotal--
	}
	return nil
}

func (f *Fake) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.TabTotal, nil
}

func (f *Fake) Activate(_ context.Context, tabId int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Activated = append(f.Activated, tabId)
	return nil
}

func (f *Fake) Inject(_ context.Context, tabId int64, script string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailInject {
		return fmt.Errorf("fake: injection into tab %d rejected", tabId)
	}
	f.Injections = append(f.Injections, FakeInjection{TabId: tabId, Script: script})
	return nil
}

func (f *Fake) List(_ context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int64, len(f.WindowIds))
	copy(out, f.WindowIds)
	return out, nil
}

func (f *Fake) Focus(_ context.Context, windowId int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Focused = append(f.Focused, windowId)
	return nil
}

func (f *Fake) Create(_ context.Context, id, title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Notes = append(f.Notes, FakeNote{Id: id, Title: title, Message: message})
	return nil
}

// ClosedTabs returns a copy of the recorded close calls. Safe to poll
// while deferred closes are still firing.
func (f *Fake) ClosedTabs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int64, len(f.Closed))
	copy(out, f.Closed)
	return out
}

// OpenedTab returns the recorded open call for url, if any.
func (f *Fake) OpenedTab(url string) (FakeTab, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.Opened {
		if t.Url == url {
			return t, true
		}
	}
	return FakeTab{}, false
}

var _ Host = (*Fake)(nil)
