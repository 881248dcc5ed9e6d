// Package browser abstracts the host browser surfaces the daemon drives:
// tabs, windows, and notifications. The real implementation relays calls
// to a connected extension client over JSON-RPC; tests use Fake.
package browser

import (
	"context"
	"errors"
)

// ErrNoClient is returned when no extension client is connected to carry
// out a host call.
var ErrNoClient = errors.New("browser: no extension client connected")

// Script asset names the daemon can ask the extension to inject.
const (
	// ConfirmBarScript renders the inline snooze confirmation bar in the
	// originating tab.
	ConfirmBarScript = "confirm-bar"

	// FaviconFlashScript toggles the favicon of a freshly woken tab for a
	// few seconds. Purely cosmetic.
	FaviconFlashScript = "favicon-flash"
)

// Tabs drives tab creation and teardown in the host browser.
type Tabs interface {
	// Open creates a tab at url. A zero windowId lets the host choose the
	// window. The new tab's id is returned.
	Open(ctx context.Context, url string, windowId int64, active bool) (int64, error)

	// Close removes the tab. Closing a tab that has since disappeared is
	// not an error.
	Close(ctx context.Context, tabId int64) error

	// Count returns the number of open tabs across all windows.
	Count(ctx context.Context) (int, error)

	// Activate makes the tab the active one in its window.
	Activate(ctx context.Context, tabId int64) error

	// Inject runs the named script asset inside the tab.
	Inject(ctx context.Context, tabId int64, script string) error
}

// Windows queries and focuses host browser windows.
type Windows interface {
	// List returns the ids of all normal browser windows.
	List(ctx context.Context) ([]int64, error)

	// Focus brings the window to the foreground.
	Focus(ctx context.Context, windowId int64) error
}

// Notifications shows user-facing notifications. Click events come back
// through the message router carrying the correlation id.
type Notifications interface {
	Create(ctx context.Context, id, title, message string) error
}

// Host bundles the three browser surfaces.
type Host interface {
	Tabs
	Windows
	Notifications
}
