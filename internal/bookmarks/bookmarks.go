// Package bookmarks keeps a dedicated bookmarks folder synchronized with
// the set of pending snoozed tabs. The folder is derived state: it can be
// rebuilt from scratch from the record set at any time.
package bookmarks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/niteowll/SnoozeTabs/pkg/snoozelib"
)

// Entry is a bookmark inside the mirror folder.
type Entry struct {
	Id    int64
	Title string
	Url   string
}

// Store is the bookmarks backend the mirror reconciles against.
type Store interface {
	// FindFolder returns the id of the first folder with the given title.
	FindFolder(ctx context.Context, title string) (int64, bool, error)

	// CreateFolder creates a top-level folder and returns its id.
	CreateFolder(ctx context.Context, title string) (int64, error)

	// RenameFolder retitles an existing folder.
	RenameFolder(ctx context.Context, id int64, title string) error

	// Children lists the entries directly inside a folder.
	Children(ctx context.Context, folderId int64) ([]Entry, error)

	// Create adds an entry to the folder.
	Create(ctx context.Context, folderId int64, title, url string) error

	// Remove deletes an entry by id.
	Remove(ctx context.Context, entryId int64) error
}

// FolderTitle renders the mirror folder title for an installation.
func FolderTitle(instanceId string) string {
	return fmt.Sprintf("Snoozed Tabs [%s]", instanceId)
}

// Mirror reconciles the folder contents with the pending record set.
type Mirror struct {
	log   *log.Logger
	store Store
	title string
}

// NewMirror creates a Mirror writing into the folder with the given title.
func NewMirror(l *log.Logger, store Store, title string) *Mirror {
	return &Mirror{log: l, store: store, title: title}
}

// Sync makes the folder's children equal exactly the urls of pending
// records with a concrete wake time. Records carrying the next-open
// sentinel are excluded: they have no orderable date to show. The url is
// the sole matching key; title differences alone never trigger updates.
func (m *Mirror) Sync(ctx context.Context, records snoozelib.RecordsMap) error {
	folderId, ok, err := m.store.FindFolder(ctx, m.title)
	if err != nil {
		return fmt.Errorf("find folder: %w", err)
	}
	if !ok {
		folderId, err = m.store.CreateFolder(ctx, m.title)
		if err != nil {
			return fmt.Errorf("create folder: %w", err)
		}
	}

	desired := make(map[string]*snoozelib.SnoozeRecord)
	for _, rec := range records {
		if rec.Concrete() {
			desired[rec.Url] = rec
		}
	}

	children, err := m.store.Children(ctx, folderId)
	if err != nil {
		return fmt.Errorf("list children: %w", err)
	}
	existing := make(map[string]bool, len(children))
	for _, c := range children {
		existing[c.Url] = true
	}

	for url, rec := range desired {
		if existing[url] {
			continue
		}
		m.log.Printf("bookmarks: creating %s", url)
		if err := m.store.Create(ctx, folderId, rec.Title, url); err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
	}
	for _, c := range children {
		if _, want := desired[c.Url]; want {
			continue
		}
		m.log.Printf("bookmarks: removing %s", c.Url)
		if err := m.store.Remove(ctx, c.Id); err != nil {
			return fmt.Errorf("remove entry: %w", err)
		}
	}
	return nil
}

// Archive retitles any folder left behind by a previous installation,
// stamping it with the given instant so a fresh install starts with a
// clean folder under the original title.
func (m *Mirror) Archive(ctx context.Context, now time.Time) error {
	id, ok, err := m.store.FindFolder(ctx, m.title)
	if err != nil || !ok {
		return err
	}
	stamped := fmt.Sprintf("%s - %s", m.title, now.Format("Jan 2, 2006 15:04"))
	return m.store.RenameFolder(ctx, id, stamped)
}
