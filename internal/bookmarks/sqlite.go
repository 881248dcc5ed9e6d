package bookmarks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Bookmark node types, matching the Firefox places convention.
const (
	typeEntry  = 1
	typeFolder = 2
)

// SQLiteStore persists bookmarks in a local SQLite database owned by the
// daemon. The extension reads the same file to render its bookmarks view.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the bookmarks database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", dbPath))
	if err != nil {
		return nil, fmt.Errorf("error: cannot open bookmarks database: %w", err)
	}
	if _, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS bookmarks (
            id         INTEGER PRIMARY KEY AUTOINCREMENT,
            parent_id  INTEGER NOT NULL DEFAULT 0,
            type       INTEGER NOT NULL,
            title      TEXT NOT NULL,
            url        TEXT NOT NULL DEFAULT '',
            date_added INTEGER NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_bookmarks_parent ON bookmarks(parent_id);
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("error: failed to create bookmarks schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) FindFolder(ctx context.Context, title string) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
        SELECT id FROM bookmarks
        WHERE type = ? AND title = ?
        ORDER BY id ASC LIMIT 1
    `, typeFolder, title).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("error: failed to query bookmark folder: %w", err)
	}
	return id, true, nil
}

func (s *SQLiteStore) CreateFolder(ctx context.Context, title string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO bookmarks (parent_id, type, title, date_added)
        VALUES (0, ?, ?, ?)
    `, typeFolder, title, time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("error: failed to create bookmark folder: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) RenameFolder(ctx context.Context, id int64, title string) error {
	_, err := s.db.ExecContext(ctx, `
        UPDATE bookmarks SET title = ? WHERE id = ? AND type = ?
    `, title, id, typeFolder)
	if err != nil {
		return fmt.Errorf("error: failed to rename bookmark folder: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Children(ctx context.Context, folderId int64) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, title, url FROM bookmarks
        WHERE parent_id = ? AND type = ?
        ORDER BY id ASC
    `, folderId, typeEntry)
	if err != nil {
		return nil, fmt.Errorf("error: failed to query bookmark children: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Id, &e.Title, &e.Url); err != nil {
			return nil, fmt.Errorf("error: failed to scan bookmark row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error: failed to iterate bookmark rows: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) Create(ctx context.Context, folderId int64, title, url string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO bookmarks (parent_id, type, title, url, date_added)
        VALUES (?, ?, ?, ?, ?)
    `, folderId, typeEntry, title, url, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("error: failed to create bookmark entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, entryId int64) error {
	_, err := s.db.ExecContext(ctx, `
        DELETE FROM bookmarks WHERE id = ? AND type = ?
    `, entryId, typeEntry)
	if err != nil {
		return fmt.Errorf("error: failed to remove bookmark entry: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
