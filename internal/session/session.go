// Package session remembers, per notes root, which folders were expanded and
// which entry was selected when the UI last closed. It also keeps autosaved
// editor drafts so unsaved edits survive a crash.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Paintersrp/notetree/internal/hierarchy"
	"github.com/Paintersrp/notetree/internal/logging"
	"github.com/Paintersrp/notetree/internal/pathutil"
)

var log = logging.New("session")

// Snapshot holds root-relative, slash-separated paths.
type Snapshot struct {
	Selected string
	Expanded []string
}

type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	// modernc.org/sqlite registers as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			root TEXT PRIMARY KEY,
			selected TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS expanded (
			root TEXT NOT NULL,
			rel_path TEXT NOT NULL,
			PRIMARY KEY (root, rel_path)
		);`,
		`CREATE TABLE IF NOT EXISTS drafts (
			root TEXT NOT NULL,
			rel_path TEXT NOT NULL,
			content TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			PRIMARY KEY (root, rel_path)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate session store: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the saved snapshot for root. An unknown root yields an empty
// snapshot.
func (s *Store) Load(ctx context.Context, root string) (Snapshot, error) {
	var snap Snapshot

	err := s.db.QueryRowContext(ctx, `SELECT selected FROM sessions WHERE root = ?`, root).Scan(&snap.Selected)
	if err != nil && err != sql.ErrNoRows {
		return Snapshot{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT rel_path FROM expanded WHERE root = ? ORDER BY rel_path`, root)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var rel string
		if err := rows.Scan(&rel); err != nil {
			return Snapshot{}, err
		}
		snap.Expanded = append(snap.Expanded, rel)
	}
	return snap, rows.Err()
}

// Save replaces the snapshot stored for root.
func (s *Store) Save(ctx context.Context, root string, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions(root, selected, updated_at_unixms) VALUES(?, ?, ?)`,
		root, snap.Selected, time.Now().UnixMilli(),
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM expanded WHERE root = ?`, root); err != nil {
		return err
	}
	for _, rel := range snap.Expanded {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO expanded(root, rel_path) VALUES(?, ?)`, root, rel,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.WithField("root", root).WithField("expanded", len(snap.Expanded)).Debug("session saved")
	return nil
}

// Draft is an unsaved editor buffer. Path is absolute.
type Draft struct {
	Path      string
	Content   string
	UpdatedAt time.Time
}

func draftKey(root, path string) (string, error) {
	if !pathutil.Within(root, path) {
		return "", fmt.Errorf("draft %s is outside %s", path, root)
	}
	return pathutil.RootRelative(root, path)
}

// SaveDraft stores content as the draft for the note at path, replacing any
// earlier draft.
func (s *Store) SaveDraft(ctx context.Context, root, path, content string) error {
	rel, err := draftKey(root, path)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO drafts(root, rel_path, content, updated_at_unixms) VALUES(?, ?, ?, ?)`,
		root, rel, content, time.Now().UnixMilli(),
	)
	return err
}

func (s *Store) ClearDraft(ctx context.Context, root, path string) error {
	rel, err := draftKey(root, path)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM drafts WHERE root = ? AND rel_path = ?`, root, rel)
	return err
}

// Drafts lists the drafts kept for root, newest first.
func (s *Store) Drafts(ctx context.Context, root string) ([]Draft, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rel_path, content, updated_at_unixms FROM drafts WHERE root = ? ORDER BY updated_at_unixms DESC, rel_path`,
		root,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		var (
			rel     string
			d       Draft
			updated int64
		)
		if err := rows.Scan(&rel, &d.Content, &updated); err != nil {
			return nil, err
		}
		d.Path = filepath.Join(root, filepath.FromSlash(rel))
		d.UpdatedAt = time.UnixMilli(updated)
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// Capture builds a snapshot from the index's current selection and
// expansion state.
func Capture(idx *hierarchy.Index) Snapshot {
	root := idx.RootPath()
	var snap Snapshot

	if sel, ok := idx.Selection(); ok {
		if rel, err := pathutil.RootRelative(root, sel.Path); err == nil {
			snap.Selected = rel
		}
	}
	for _, p := range idx.ExpandedPaths() {
		if rel, err := pathutil.RootRelative(root, p); err == nil && rel != "." {
			snap.Expanded = append(snap.Expanded, rel)
		}
	}
	return snap
}

// Restore applies snap to a freshly refreshed index. Entries that no longer
// exist are ignored.
func Restore(idx *hierarchy.Index, snap Snapshot) {
	root := idx.RootPath()

	expanded := make([]string, 0, len(snap.Expanded))
	for _, rel := range snap.Expanded {
		expanded = append(expanded, filepath.Join(root, filepath.FromSlash(rel)))
	}
	idx.RestoreExpanded(expanded)

	if snap.Selected == "" {
		return
	}
	if err := idx.Select(filepath.Join(root, filepath.FromSlash(snap.Selected))); err != nil {
		log.WithError(err).Debug("saved selection no longer exists")
	}
}
