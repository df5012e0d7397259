package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flo8/internal/modules/content/domain"
	contentout "flo8/internal/modules/content/port/out"
	apperrors "flo8/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// SQLiteContentIndex projects content items into a queryable table and keeps
// the daily card completion log in the same database.
type SQLiteContentIndex struct {
	db *sql.DB
}

func NewSQLiteContentIndex(dbPath string) (*SQLiteContentIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteContentIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return index, nil
}

var (
	_ contentout.ContentIndex  = (*SQLiteContentIndex)(nil)
	_ contentout.CompletionLog = (*SQLiteContentIndex)(nil)
)

func (s *SQLiteContentIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteContentIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  title TEXT NOT NULL,
  slug TEXT NOT NULL,
  tags TEXT NOT NULL DEFAULT '[]',
  goals TEXT NOT NULL DEFAULT '[]',
  mobility_friendly INTEGER NOT NULL DEFAULT 0,
  minutes INTEGER NOT NULL DEFAULT 0,
  body TEXT NOT NULL DEFAULT '',
  file_path TEXT NOT NULL DEFAULT '',
  guide_path TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS card_completions (
  item_id TEXT NOT NULL,
  date TEXT NOT NULL,
  completed_at TEXT NOT NULL,
  PRIMARY KEY (item_id, date)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create content tables: %w", err)
	}
	return nil
}

func (s *SQLiteContentIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("reset content index: %w", err)
	}
	return nil
}

func (s *SQLiteContentIndex) Upsert(ctx context.Context, item domain.Item) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	goals, err := json.Marshal(item.Goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	const stmt = `
INSERT INTO items (id, kind, title, slug, tags, goals, mobility_friendly, minutes, body, file_path, guide_path, source)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  kind=excluded.kind,
  title=excluded.title,
  slug=excluded.slug,
  tags=excluded.tags,
  goals=excluded.goals,
  mobility_friendly=excluded.mobility_friendly,
  minutes=excluded.minutes,
  body=excluded.body,
  file_path=excluded.file_path,
  guide_path=excluded.guide_path,
  source=excluded.source;
`
	_, err = s.db.ExecContext(ctx, stmt,
		item.ID,
		string(item.Kind),
		item.Title,
		item.Slug,
		string(tags),
		string(goals),
		boolToInt(item.MobilityFriendly),
		item.Minutes,
		item.Body,
		item.FilePath,
		item.GuidePath,
		item.Source,
	)
	if err != nil {
		return fmt.Errorf("upsert content item: %w", err)
	}
	return nil
}

const itemColumns = `id, kind, title, slug, tags, goals, mobility_friendly, minutes, body, file_path, guide_path, source`

func (s *SQLiteContentIndex) Query(ctx context.Context, kind domain.Kind) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items WHERE kind = ? ORDER BY slug`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}
	defer rows.Close()

	out := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *SQLiteContentIndex) FindBySlug(ctx context.Context, slug string) (domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items WHERE slug = ? LIMIT 1`, slug)
	if err != nil {
		return domain.Item{}, fmt.Errorf("query content: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Item{}, err
		}
		return domain.Item{}, fmt.Errorf("%w: content %s", apperrors.ErrNotFound, slug)
	}
	return scanItem(rows)
}

func (s *SQLiteContentIndex) Record(ctx context.Context, completion domain.Completion) error {
	const stmt = `
INSERT INTO card_completions (item_id, date, completed_at)
VALUES (?, ?, ?)
ON CONFLICT(item_id, date) DO NOTHING;
`
	_, err := s.db.ExecContext(ctx, stmt, completion.ItemID, completion.Date, completion.CompletedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

func (s *SQLiteContentIndex) Completed(ctx context.Context, itemID, date string) (bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT 1 FROM card_completions WHERE item_id = ? AND date = ?`, itemID, date)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check completion: %w", err)
	}
	return true, nil
}

func (s *SQLiteContentIndex) History(ctx context.Context, limit int) ([]domain.Completion, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.db.QueryContext(ctx, `SELECT item_id, date, completed_at FROM card_completions ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	out := []domain.Completion{}
	for rows.Next() {
		var c domain.Completion
		var at string
		if err := rows.Scan(&c.ItemID, &c.Date, &at); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, at); err == nil {
			c.CompletedAt = parsed
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanItem(rows *sql.Rows) (domain.Item, error) {
	var (
		item        domain.Item
		kind        string
		tags, goals string
		mobile      int
	)
	if err := rows.Scan(&item.ID, &kind, &item.Title, &item.Slug, &tags, &goals, &mobile, &item.Minutes, &item.Body, &item.FilePath, &item.GuidePath, &item.Source); err != nil {
		return domain.Item{}, fmt.Errorf("scan content item: %w", err)
	}
	item.Kind = domain.Kind(kind)
	item.MobilityFriendly = mobile != 0
	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		return domain.Item{}, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal([]byte(goals), &item.Goals); err != nil {
		return domain.Item{}, fmt.Errorf("decode goals: %w", err)
	}
	return item, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
