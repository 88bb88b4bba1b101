package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed project catalog.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the catalog database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory catalog (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every pooled connection would get its own empty :memory: database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: ":memory:"}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    url TEXT,
    stars INTEGER NOT NULL DEFAULT 0,
    language TEXT,
    organization TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT,
    topics TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(name);
CREATE INDEX IF NOT EXISTS idx_projects_stars ON projects(stars);
CREATE INDEX IF NOT EXISTS idx_projects_language ON projects(language);
CREATE INDEX IF NOT EXISTS idx_projects_organization ON projects(organization);
`

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

// Upsert inserts the project keyed by its ID. A project seen again keeps its
// identity fields and refreshes stars, description, topics and update time.
func (s *Store) Upsert(ctx context.Context, it Item) error {
	topics := it.Topics
	if topics == nil {
		topics = []string{}
	}
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("encoding topics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO projects (id, name, description, url, stars, language, organization, created_at, updated_at, topics)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    stars = excluded.stars,
    description = excluded.description,
    updated_at = excluded.updated_at,
    topics = excluded.topics`,
		it.ID, it.Name, nullable(it.Description), nullable(it.URL), it.Stars,
		nullable(it.Category), nullable(it.Organization),
		it.CreatedAt.UTC().Format(time.RFC3339), formatTime(it.UpdatedAt), string(topicsJSON),
	)
	if err != nil {
		return fmt.Errorf("upserting project %d: %w", it.ID, err)
	}
	return nil
}

// Projects returns every project in ID order.
func (s *Store) Projects(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, description, url, stars, language, organization, created_at, updated_at, topics
FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return items, nil
}

// Project looks up a single project by ID.
func (s *Store) Project(ctx context.Context, id int64) (Item, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, description, url, stars, language, organization, created_at, updated_at, topics
FROM projects WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	return it, err
}

// Count returns the number of stored projects.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (Item, error) {
	var (
		it                            Item
		desc, url, lang, org, updated sql.NullString
		created, topics               string
	)
	if err := sc.Scan(&it.ID, &it.Name, &desc, &url, &it.Stars, &lang, &org, &created, &updated, &topics); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, err
		}
		return Item{}, fmt.Errorf("scanning project: %w", err)
	}
	it.Description = desc.String
	it.URL = url.String
	it.Category = lang.String
	it.Organization = org.String

	var err error
	if it.CreatedAt, err = ParseTime(created); err != nil {
		return Item{}, fmt.Errorf("project %d created_at: %w", it.ID, err)
	}
	if updated.Valid {
		if it.UpdatedAt, err = ParseTime(updated.String); err != nil {
			return Item{}, fmt.Errorf("project %d updated_at: %w", it.ID, err)
		}
	}
	if err := json.Unmarshal([]byte(topics), &it.Topics); err != nil {
		return Item{}, fmt.Errorf("project %d topics: %w", it.ID, err)
	}
	return it, nil
}
