package deploy

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one recorded deployment. PreviousContent holds whatever the
// agent's config path contained before the write, which is exactly what a
// rollback restores.
type Record struct {
	Id              string
	AgentId         string
	PackIds         []string
	TotalChars      int
	OutputPath      string
	PreviousContent string
	CreatedAt       time.Time
}

// Store is the persistence interface for deployment records. Abstracted so
// tests can substitute an in-memory implementation.
type Store interface {
	Save(rec *Record) error
	History(agentId string) ([]*Record, error)
	Latest(agentId string) (*Record, bool, error)
	Get(id string) (*Record, bool, error)
	Close() error
}

// SQLiteStore implements Store on a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the deployment state database in
// the given data directory.
func OpenStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("deploy: create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "deployments.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("deploy: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("deploy: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("deploy: migration: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS deployments (
			id               TEXT PRIMARY KEY,
			agent_id         TEXT NOT NULL,
			pack_ids         TEXT NOT NULL,
			total_chars      INTEGER NOT NULL,
			output_path      TEXT NOT NULL,
			previous_content TEXT NOT NULL,
			created_at       TEXT NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX IF NOT EXISTS idx_deployments_agent
			ON deployments(agent_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save persists one deployment row.
func (s *SQLiteStore) Save(rec *Record) error {
	packIds, err := json.Marshal(rec.PackIds)
	if err != nil {
		return fmt.Errorf("deploy: encode pack ids: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO deployments (id, agent_id, pack_ids, total_chars, output_path, previous_content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Id, rec.AgentId, string(packIds), rec.TotalChars,
		rec.OutputPath, rec.PreviousContent, rec.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("deploy: record deployment: %w", err)
	}
	return nil
}

// History returns all deployments for an agent, newest first.
func (s *SQLiteStore) History(agentId string) ([]*Record, error) {
	rows, err := s.db.Query(`
		SELECT id, agent_id, pack_ids, total_chars, output_path, previous_content, created_at
		FROM deployments WHERE agent_id = ? ORDER BY created_at DESC, id`, agentId)
	if err != nil {
		return nil, fmt.Errorf("deploy: query history: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Latest returns the most recent deployment for an agent.
func (s *SQLiteStore) Latest(agentId string) (*Record, bool, error) {
	row := s.db.QueryRow(`
		SELECT id, agent_id, pack_ids, total_chars, output_path, previous_content, created_at
		FROM deployments WHERE agent_id = ? ORDER BY created_at DESC, id LIMIT 1`, agentId)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// Get returns the deployment with the given id.
func (s *SQLiteStore) Get(id string) (*Record, bool, error) {
	row := s.db.QueryRow(`
		SELECT id, agent_id, pack_ids, total_chars, output_path, previous_content, created_at
		FROM deployments WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var packIds, createdAt string
	if err := row.Scan(&rec.Id, &rec.AgentId, &packIds, &rec.TotalChars,
		&rec.OutputPath, &rec.PreviousContent, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(packIds), &rec.PackIds); err != nil {
		return nil, fmt.Errorf("deploy: decode pack ids: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("deploy: parse timestamp: %w", err)
	}
	rec.CreatedAt = ts
	return &rec, nil
}
