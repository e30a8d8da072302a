// Package storage persists turn history in a local sqlite database so past
// questions and answers survive restarts and can be recalled from the UI.
package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Turn is one completed question/answer exchange.
type Turn struct {
	ID           string
	Dataset      string // base name of the loaded file
	Question     string
	Answer       string
	ChartPath    string
	Steps        int
	StepLimitHit bool
	CreatedAt    time.Time
}

// TurnStorage handles turn persistence.
type TurnStorage struct {
	db *sql.DB
}

// NewTurnStorage opens (or creates) the history database under dataDir.
func NewTurnStorage(dataDir string) (*TurnStorage, error) {
	dbPath := filepath.Join(dataDir, "history.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	storage := &TurnStorage{db: db}

	if err := storage.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return storage, nil
}

func (ts *TurnStorage) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id TEXT PRIMARY KEY,
		dataset TEXT NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		chart_path TEXT,
		steps INTEGER NOT NULL,
		step_limit_hit INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_turns_dataset ON turns(dataset);
	CREATE INDEX IF NOT EXISTS idx_turns_created_at ON turns(created_at);
	`

	_, err := ts.db.Exec(schema)
	return err
}

// Save records a completed turn. A missing ID is assigned.
func (ts *TurnStorage) Save(t *Turn) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	_, err := ts.db.Exec(`
		INSERT INTO turns (id, dataset, question, answer, chart_path, steps, step_limit_hit, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Dataset, t.Question, t.Answer, t.ChartPath, t.Steps, boolToInt(t.StepLimitHit), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}
	return nil
}

// List returns all turns, newest first.
func (ts *TurnStorage) List() ([]Turn, error) {
	rows, err := ts.db.Query(`
		SELECT id, dataset, question, answer, chart_path, steps, step_limit_hit, created_at
		FROM turns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// ListByDataset returns turns for one dataset, newest first.
func (ts *TurnStorage) ListByDataset(dataset string) ([]Turn, error) {
	rows, err := ts.db.Query(`
		SELECT id, dataset, question, answer, chart_path, steps, step_limit_hit, created_at
		FROM turns WHERE dataset = ? ORDER BY created_at DESC`, dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// Get loads one turn by ID.
func (ts *TurnStorage) Get(id string) (*Turn, error) {
	row := ts.db.QueryRow(`
		SELECT id, dataset, question, answer, chart_path, steps, step_limit_hit, created_at
		FROM turns WHERE id = ?`, id)

	var t Turn
	var chartPath sql.NullString
	var limitHit int
	err := row.Scan(&t.ID, &t.Dataset, &t.Question, &t.Answer, &chartPath, &t.Steps, &limitHit, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("turn not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load turn: %w", err)
	}
	t.ChartPath = chartPath.String
	t.StepLimitHit = limitHit != 0
	return &t, nil
}

// Delete removes one turn.
func (ts *TurnStorage) Delete(id string) error {
	_, err := ts.db.Exec(`DELETE FROM turns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete turn: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (ts *TurnStorage) Close() error {
	return ts.db.Close()
}

func scanTurns(rows *sql.Rows) ([]Turn, error) {
	var turns []Turn
	for rows.Next() {
		var t Turn
		var chartPath sql.NullString
		var limitHit int
		if err := rows.Scan(&t.ID, &t.Dataset, &t.Question, &t.Answer, &chartPath, &t.Steps, &limitHit, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.ChartPath = chartPath.String
		t.StepLimitHit = limitHit != 0
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
