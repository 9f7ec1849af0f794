// Package storage keeps a catalog of finished runs in SQLite and the full
// record history of each run as CSV next to it.
//
// Layout under the data directory:
//
//	runs.db                  catalog (pure-Go modernc.org/sqlite driver)
//	runs/<id>/history.csv    one row per accepted step
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
)

var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	db      *sql.DB
	baseDir string
}

// RunMeta describes one stored run.
type RunMeta struct {
	ID           string             `json:"id"`
	Preset       string             `json:"preset"`
	Params       physics.Params     `json:"params"`
	Floor        string             `json:"floor"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Steps        int                `json:"steps"`
	TimeToBottom float64            `json:"time_to_bottom"`
	HasBottom    bool               `json:"has_bottom"`
	Metrics      map[string]float64 `json:"metrics"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Open creates or opens the catalog in dir.
func Open(dir string) (*Store, error) {
	if dir != "" && dir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}

	if err := os.MkdirAll(filepath.Join(dir, "runs"), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "runs.db"))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// sweeps save from several goroutines; sqlite takes one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Store{db: db, baseDir: dir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT UNIQUE,
			preset TEXT NOT NULL DEFAULT '',
			mass REAL NOT NULL,
			axle_radius REAL NOT NULL,
			inertia REAL NOT NULL,
			initial_height REAL NOT NULL,
			gravity REAL NOT NULL,
			floor TEXT NOT NULL,
			dt REAL NOT NULL,
			duration REAL NOT NULL,
			steps INTEGER NOT NULL,
			time_to_bottom REAL,
			metrics TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_preset ON runs(preset);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Dir is the data directory holding the catalog.
func (s *Store) Dir() string { return s.baseDir }

func (s *Store) historyPath(id string) string {
	return filepath.Join(s.baseDir, "runs", id, "history.csv")
}

// Save stores meta and the history snapshot and returns the new run ID.
// meta.ID and meta.CreatedAt are filled in.
func (s *Store) Save(meta *RunMeta, snap dynamo.Snapshot) (string, error) {
	metrics, err := json.Marshal(meta.Metrics)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode metrics: %w", err)
	}
	if meta.Metrics == nil {
		metrics = []byte("{}")
	}

	var ttb any
	if meta.HasBottom {
		ttb = meta.TimeToBottom
	}
	created := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (preset, mass, axle_radius, inertia, initial_height, gravity,
			floor, dt, duration, steps, time_to_bottom, metrics, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.Preset, meta.Params.Mass, meta.Params.AxleRadius, meta.Params.Inertia,
		meta.Params.InitialHeight, meta.Params.Gravity, meta.Floor, meta.Dt, meta.Duration,
		meta.Steps, ttb, string(metrics), created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	label := meta.Preset
	if label == "" {
		label = "custom"
	}
	id := fmt.Sprintf("%s_%d", label, rowID)
	if _, err := tx.Exec("UPDATE runs SET run_id = ? WHERE id = ?", id, rowID); err != nil {
		return "", fmt.Errorf("storage: cannot name run: %w", err)
	}

	if err := s.writeHistory(id, snap); err != nil {
		os.RemoveAll(filepath.Dir(s.historyPath(id)))
		return "", err
	}
	if err := tx.Commit(); err != nil {
		os.RemoveAll(filepath.Dir(s.historyPath(id)))
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}

	meta.ID = id
	meta.CreatedAt = created
	return id, nil
}

func (s *Store) writeHistory(id string, snap dynamo.Snapshot) error {
	path := s.historyPath(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: cannot create run directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: cannot create history: %w", err)
	}
	if err := WriteCSV(f, snap); err != nil {
		f.Close()
		return fmt.Errorf("storage: cannot write history: %w", err)
	}
	return f.Close()
}

const selectRuns = `SELECT run_id, preset, mass, axle_radius, inertia, initial_height, gravity,
	floor, dt, duration, steps, time_to_bottom, metrics, created_at FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunMeta, error) {
	var (
		m       RunMeta
		ttb     sql.NullFloat64
		metrics string
		created string
	)
	err := row.Scan(&m.ID, &m.Preset, &m.Params.Mass, &m.Params.AxleRadius, &m.Params.Inertia,
		&m.Params.InitialHeight, &m.Params.Gravity, &m.Floor, &m.Dt, &m.Duration, &m.Steps,
		&ttb, &metrics, &created)
	if err != nil {
		return m, err
	}
	m.TimeToBottom, m.HasBottom = ttb.Float64, ttb.Valid
	if err := json.Unmarshal([]byte(metrics), &m.Metrics); err != nil {
		return m, fmt.Errorf("storage: corrupt metrics for %s: %w", m.ID, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		m.CreatedAt = t
	}
	return m, nil
}

// List returns every run, newest first.
func (s *Store) List() ([]RunMeta, error) {
	rows, err := s.db.Query(selectRuns + " WHERE run_id IS NOT NULL ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMeta, 0)
	for rows.Next() {
		m, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

func (s *Store) Load(id string) (*RunMeta, error) {
	m, err := scanRun(s.db.QueryRow(selectRuns+" WHERE run_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load run %s: %w", id, err)
	}
	return &m, nil
}

func (s *Store) LoadHistory(id string) (dynamo.Snapshot, error) {
	f, err := os.Open(s.historyPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return dynamo.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return dynamo.Snapshot{}, err
	}
	defer f.Close()

	snap, err := ReadCSV(f)
	if err != nil {
		return dynamo.Snapshot{}, fmt.Errorf("storage: cannot read history of %s: %w", id, err)
	}
	return snap, nil
}

// Delete removes the catalog entry and the run's files.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE run_id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return os.RemoveAll(filepath.Dir(s.historyPath(id)))
}
