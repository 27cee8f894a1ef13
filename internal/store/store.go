// Package store persists screening runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"detprod-core/products"

	"detprod/internal/screen"
	"detprod/pkg/api"
)

// ErrRunNotFound is returned by Rows for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Model names stored in row_products.model.
const (
	modelDetonation = "detonation"
	modelCombustion = "combustion"
)

// Run is one persisted screening run.
type Run struct {
	ID           string
	CreatedAt    time.Time
	TemperatureK float64
	Source       string // catalog file list or "builtin"
	Rows         int
}

// V1 converts r to the wire schema.
func (r Run) V1() api.RunV1 {
	return api.RunV1{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		TemperatureK: r.TemperatureK,
		Source:       r.Source,
		Rows:         r.Rows,
	}
}

// DB wraps a SQLite connection for run persistence.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time
}

// ErrBadPath is returned by Open for a path the driver would misread.
var ErrBadPath = errors.New("database path must not contain '?'")

const pragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// dsn appends the connection pragmas. The driver splits the name at the
// first '?', so such paths are rejected.
func dsn(path string) (string, error) {
	if strings.Contains(path, "?") {
		return "", fmt.Errorf("%w: %q", ErrBadPath, path)
	}
	return path + "?" + pragmas, nil
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	name, err := dsn(path)
	if err != nil {
		return nil, err
	}
	conn, err := sqlx.Open("sqlite", name)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		temperature_k REAL NOT NULL,
		source TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_rows (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		name TEXT NOT NULL,
		formula TEXT NOT NULL,
		molar_weight REAL NOT NULL,
		det_volume REAL NOT NULL,
		comb_volume REAL NOT NULL,
		oxygen_balance REAL NOT NULL,
		overdrawn TEXT NOT NULL,
		PRIMARY KEY (run_id, idx)
	);

	CREATE TABLE IF NOT EXISTS row_products (
		run_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		model TEXT NOT NULL,
		species TEXT NOT NULL,
		quantity REAL NOT NULL,
		PRIMARY KEY (run_id, idx, model, species),
		FOREIGN KEY (run_id, idx) REFERENCES run_rows(run_id, idx) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes run and its rows in one transaction and returns the new
// run id. run.ID and run.CreatedAt are assigned here.
func (db *DB) SaveRun(ctx context.Context, run Run, rows []screen.Row) (string, error) {
	run.ID = uuid.NewString()
	run.CreatedAt = db.now().UTC()

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, temperature_k, source) VALUES (?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(timeLayout), run.TemperatureK, run.Source,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	rowStmt, err := tx.PreparexContext(ctx, `INSERT INTO run_rows
		(run_id, idx, name, formula, molar_weight, det_volume, comb_volume, oxygen_balance, overdrawn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer rowStmt.Close()

	prodStmt, err := tx.PreparexContext(ctx, `INSERT INTO row_products
		(run_id, idx, model, species, quantity) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer prodStmt.Close()

	for _, r := range rows {
		if _, err := rowStmt.ExecContext(ctx,
			run.ID, r.Index, r.Name, r.Formula, r.MolarWeight,
			r.DetonationVolume, r.CombustionVolume, r.OxygenBalance,
			strings.Join(r.Overdrawn, ","),
		); err != nil {
			return "", fmt.Errorf("insert row %q: %w", r.Name, err)
		}
		for _, m := range []struct {
			model string
			q     products.Quantities
		}{{modelDetonation, r.Detonation}, {modelCombustion, r.Combustion}} {
			for _, sp := range m.q.Species() {
				if _, err := prodStmt.ExecContext(ctx, run.ID, r.Index, m.model, sp, m.q[sp]); err != nil {
					return "", fmt.Errorf("insert products of %q: %w", r.Name, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

type runRecord struct {
	ID           string  `db:"id"`
	CreatedAt    string  `db:"created_at"`
	TemperatureK float64 `db:"temperature_k"`
	Source       string  `db:"source"`
	RowCount     int     `db:"row_count"`
}

func (rec runRecord) run() (Run, error) {
	t, err := time.Parse(timeLayout, rec.CreatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: created_at: %w", rec.ID, err)
	}
	return Run{
		ID:           rec.ID,
		CreatedAt:    t,
		TemperatureK: rec.TemperatureK,
		Source:       rec.Source,
		Rows:         rec.RowCount,
	}, nil
}

const runSelect = `
	SELECT r.id, r.created_at, r.temperature_k, r.source, COUNT(w.idx) AS row_count
	FROM runs r LEFT JOIN run_rows w ON w.run_id = r.id`

// ListRuns returns every run, oldest first.
func (db *DB) ListRuns(ctx context.Context) ([]Run, error) {
	var recs []runRecord
	if err := db.conn.SelectContext(ctx, &recs, runSelect+`
	GROUP BY r.id ORDER BY r.created_at, r.id`); err != nil {
		return nil, err
	}
	out := make([]Run, 0, len(recs))
	for _, rec := range recs {
		r, err := rec.run()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// GetRun returns one run by id.
func (db *DB) GetRun(ctx context.Context, id string) (Run, error) {
	var rec runRecord
	err := db.conn.GetContext(ctx, &rec, runSelect+`
	WHERE r.id = ? GROUP BY r.id`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}
	return rec.run()
}

type rowRecord struct {
	Index            int     `db:"idx"`
	Name             string  `db:"name"`
	Formula          string  `db:"formula"`
	MolarWeight      float64 `db:"molar_weight"`
	DetonationVolume float64 `db:"det_volume"`
	CombustionVolume float64 `db:"comb_volume"`
	OxygenBalance    float64 `db:"oxygen_balance"`
	Overdrawn        string  `db:"overdrawn"`
}

type productRecord struct {
	Index    int     `db:"idx"`
	Model    string  `db:"model"`
	Species  string  `db:"species"`
	Quantity float64 `db:"quantity"`
}

// Rows reloads the rows of a run in their original order, products included.
func (db *DB) Rows(ctx context.Context, runID string) ([]screen.Row, error) {
	if _, err := db.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	var recs []rowRecord
	if err := db.conn.SelectContext(ctx, &recs, `
	SELECT idx, name, formula, molar_weight, det_volume, comb_volume, oxygen_balance, overdrawn
	FROM run_rows WHERE run_id = ? ORDER BY idx`, runID); err != nil {
		return nil, err
	}

	out := make([]screen.Row, 0, len(recs))
	byIdx := make(map[int]int, len(recs))
	for _, rec := range recs {
		row := screen.Row{
			Index:            rec.Index,
			Name:             rec.Name,
			Formula:          rec.Formula,
			MolarWeight:      rec.MolarWeight,
			DetonationVolume: rec.DetonationVolume,
			CombustionVolume: rec.CombustionVolume,
			OxygenBalance:    rec.OxygenBalance,
			Detonation:       products.Quantities{},
			Combustion:       products.Quantities{},
		}
		if rec.Overdrawn != "" {
			row.Overdrawn = strings.Split(rec.Overdrawn, ",")
		}
		byIdx[rec.Index] = len(out)
		out = append(out, row)
	}

	var prods []productRecord
	if err := db.conn.SelectContext(ctx, &prods, `
	SELECT idx, model, species, quantity FROM row_products WHERE run_id = ?`, runID); err != nil {
		return nil, err
	}
	for _, p := range prods {
		i, ok := byIdx[p.Index]
		if !ok {
			continue
		}
		switch p.Model {
		case modelDetonation:
			out[i].Detonation[p.Species] = p.Quantity
		case modelCombustion:
			out[i].Combustion[p.Species] = p.Quantity
		}
	}
	return out, nil
}
