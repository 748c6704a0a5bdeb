package history

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zephyrtronium/notation"
)

// SQLRecorder stores records in a SQLite database.
type SQLRecorder struct {
	db     *sql.DB
	dbPath string
}

// OpenSQL creates or opens a history database.
func OpenSQL(dbPath string) (*SQLRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLRecorder{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLRecorder) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLRecorder) Path() string {
	return s.dbPath
}

func (s *SQLRecorder) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		logged_at INTEGER NOT NULL,
		original TEXT NOT NULL,
		original_kind TEXT NOT NULL,
		converted TEXT NOT NULL,
		converted_kind TEXT NOT NULL,
		has_steps INTEGER NOT NULL,
		result REAL
	);
	CREATE INDEX IF NOT EXISTS idx_operations_logged_at ON operations(logged_at);

	CREATE TABLE IF NOT EXISTS steps (
		operation_id TEXT NOT NULL REFERENCES operations(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		operand1 REAL,
		operator TEXT NOT NULL,
		operand2 REAL,
		result REAL,
		PRIMARY KEY (operation_id, seq)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts r and its steps in one transaction.
func (s *SQLRecorder) Record(ctx context.Context, r Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO operations (id, logged_at, original, original_kind, converted, converted_kind, has_steps, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time.UnixNano(), r.Original, r.OriginalKind, r.Converted, r.ConvertedKind,
		r.Steps != nil, nullFloat(r.Result))
	if err != nil {
		return fmt.Errorf("failed to insert operation: %w", err)
	}
	for i, st := range r.Steps {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO steps (operation_id, seq, operand1, operator, operand2, result) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, i+1, nullFloat(st.Operand1), string(st.Operator), nullFloat(st.Operand2), nullFloat(st.Result))
		if err != nil {
			return fmt.Errorf("failed to insert step %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit operation: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *SQLRecorder) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, logged_at, original, original_kind, converted, converted_kind, has_steps, result
		FROM operations ORDER BY logged_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer rows.Close()

	var recs []Record
	var hasSteps []bool
	for rows.Next() {
		var (
			r      Record
			at     int64
			num    bool
			result sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &at, &r.Original, &r.OriginalKind, &r.Converted, &r.ConvertedKind, &num, &result); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		r.Time = time.Unix(0, at)
		r.Result = floatOf(result)
		recs = append(recs, r)
		hasSteps = append(hasSteps, num)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read operations: %w", err)
	}
	rows.Close()

	for i := range recs {
		if !hasSteps[i] {
			continue
		}
		steps, err := s.steps(ctx, recs[i].ID)
		if err != nil {
			return nil, err
		}
		recs[i].Steps = steps
	}
	return recs, nil
}

func (s *SQLRecorder) steps(ctx context.Context, id string) ([]notation.Step, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT operand1, operator, operand2, result FROM steps WHERE operation_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query steps: %w", err)
	}
	defer rows.Close()

	steps := []notation.Step{}
	for rows.Next() {
		var (
			a, b, r sql.NullFloat64
			op      string
		)
		if err := rows.Scan(&a, &op, &b, &r); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		st := notation.Step{Operand1: floatOf(a), Operand2: floatOf(b), Result: floatOf(r)}
		if len(op) == 1 {
			st.Operator = op[0]
		}
		steps = append(steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read steps: %w", err)
	}
	return steps, nil
}

// floatOf maps NULL back to NaN.
func floatOf(x sql.NullFloat64) float64 {
	if !x.Valid {
		return math.NaN()
	}
	return x.Float64
}

// nullFloat maps NaN, which SQLite cannot store, to NULL.
func nullFloat(x float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: x, Valid: !math.IsNaN(x)}
}
