// Package history records completed operations: the original expression, its
// conversion, the evaluation steps, and the result.
//
// Recording never affects an evaluation. Callers log Record errors and carry
// on.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zephyrtronium/notation"
	"github.com/zephyrtronium/notation/internal/config"
)

// Kind names used in records.
const (
	KindInfix   = "Infix"
	KindPostfix = "Postfix"
	KindPrefix  = "Prefix"
	// KindDirect is the converted kind of direct infix evaluation, which
	// has no converted expression.
	KindDirect = "Direct_Evaluation"
)

// KindOf returns the record kind name for a notation.
func KindOf(n notation.Notation) string {
	switch n {
	case notation.Postfix:
		return KindPostfix
	case notation.Prefix:
		return KindPrefix
	default:
		return KindInfix
	}
}

// Record is one completed operation.
type Record struct {
	ID            string
	Time          time.Time
	Original      string
	OriginalKind  string
	Converted     string
	ConvertedKind string
	// Steps is the numeric evaluation trace. Nil means there were no numeric
	// steps to report, as for symbolic expressions. An empty non-nil slice is
	// a numeric evaluation that needed no reductions.
	Steps []notation.Step
	// Result is the final numeric result, or 0 for symbolic expressions.
	Result float64
}

// New creates a record with a fresh ID, stamped with the current time.
func New(original, originalKind, converted, convertedKind string, steps []notation.Step, result float64) Record {
	return Record{
		ID:            uuid.New().String(),
		Time:          time.Now(),
		Original:      original,
		OriginalKind:  originalKind,
		Converted:     converted,
		ConvertedKind: convertedKind,
		Steps:         steps,
		Result:        result,
	}
}

// Recorder stores records.
type Recorder interface {
	// Record stores one record.
	Record(ctx context.Context, r Record) error
	// Close releases the recorder's resources.
	Close() error
}

// Multi records to every recorder in it.
type Multi []Recorder

// Record records r to each recorder, joining their errors.
func (m Multi) Record(ctx context.Context, r Record) error {
	var errs []error
	for _, rec := range m {
		if err := rec.Record(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes each recorder, joining their errors.
func (m Multi) Close() error {
	var errs []error
	for _, rec := range m {
		if err := rec.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards records.
type Nop struct{}

func (Nop) Record(context.Context, Record) error { return nil }
func (Nop) Close() error                         { return nil }

// Open opens the recorders the configuration enables. The result is Nop if
// history is disabled or no destination is set.
func Open(cfg config.HistoryConfig) (Recorder, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}
	var m Multi
	if cfg.File != "" {
		m = append(m, NewFileRecorder(cfg.File))
	}
	if cfg.Database != "" {
		db, err := OpenSQL(cfg.Database)
		if err != nil {
			return nil, err
		}
		m = append(m, db)
	}
	switch len(m) {
	case 0:
		return Nop{}, nil
	case 1:
		return m[0], nil
	default:
		return m, nil
	}
}

var (
	_ Recorder = Multi(nil)
	_ Recorder = Nop{}
	_ Recorder = (*FileRecorder)(nil)
	_ Recorder = (*SQLRecorder)(nil)
)
