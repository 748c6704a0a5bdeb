package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/zephyrtronium/notation"
	"github.com/zephyrtronium/notation/internal/history"
)

// runValidate reports whether expr is a valid infix expression.
func runValidate(w io.Writer, expr string) error {
	if err := notation.Validate(expr, opts...); err != nil {
		logger.Debug("Invalid expression", zap.String("expr", expr), zap.Error(err))
		fmt.Fprintln(w, rend.Error(expr, err))
		return err
	}
	kind := notation.Detect(expr, opts...)
	fmt.Fprintln(w, rend.Success(fmt.Sprintf("Valid %s expression.", kind)))
	return nil
}

// runConversion converts expr and then evaluates the result if it is numeric
// or verifies it if it is symbolic.
func runConversion(ctx context.Context, w io.Writer, expr string, to notation.Notation) error {
	logger.Debug("Converting", zap.String("expr", expr), zap.Stringer("to", to))
	cv, err := notation.Convert(expr, to, opts...)
	if err != nil {
		logger.Debug("Invalid expression", zap.String("expr", expr), zap.Error(err))
		fmt.Fprintln(w, rend.Error(expr, err))
		return err
	}
	if cfg.Display.Trace {
		fmt.Fprintln(w, rend.Title(fmt.Sprintf("Infix to %s (%s)", to, cv.Operands)))
		fmt.Fprintln(w, rend.Conversion(cv))
	}
	fmt.Fprintf(w, "%s: %s\n", history.KindOf(to), cv.Output)

	if cv.Operands == notation.Symbolic {
		return verify(ctx, w, expr, cv)
	}
	return evaluate(ctx, w, expr, cv)
}

func evaluate(ctx context.Context, w io.Writer, expr string, cv *notation.Conversion) error {
	r, err := notation.Evaluate(cv.Output, cv.To, opts...)
	if cfg.Display.Trace && len(r.Steps) > 0 {
		fmt.Fprintln(w, rend.Title("Evaluation"))
		fmt.Fprintln(w, rend.Steps(r.Steps))
	}
	if err != nil {
		fmt.Fprintln(w, rend.Error(cv.Output, err))
		if notation.IsFatal(err) {
			logger.Error("Evaluation aborted", zap.String("expr", expr), zap.Error(err))
			return err
		}
		logger.Warn("Evaluation failed", zap.String("expr", expr), zap.Error(err))
	} else {
		fmt.Fprintln(w, rend.Value("Result", r.Value))
	}
	record(ctx, history.New(expr, history.KindInfix, cv.Output, history.KindOf(cv.To), stepsOf(r), r.Value))
	return err
}

func verify(ctx context.Context, w io.Writer, expr string, cv *notation.Conversion) error {
	red := notation.Reduce(cv.Output, cv.To, opts...)
	if cfg.Display.Trace && len(red.Substitutions) > 0 {
		fmt.Fprintln(w, rend.Title("Verification"))
		fmt.Fprintln(w, rend.Substitutions(red))
	}
	fmt.Fprintln(w, rend.Reduction(red))
	if ok := notation.CheckArity(cv.Output, cv.To, opts...); ok != (red.State == notation.Reduced) {
		logger.Warn("Arity check disagrees with reduction",
			zap.String("expr", cv.Output),
			zap.Bool("arity", ok),
			zap.Stringer("state", red.State))
	}
	record(ctx, history.New(expr, history.KindInfix, cv.Output, history.KindOf(cv.To), nil, 0))
	return nil
}

// runInfix evaluates expr without converting it.
func runInfix(ctx context.Context, w io.Writer, expr string) error {
	logger.Debug("Evaluating directly", zap.String("expr", expr))
	r, err := notation.EvaluateInfix(expr, opts...)
	if cfg.Display.Trace && len(r.Steps) > 0 {
		fmt.Fprintln(w, rend.Title("Direct Evaluation"))
		fmt.Fprintln(w, rend.Steps(r.Steps))
	}
	if err != nil {
		fmt.Fprintln(w, rend.Error(expr, err))
		if notation.IsFatal(err) {
			logger.Error("Evaluation aborted", zap.String("expr", expr), zap.Error(err))
		} else {
			logger.Debug("Evaluation failed", zap.String("expr", expr), zap.Error(err))
		}
		return err
	}
	fmt.Fprintln(w, rend.Value("Result", r.Value))
	record(ctx, history.New(expr, history.KindInfix, "", history.KindDirect, stepsOf(r), r.Value))
	return nil
}

// stepsOf returns the steps of a numeric evaluation. Unlike symbolic records,
// numeric ones always carry steps, even none.
func stepsOf(r notation.Result) []notation.Step {
	if r.Steps == nil {
		return []notation.Step{}
	}
	return r.Steps
}

// record saves rec to history. Failing to record never fails the operation.
func record(ctx context.Context, rec history.Record) {
	if err := recorder.Record(ctx, rec); err != nil {
		logger.Warn("Failed to record operation", zap.String("id", rec.ID), zap.Error(err))
		return
	}
	logger.Debug("Recorded operation", zap.String("id", rec.ID))
}

// eachLine calls f with each non-blank line of r, trimmed.
func eachLine(r io.Reader, f func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		f(line)
	}
	return sc.Err()
}
