// Package render formats conversion traces, evaluation steps, and results for
// the terminal.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zephyrtronium/notation"
)

var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorPrimary = lipgloss.Color("#5DADE2")
	colorError   = lipgloss.Color("#E53935")
	colorWarn    = lipgloss.Color("#F4B400")
	colorMuted   = lipgloss.Color("#7A8699")
)

// Renderer holds the styles for one output stream.
type Renderer struct {
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
	title   lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

// New creates a renderer. Without color, styles only lay out text.
func New(color bool) *Renderer {
	r := &Renderer{
		header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		cell:    lipgloss.NewStyle().Padding(0, 1),
		border:  lipgloss.NewStyle(),
		title:   lipgloss.NewStyle().Bold(true),
		success: lipgloss.NewStyle(),
		warn:    lipgloss.NewStyle(),
		err:     lipgloss.NewStyle(),
	}
	if color {
		r.header = r.header.Foreground(colorPrimary)
		r.border = r.border.Foreground(colorMuted)
		r.title = r.title.Foreground(colorPrimary)
		r.success = r.success.Foreground(colorAccent)
		r.warn = r.warn.Foreground(colorWarn)
		r.err = r.err.Foreground(colorError).Bold(true)
	}
	return r
}

func (r *Renderer) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		})
	return t.String()
}

// Title renders a section heading.
func (r *Renderer) Title(s string) string {
	return r.title.Render(s)
}

// Conversion renders the events of a conversion as a table.
func (r *Renderer) Conversion(cv *notation.Conversion) string {
	rows := make([][]string, 0, len(cv.Events))
	for i, ev := range cv.Events {
		rows = append(rows, []string{strconv.Itoa(i + 1), ev.Kind.String(), ev.Token, ev.Stack, ev.Output})
	}
	return r.table([]string{"#", "Action", "Token", "Stack", "Output"}, rows)
}

// Steps renders evaluation steps as a table.
func (r *Renderer) Steps(steps []notation.Step) string {
	rows := make([][]string, 0, len(steps))
	for i, s := range steps {
		op2 := fmt.Sprintf("%.4f", s.Operand2)
		if s.Unary() {
			op2 = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.4f", s.Operand1),
			string(s.Operator),
			op2,
			fmt.Sprintf("%.4f", s.Result),
		})
	}
	return r.table([]string{"Step", "Operand 1", "Operator", "Operand 2", "Result"}, rows)
}

// Substitutions renders the substitutions of a symbolic reduction as a table.
func (r *Renderer) Substitutions(red notation.Reduction) string {
	rows := make([][]string, 0, len(red.Substitutions))
	for i, s := range red.Substitutions {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Found, string(s.Placeholder), s.Expr})
	}
	return r.table([]string{"Step", "Found", "Placeholder", "Expression"}, rows)
}

// Value renders a labeled numeric result.
func (r *Renderer) Value(label string, v float64) string {
	return r.success.Render(fmt.Sprintf("%s: %.4f", label, v))
}

// Reduction renders the outcome of a symbolic reduction.
func (r *Renderer) Reduction(red notation.Reduction) string {
	if red.State == notation.Reduced {
		return r.success.Render("Verification SUCCESSFUL: reduced to " + red.Residual)
	}
	return r.warn.Render("Verification INCONCLUSIVE: left " + strconv.Quote(red.Residual))
}

// Success renders a confirmation.
func (r *Renderer) Success(msg string) string {
	return r.success.Render(msg)
}

// Error renders an error. Errors with a position in expr also get a caret
// under the offending character.
func (r *Renderer) Error(expr string, err error) string {
	var b strings.Builder
	b.WriteString(r.err.Render("Error: " + err.Error()))
	var ie notation.InputError
	if errors.As(err, &ie) && ie.Pos() > 0 && ie.Pos() <= len(expr) {
		b.WriteByte('\n')
		b.WriteString(Caret(expr, ie.Pos()))
	}
	return b.String()
}

// Caret returns expr with a line under it pointing at the 1-based column col.
func Caret(expr string, col int) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(expr)
	b.WriteString("\n  ")
	for i := 0; i < col-1 && i < len(expr); i++ {
		if expr[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}
