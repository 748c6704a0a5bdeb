package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/zephyrtronium/notation"
)

const replHelp = `Enter an infix expression to process it in the current mode.
Commands:
  :postfix   convert to postfix, then evaluate or verify
  :prefix    convert to prefix, then evaluate or verify
  :infix     evaluate numeric expressions directly
  :validate  only check expressions
  :help      show this message
  :quit      leave`

// repl processes expressions from r until it ends, the context is canceled,
// or the user quits. Failures only end the expression that caused them.
func repl(ctx context.Context, r io.Reader, w io.Writer) error {
	mode := "postfix"
	sc := bufio.NewScanner(r)
	fmt.Fprintln(w, rend.Title("notation"), "- :help for commands")
	for {
		fmt.Fprintf(w, "%s> ", mode)
		if !sc.Scan() {
			fmt.Fprintln(w)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q", ":exit":
			return nil
		case ":help", ":h":
			fmt.Fprintln(w, replHelp)
			continue
		case ":postfix", ":prefix", ":infix", ":validate":
			mode = line[1:]
			logger.Debug("Switched mode", zap.String("mode", mode))
			continue
		}
		if strings.HasPrefix(line, ":") {
			fmt.Fprintf(w, "Unknown command %s. Try :help.\n", line)
			continue
		}

		var err error
		switch mode {
		case "postfix":
			err = runConversion(ctx, w, line, notation.Postfix)
		case "prefix":
			err = runConversion(ctx, w, line, notation.Prefix)
		case "infix":
			err = runInfix(ctx, w, line)
		case "validate":
			err = runValidate(w, line)
		}
		if notation.IsFatal(err) {
			fmt.Fprintln(w, "Operation aborted.")
		}
	}
}
