package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/notation"
	"github.com/zephyrtronium/notation/internal/config"
	"github.com/zephyrtronium/notation/internal/history"
	"github.com/zephyrtronium/notation/internal/logging"
	"github.com/zephyrtronium/notation/internal/render"
)

var (
	// Global flags
	cfgPath   string
	verbose   bool
	sqrt      bool
	noColor   bool
	noHistory bool
	trace     bool

	// Set up by the root command before any subcommand runs.
	logger   *zap.Logger
	cfg      *config.Config
	opts     []notation.Option
	rend     *render.Renderer
	recorder history.Recorder
)

// errReported is returned by commands whose failures were already shown to
// the user.
var errReported = errors.New("notation: failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "notation",
		Short: "Convert infix expressions to postfix and prefix notation and evaluate them",
		Long: `notation validates infix expressions, converts them to postfix or prefix
notation with the shunting-yard algorithm, and evaluates the result on a stack
machine, showing every step.

Numeric expressions ("3+4*5") are evaluated. Symbolic expressions ("a+b*c")
are verified by substituting placeholder letters until one symbol remains.

Each command takes expressions as arguments, or reads one per line from
standard input if none are given.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "notation.yaml", "configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().BoolVar(&sqrt, "sqrt", false, "Enable the unary square root operator s")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record operations")
	root.PersistentFlags().BoolVar(&trace, "trace", true, "Show conversion events and evaluation steps")

	root.AddCommand(
		exprCmd("validate", "Check infix expressions", func(cmd *cobra.Command, expr string) error {
			return runValidate(cmd.OutOrStdout(), expr)
		}),
		exprCmd("postfix", "Convert infix expressions to postfix and evaluate them", func(cmd *cobra.Command, expr string) error {
			return runConversion(cmd.Context(), cmd.OutOrStdout(), expr, notation.Postfix)
		}),
		exprCmd("prefix", "Convert infix expressions to prefix and evaluate them", func(cmd *cobra.Command, expr string) error {
			return runConversion(cmd.Context(), cmd.OutOrStdout(), expr, notation.Prefix)
		}),
		exprCmd("infix", "Evaluate numeric infix expressions directly", func(cmd *cobra.Command, expr string) error {
			return runInfix(cmd.Context(), cmd.OutOrStdout(), expr)
		}),
		&cobra.Command{
			Use:   "repl",
			Short: "Read and process expressions interactively",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return repl(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			},
		},
		historyCmd(),
		configCmd(),
	)
	return root
}

// setup loads configuration and builds the logger, renderer, and recorder.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("sqrt") {
		cfg.Engine.Sqrt = sqrt
	}
	if noColor {
		cfg.Display.Color = false
	}
	if noHistory {
		cfg.History.Enabled = false
	}
	if flags.Changed("trace") {
		cfg.Display.Trace = trace
	}

	logger, err = logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	opts = cfg.Options()
	rend = render.New(cfg.Display.Color)
	recorder, err = history.Open(cfg.History)
	if err != nil {
		// History is never required to evaluate.
		logger.Warn("Failed to open history", zap.Error(err))
		recorder = history.Nop{}
	}
	logger.Debug("Configured",
		zap.String("config", cfgPath),
		zap.Bool("sqrt", cfg.Engine.Sqrt),
		zap.Int("max_len", cfg.Engine.MaxLen),
		zap.Bool("history", cfg.History.Enabled))
	return nil
}

func shutdown() {
	if recorder != nil {
		if err := recorder.Close(); err != nil && logger != nil {
			logger.Warn("Failed to close history", zap.Error(err))
		}
		recorder = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// exprCmd creates a command that applies run to each expression argument, or
// to each line of standard input if there are none.
func exprCmd(use, short string, run func(cmd *cobra.Command, expr string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [expression...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			each := func(expr string) {
				if err := run(cmd, expr); err != nil {
					failed = true
				}
			}
			if len(args) > 0 {
				for _, expr := range args {
					each(expr)
				}
			} else if err := eachLine(cmd.InOrStdin(), each); err != nil {
				return err
			}
			if failed {
				return errReported
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent operations from the history database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.History.Database == "" {
				return fmt.Errorf("no history database configured (set history.database or NOTATION_HISTORY_DB)")
			}
			db, err := history.OpenSQL(cfg.History.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			recs, err := db.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range recs {
				history.WriteText(w, r)
			}
			logger.Debug("Listed history", zap.Int("records", len(recs)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of operations to show")
	return cmd
}

func configCmd() *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if save != "" {
				if err := cfg.Save(save); err != nil {
					return err
				}
				logger.Info("Saved configuration", zap.String("path", save))
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "Also write the configuration to this file")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	shutdown()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
