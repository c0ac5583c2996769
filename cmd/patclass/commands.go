package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/funvibe/patclass/internal/config"
)

// errFailed is returned when some checked file has errors. The
// diagnostics are already printed, so main only sets the exit status.
var errFailed = errors.New("check failed")

type checkFlags struct {
	fuel   int
	report bool
	tree   bool
	verify bool
	watch  bool
	color  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "patclass",
		Short:         "Classify pattern-matching clauses and report unreachable ones",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log classifier activity to stderr")

	root.AddCommand(newCheckCmd(&verbose), newVersionCmd())
	return root
}

func newCheckCmd(verbose *bool) *cobra.Command {
	var flags checkFlags
	cmd := &cobra.Command{
		Use:   "check [file or directory...]",
		Short: "Check problem files for ill-typed and unreachable clauses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := useColor(flags.color, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			r := &runner{
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
				flags:  flags,
				color:  color,
				logger: newLogger(cmd.ErrOrStderr(), *verbose),
			}
			if flags.watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return r.watch(ctx, args)
			}
			failed, err := r.run(args)
			if err != nil {
				return err
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.fuel, "fuel", config.DefaultFuel, "nesting depth the classifier may split into")
	f.BoolVar(&flags.report, "report", false, "print the clause classes of every definition")
	f.BoolVar(&flags.tree, "tree", false, "print the case tree of every definition (implies --report)")
	f.BoolVar(&flags.verify, "verify", false, "check every oracle answer against the classification contract")
	f.BoolVarP(&flags.watch, "watch", "w", false, "re-check when problem files change")
	f.StringVar(&flags.color, "color", "auto", "colorize diagnostics: auto, always or never")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and supported problem file formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "patclass %s (format %s)\n", config.Version, config.SupportedFormat)
		},
	}
}

// newLogger returns a debug text logger tagged with a run id, or a
// discarding one.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With("run_id", uuid.NewString())
}

func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("invalid --color value %q (want auto, always or never)", mode)
}
