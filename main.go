package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/app"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/catalog"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/config"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/format/table"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/logging"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/logging/events"
)

const (
	exitFailure = 1
	exitConfig  = 2
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func main() {
	os.Exit(execute(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(args, environ []string, stdout, stderr io.Writer) int {
	root := newRootCmd(args, environ)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) && ee.code == exitConfig {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitConfig
	}
	logging.Error(err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if ee != nil {
		return ee.code
	}
	return exitFailure
}

func newRootCmd(argv, environ []string) *cobra.Command {
	var (
		opts *config.Options
		cfg  config.Config
	)
	root := &cobra.Command{
		Use:           "tmux-bookmarks",
		Short:         "Browse command bookmarks and paste them into a tmux pane",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := opts.Resolve(argv)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			if err := config.Validate(resolved); err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			cfg = resolved
			logging.Configure(cfg.Logging.FilePath)
			logging.SetTraceEnabled(cfg.Logging.Trace)
			traceStartup(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cfg.App)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &exitError{code: exitConfig, err: err}
	})
	opts = config.Register(root.PersistentFlags(), environ)
	root.AddCommand(
		newResolveCmd(&cfg),
		newListCmd(&cfg),
		newCheckCmd(&cfg),
	)
	return root
}

func openGeneration(cfg *config.Config) (*catalog.Generation, error) {
	store, err := app.OpenStore(cfg.App.File, cfg.App.ExecDefault)
	if err != nil {
		return nil, err
	}
	return store.Current(), nil
}

func newResolveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME",
		Short: "Print the resolved command of one bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := openGeneration(cfg)
			if err != nil {
				return err
			}
			res, err := gen.Cache.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Command)
			return nil
		},
	}
}

func newListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every resolved bookmark as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := openGeneration(cfg)
			if err != nil {
				return err
			}
			writeList(cmd.OutOrStdout(), gen)
			return nil
		},
	}
}

func newCheckCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Resolve every bookmark and report failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := openGeneration(cfg)
			if err != nil {
				return err
			}
			failures := gen.Failures()
			writeFailures(cmd.OutOrStdout(), failures)
			if len(failures) > 0 {
				return &exitError{code: exitFailure, err: fmt.Errorf("%d bookmark(s) failed to resolve", len(failures))}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d bookmark(s) ok\n", len(gen.Index.Bookmarks))
			return nil
		},
	}
}

func writeList(w io.Writer, gen *catalog.Generation) {
	rows := make([][]string, 0, len(gen.Index.Bookmarks))
	for _, row := range gen.Index.Bookmarks {
		exec := ""
		if row.Exec {
			exec = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprint(row.ID),
			row.Name,
			strings.Join(row.Labels, ","),
			exec,
			row.Command,
		})
	}
	header := []string{"ID", "NAME", "LABELS", "EXEC", "COMMAND"}
	for _, line := range table.WithHeader(header, rows, []table.Alignment{table.AlignRight}) {
		fmt.Fprintln(w, line)
	}
	writeFailures(w, gen.Failures())
}

func writeFailures(w io.Writer, failures []catalog.Failure) {
	for _, f := range failures {
		fmt.Fprintf(w, "error: %v\n", f.Err)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
