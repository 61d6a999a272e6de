package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/app"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/ui/keys"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix = "TMUX_BOOKMARKS_"
	envFile   = envPrefix + "ENV_FILE"
)

// envKeys maps flag names to their environment fallbacks.
var envKeys = map[string]string{
	"file":                   envPrefix + "FILE",
	"exec":                   envPrefix + "EXEC",
	"ignore-case":            envPrefix + "IGNORE_CASE",
	"autodetect-filter-mode": envPrefix + "AUTODETECT",
	"watch":                  envPrefix + "WATCH",
	"socket":                 envPrefix + "SOCKET",
	"target":                 envPrefix + "TARGET",
	"width":                  envPrefix + "WIDTH",
	"height":                 envPrefix + "HEIGHT",
	"footer":                 envPrefix + "FOOTER",
	"verbose":                envPrefix + "VERBOSE",
	"bind-edit":              envPrefix + "BIND_EDIT",
	"bind-reload":            envPrefix + "BIND_RELOAD",
	"bind-filter-label":      envPrefix + "BIND_FILTER_LABEL",
	"bind-filter-id":         envPrefix + "BIND_FILTER_ID",
	"bind-describe":          envPrefix + "BIND_DESCRIBE",
	"bind-copy":              envPrefix + "BIND_COPY",
	"trace":                  envPrefix + "TRACE",
	"log-file":               envPrefix + "LOG_FILE",
}

// Options is a flag set bound to configuration values. Register the flags
// on a command, parse, then call Resolve.
type Options struct {
	fs      *pflag.FlagSet
	environ []string

	file       string
	execFlag   bool
	ignoreCase bool
	autodetect bool
	watch      bool
	socket     string
	target     string
	width      int
	height     int
	footer     bool
	verbose    bool
	bindings   keys.Bindings
	trace      bool
	logFile    string
	envFile    string
}

// Register adds every configuration flag to fs. environ supplies $HOME,
// $XDG_CONFIG_HOME and $TMUX_PANE for the defaults.
func Register(fs *pflag.FlagSet, environ []string) *Options {
	env := parseEnv(environ)
	defaults := keys.DefaultBindings()
	o := &Options{fs: fs, environ: environ}

	fs.StringVarP(&o.file, "file", "f", defaultDocumentPath(env), "path to the bookmarks document")
	fs.BoolVar(&o.execFlag, "exec", false, "press Enter after inserting a command unless the bookmark sets exec")
	fs.BoolVar(&o.ignoreCase, "ignore-case", true, "match filters case-insensitively")
	fs.BoolVar(&o.autodetect, "autodetect-filter-mode", true, "filter by id when the query is numeric")
	fs.BoolVar(&o.watch, "watch", false, "reload automatically when the document changes")
	fs.StringVar(&o.socket, "socket", "", "path to the tmux socket (overrides environment detection)")
	fs.StringVar(&o.target, "target", env["TMUX_PANE"], "tmux pane that receives the command")
	fs.IntVar(&o.width, "width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.IntVar(&o.height, "height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.BoolVar(&o.footer, "footer", false, "enable footer hint row (disabled by default)")
	fs.BoolVar(&o.verbose, "verbose", false, "print success messages for actions")
	fs.StringVar(&o.bindings.Edit, "bind-edit", defaults.Edit, "key that opens the document in $EDITOR")
	fs.StringVar(&o.bindings.Reload, "bind-reload", defaults.Reload, "key that reloads the document")
	fs.StringVar(&o.bindings.FilterLabel, "bind-filter-label", defaults.FilterLabel, "key that toggles filtering by label")
	fs.StringVar(&o.bindings.FilterID, "bind-filter-id", defaults.FilterID, "key that toggles filtering by id")
	fs.StringVar(&o.bindings.Describe, "bind-describe", defaults.Describe, "key that toggles descriptions")
	fs.StringVar(&o.bindings.Copy, "bind-copy", defaults.Copy, "key that copies the selected command")
	fs.BoolVar(&o.trace, "trace", false, "enable verbose JSON trace logging")
	fs.StringVar(&o.logFile, "log-file", "", "path to the log file")
	fs.StringVar(&o.envFile, "env-file", env[envFile], "dotenv file with TMUX_BOOKMARKS_* settings")
	return o
}

// Resolve layers environment values under explicitly set flags and builds
// the configuration. args are the arguments that were parsed, for tracing.
func (o *Options) Resolve(args []string) (Config, error) {
	env := parseEnv(o.environ)
	if strings.TrimSpace(o.envFile) != "" {
		fileEnv, err := godotenv.Read(o.envFile)
		if err != nil {
			return Config{}, fmt.Errorf("read env file: %w", err)
		}
		for k, v := range fileEnv {
			if _, ok := env[k]; !ok {
				env[k] = v
			}
		}
	}
	o.applyEnv(env)

	if o.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", o.width)
	}
	if o.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", o.height)
	}

	cfg := Config{
		App: app.Config{
			File:        o.file,
			ExecDefault: o.execFlag,
			IgnoreCase:  o.ignoreCase,
			Autodetect:  o.autodetect,
			Watch:       o.watch,
			SocketPath:  o.socket,
			Target:      o.target,
			Width:       o.width,
			Height:      o.height,
			ShowFooter:  o.footer,
			Verbose:     o.verbose,
			Bindings:    o.bindings,
		},
		Logging: Logging{
			FilePath: o.logFile,
			Trace:    o.trace,
		},
		Flags: map[string]string{
			"file":       o.file,
			"exec":       strconv.FormatBool(o.execFlag),
			"ignoreCase": strconv.FormatBool(o.ignoreCase),
			"autodetect": strconv.FormatBool(o.autodetect),
			"watch":      strconv.FormatBool(o.watch),
			"socket":     o.socket,
			"target":     o.target,
			"width":      strconv.Itoa(o.width),
			"height":     strconv.Itoa(o.height),
			"footer":     strconv.FormatBool(o.footer),
			"verbose":    strconv.FormatBool(o.verbose),
			"trace":      strconv.FormatBool(o.trace),
			"logFile":    o.logFile,
			"envFile":    o.envFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// applyEnv sets every flag the user did not pass explicitly from its
// environment fallback. Values that do not parse keep the default.
func (o *Options) applyEnv(env map[string]string) {
	for name, envKey := range envKeys {
		f := o.fs.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := env[envKey]
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		prev := f.Value.String()
		if err := f.Value.Set(strings.TrimSpace(v)); err != nil {
			_ = f.Value.Set(prev)
		}
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("tmux-bookmarks", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	opts := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return opts.Resolve(args)
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.File) == "" {
		return fmt.Errorf("bookmarks file path is empty")
	}
	if _, err := keys.New(cfg.App.Bindings); err != nil {
		return err
	}
	return nil
}

func defaultDocumentPath(env map[string]string) string {
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			home, _ = os.UserHomeDir()
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tmux-bookmarks", "bookmarks.yaml")
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}
