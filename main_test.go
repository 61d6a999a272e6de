package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/app"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/config"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/testutil"
)

const cliDocument = `vars:
  dir: "/tmp"
cmds:
  list: "ls {{ dir }}"
bookmarks:
  - name: tmp
    cmds: ["cmd::list"]
    labels: [fs]
  - name: build
    cmds: ["make", "make test"]
    exec: true
    labels: [dev, ci]
  - name: loop
    cmds: ["bookmark::loop"]
`

// runCLI executes the command line against a temporary document and log file.
func runCLI(t *testing.T, doc string, args ...string) (int, string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.yaml")
	if doc != "" {
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatalf("write document: %v", err)
		}
	}
	argv := append([]string{"--file", path, "--log-file", filepath.Join(dir, "test.log")}, args...)
	var stdout, stderr bytes.Buffer
	code := execute(argv, []string{"HOME=" + dir}, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			File:       "/tmp/bookmarks.yaml",
			SocketPath: "socket-path",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"socket":  "socket-path",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
		},
		Args: []string{"--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["verbose"] != "true" {
		t.Fatalf("expected verbose flag true, got %v", flagsValue["verbose"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestResolveCommandPrintsCommand(t *testing.T) {
	code, out, errOut := runCLI(t, cliDocument, "resolve", "build")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, errOut)
	}
	if out != "make && make test\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestResolveCommandUnknownBookmark(t *testing.T) {
	code, _, errOut := runCLI(t, cliDocument, "resolve", "nope")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, `bookmark "nope" not found`) {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestListCommandGolden(t *testing.T) {
	code, out, errOut := runCLI(t, cliDocument, "list")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, errOut)
	}
	testutil.Golden(t).Assert(t, "list", []byte(out))
}

func TestCheckCommandReportsFailures(t *testing.T) {
	code, out, errOut := runCLI(t, cliDocument, "check")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out, "circular bookmark reference: loop -> loop") {
		t.Fatalf("expected cycle in output, got %q", out)
	}
	if !strings.Contains(errOut, "1 bookmark(s) failed to resolve") {
		t.Fatalf("expected summary on stderr, got %q", errOut)
	}
}

func TestCheckCommandSucceeds(t *testing.T) {
	doc := strings.Replace(cliDocument, `["bookmark::loop"]`, `["bookmark::tmp"]`, 1)
	code, out, errOut := runCLI(t, doc, "check")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, errOut)
	}
	if out != "3 bookmark(s) ok\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestListCreatesMissingDocument(t *testing.T) {
	code, out, errOut := runCLI(t, "", "list")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, errOut)
	}
	if !strings.HasPrefix(out, "ID  NAME  LABELS  EXEC  COMMAND\n") {
		t.Fatalf("expected header only, got %q", out)
	}
}

func TestParseErrorExitsWithFailure(t *testing.T) {
	code, _, errOut := runCLI(t, "bookmarks: [\n", "list")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.HasPrefix(errOut, "Error: ") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestConfigurationErrorsExitTwo(t *testing.T) {
	cases := [][]string{
		{"--no-such-flag", "list"},
		{"--bind-edit", "e", "list"},
		{"--width", "-1", "list"},
	}
	for _, args := range cases {
		code, _, errOut := runCLI(t, cliDocument, args...)
		if code != 2 {
			t.Fatalf("%v: expected exit 2, got %d (%s)", args, code, errOut)
		}
		if !strings.HasPrefix(errOut, "Configuration error: ") {
			t.Fatalf("%v: unexpected stderr %q", args, errOut)
		}
	}
}
