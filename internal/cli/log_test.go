package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// runLogged executes the root command and returns what its logger wrote.
func runLogged(t *testing.T, args ...string) string {
	t.Helper()
	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return logs.String()
}

func TestGraphLogsDiscovery(t *testing.T) {
	isolate(t)
	dir := lernaWorkspace(t)

	logs := runLogged(t, "graph", dir)
	if !strings.Contains(logs, "Discovered 4 lerna packages (") {
		t.Errorf("missing discovery line in:\n%s", logs)
	}
	if !regexp.MustCompile(`Discovered 4 lerna packages \([0-9.]+[nµm]?s\)`).MatchString(logs) {
		t.Errorf("discovery line should end with the elapsed time:\n%s", logs)
	}
}

func TestVerboseFlag(t *testing.T) {
	isolate(t)
	dir := lernaWorkspace(t)

	tests := []struct {
		name      string
		verbose   []string
		wantDebug bool
	}{
		{"default", nil, false},
		{"short", []string{"-v"}, true},
		{"long", []string{"--verbose"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "graph.svg")
			args := append([]string{"graph", dir, "-f", "svg", "-o", out}, tt.verbose...)
			logs := runLogged(t, args...)

			// Both lines come from loggers handed down through the command:
			// discovery via workspace.Options, the cache via the context.
			for _, line := range []string{"Detected workspace", "using file render cache"} {
				if got := strings.Contains(logs, line); got != tt.wantDebug {
					t.Errorf("%q logged = %v, want %v\n%s", line, got, tt.wantDebug, logs)
				}
			}
			if !strings.Contains(logs, "Discovered 4 lerna packages") {
				t.Errorf("info output missing:\n%s", logs)
			}
		})
	}
}

func TestLevelFor(t *testing.T) {
	if got := levelFor(false); got != log.InfoLevel {
		t.Errorf("levelFor(false) = %v, want info", got)
	}
	if got := levelFor(true); got != log.DebugLevel {
		t.Errorf("levelFor(true) = %v, want debug", got)
	}
}

func TestCountOf(t *testing.T) {
	tests := []struct {
		n    int
		noun string
		want string
	}{
		{0, "cargo package", "0 cargo packages"},
		{1, "lerna package", "1 lerna package"},
		{12, "pnpm package", "12 pnpm packages"},
	}
	for _, tt := range tests {
		if got := countOf(tt.n, tt.noun); got != tt.want {
			t.Errorf("countOf(%d, %q) = %q, want %q", tt.n, tt.noun, got, tt.want)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Rendered %s graph", "svg")

	if !regexp.MustCompile(`INFO Rendered svg graph \([0-9.]+[nµm]?s\)`).MatchString(buf.String()) {
		t.Errorf("unexpected progress line %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	custom := newLogger(io.Discard, LogDebug)

	tests := []struct {
		name string
		ctx  context.Context
		want *log.Logger
	}{
		{"unset", context.Background(), log.Default()},
		{"attached", withLogger(context.Background(), custom), custom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loggerFromContext(tt.ctx); got != tt.want {
				t.Errorf("loggerFromContext() = %p, want %p", got, tt.want)
			}
		})
	}
}
