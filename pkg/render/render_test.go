package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wsgraph/pkg/cache"
	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

const testDOT = `digraph G {
  "app" [style="rounded,filled"];
  "lib";
  "app" -> "lib";
}
`

func TestNewGraphviz(t *testing.T) {
	r, err := NewGraphviz("")
	if err != nil {
		t.Fatalf("NewGraphviz: %v", err)
	}
	if r.Name() != "graphviz:dot" {
		t.Errorf("Name() = %q, want graphviz:dot", r.Name())
	}

	for _, engine := range Engines {
		if _, err := NewGraphviz(engine); err != nil {
			t.Errorf("NewGraphviz(%q): %v", engine, err)
		}
	}

	if _, err := NewGraphviz("magic"); !errs.Is(err, errs.ErrCodeInvalidEngine) {
		t.Errorf("NewGraphviz(magic) err = %v, want %s", err, errs.ErrCodeInvalidEngine)
	}
}

func TestGraphvizRender(t *testing.T) {
	ctx := context.Background()
	r, _ := NewGraphviz("dot")

	tests := []struct {
		format Format
		magic  []byte
	}{
		{FormatSVG, []byte("<svg")},
		{FormatPNG, []byte("\x89PNG")},
		{FormatJPG, []byte("\xff\xd8")},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			out, err := r.Render(ctx, testDOT, tt.format)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !bytes.Contains(out[:min(len(out), 512)], tt.magic) {
				t.Errorf("output does not look like %s: %q", tt.format, out[:min(len(out), 32)])
			}
		})
	}
}

func TestGraphvizRenderSVGNormalized(t *testing.T) {
	r, _ := NewGraphviz("neato")
	out, err := r.Render(context.Background(), testDOT, FormatSVG)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(out, []byte(`viewBox="0 0 `)) {
		t.Error("SVG viewBox should start at the origin")
	}
	if !bytes.Contains(out, []byte("app")) || !bytes.Contains(out, []byte("lib")) {
		t.Error("SVG missing node labels")
	}
}

func TestGraphvizRenderErrors(t *testing.T) {
	ctx := context.Background()
	r, _ := NewGraphviz("dot")

	if _, err := r.Render(ctx, testDOT, FormatDOT); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Render(dot) err = %v, want %s", err, errs.ErrCodeInvalidFormat)
	}
	if _, err := r.Render(ctx, "digraph {", FormatSVG); !errs.Is(err, errs.ErrCodeRender) {
		t.Errorf("Render(broken) err = %v, want %s", err, errs.ErrCodeRender)
	}
}

func TestGraphvizRenderPDF(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	r, _ := NewGraphviz("dot")
	out, err := r.Render(context.Background(), testDOT, FormatPDF)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("normalizeViewBox() without viewBox changed input: %s", got)
	}
}

// fakeGraphviz writes a shell script that echoes its -T flag and stdin.
func fakeGraphviz(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCommandRender(t *testing.T) {
	dir := fakeGraphviz(t, "fakedot", `echo "format $1"; cat`)
	c := NewCommand("fakedot", dir)

	if c.Name() != "command:"+filepath.Join(dir, "fakedot") {
		t.Errorf("Name() = %q", c.Name())
	}

	out, err := c.Render(context.Background(), testDOT, FormatSVG)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(out), "format -Tsvg\n") {
		t.Errorf("program got wrong flag: %q", out)
	}
	if !strings.HasSuffix(string(out), testDOT) {
		t.Errorf("program did not receive DOT on stdin: %q", out)
	}
}

func TestCommandRenderFailure(t *testing.T) {
	dir := fakeGraphviz(t, "brokendot", `echo "syntax error in line 1" >&2; exit 1`)
	c := NewCommand("brokendot", dir)

	_, err := c.Render(context.Background(), testDOT, FormatPNG)
	if !errs.Is(err, errs.ErrCodeRender) {
		t.Fatalf("err = %v, want %s", err, errs.ErrCodeRender)
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("err should carry stderr: %v", err)
	}
}

func TestCommandRenderMissingProgram(t *testing.T) {
	c := NewCommand("no-such-graphviz", t.TempDir())
	if _, err := c.Render(context.Background(), testDOT, FormatSVG); !errs.Is(err, errs.ErrCodeRender) {
		t.Errorf("err = %v, want %s", err, errs.ErrCodeRender)
	}
	if _, err := c.Render(context.Background(), testDOT, FormatJSON); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Render(json) err = %v, want %s", err, errs.ErrCodeInvalidFormat)
	}
}

// countingRenderer records how often it is called.
type countingRenderer struct {
	calls int
	err   error
}

func (r *countingRenderer) Name() string { return "counting" }

func (r *countingRenderer) Render(_ context.Context, dot string, format Format) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []byte(string(format) + ":" + dot), nil
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &countingRenderer{}
	r := NewCached(inner, fc, time.Hour, nil)

	if r.Name() != "counting" {
		t.Errorf("Name() = %q, want inner name", r.Name())
	}

	first, err := r.Render(ctx, "digraph {}", FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := r.Render(ctx, "digraph {}", FormatSVG)
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("cached output %q differs from %q", second, first)
	}

	_, _ = r.Render(ctx, "digraph {}", FormatPNG)
	_, _ = r.Render(ctx, "digraph { a }", FormatSVG)
	if inner.calls != 3 {
		t.Errorf("inner called %d times, want 3 (format and dot are part of the key)", inner.calls)
	}
}

func TestCachedDoesNotStoreErrors(t *testing.T) {
	inner := &countingRenderer{err: errs.New(errs.ErrCodeRender, "boom")}
	r := NewCached(inner, cache.NewNullCache(), time.Hour, nil)

	for range 2 {
		if _, err := r.Render(context.Background(), "digraph {}", FormatSVG); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want 2", inner.calls)
	}
}
