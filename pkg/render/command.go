package render

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

// Command renders by running an installed Graphviz program.
type Command struct {
	// Program is the Graphviz executable, e.g. "dot" or "neato".
	Program string
	// Dir is the directory holding Program. Empty means search PATH.
	Dir string
}

// NewCommand returns a renderer running program from dir.
func NewCommand(program, dir string) *Command {
	if program == "" {
		program = DefaultEngine
	}
	return &Command{Program: program, Dir: dir}
}

// Name implements [Renderer].
func (c *Command) Name() string { return "command:" + c.path() }

func (c *Command) path() string {
	if c.Dir == "" {
		return c.Program
	}
	return filepath.Join(c.Dir, c.Program)
}

// Render implements [Renderer]. The DOT source is written to the program's
// stdin and the output is read from its stdout.
func (c *Command) Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	if !format.NeedsLayout() {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "format %q is not rendered by graphviz", format)
	}

	path, err := exec.LookPath(c.path())
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRender, err, "graphviz command %q not found", c.path())
	}

	cmd := exec.CommandContext(ctx, path, "-T"+string(format))
	cmd.Stdin = strings.NewReader(dot)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.ErrCodeRender, err, "%s: %s", c.Program, strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}
