package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

// DefaultEngine is the layout engine used when none is configured.
const DefaultEngine = "dot"

var engines = map[string]graphviz.Layout{
	"dot":       graphviz.DOT,
	"neato":     graphviz.NEATO,
	"fdp":       graphviz.FDP,
	"sfdp":      graphviz.SFDP,
	"circo":     graphviz.CIRCO,
	"twopi":     graphviz.TWOPI,
	"osage":     graphviz.OSAGE,
	"patchwork": graphviz.PATCHWORK,
}

// Engines lists the layout engines accepted by [NewGraphviz], sorted.
var Engines = func() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}()

// ValidateEngine reports whether name is a known layout engine.
func ValidateEngine(name string) error {
	if _, ok := engines[name]; !ok {
		return errs.New(errs.ErrCodeInvalidEngine, "unknown layout engine %q (want one of %s)",
			name, strings.Join(Engines, ", "))
	}
	return nil
}

// Graphviz renders in-process with go-graphviz.
type Graphviz struct {
	engine string
}

// NewGraphviz returns a renderer using the given layout engine. An empty
// engine selects [DefaultEngine].
func NewGraphviz(engine string) (*Graphviz, error) {
	if engine == "" {
		engine = DefaultEngine
	}
	if err := ValidateEngine(engine); err != nil {
		return nil, err
	}
	return &Graphviz{engine: engine}, nil
}

// Name implements [Renderer].
func (r *Graphviz) Name() string { return "graphviz:" + r.engine }

// Render implements [Renderer].
func (r *Graphviz) Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	switch format {
	case FormatSVG:
		return r.render(ctx, dot, graphviz.SVG)
	case FormatPNG:
		return r.render(ctx, dot, graphviz.PNG)
	case FormatJPG:
		return r.render(ctx, dot, graphviz.JPG)
	case FormatPDF:
		svg, err := r.render(ctx, dot, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat, "format %q is not rendered by graphviz", format)
}

func (r *Graphviz) render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(engines[r.engine])

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeRender, err, "render with %s", r.engine)
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg element with one whose viewBox
// starts at the origin and whose size matches the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
