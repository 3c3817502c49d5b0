package render

import (
	"strings"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

// Format is an output format.
type Format string

const (
	FormatDOT  Format = "dot"  // Plain graph description, no layout
	FormatJSON Format = "json" // Nodes and edges as JSON
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatDOT, FormatJSON, FormatSVG, FormatPNG, FormatJPG, FormatPDF}

// ParseFormat validates a format name. It is case-insensitive and accepts
// "jpeg" and "gv" as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "jpeg":
		return FormatJPG, nil
	case "gv":
		return FormatDOT, nil
	case FormatDOT, FormatJSON, FormatSVG, FormatPNG, FormatJPG, FormatPDF:
		return f, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unknown format %q (want one of %s)", s, joinFormats())
}

// NeedsLayout reports whether the format is produced by a [Renderer].
func (f Format) NeedsLayout() bool {
	return f != FormatDOT && f != FormatJSON
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

func joinFormats() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
