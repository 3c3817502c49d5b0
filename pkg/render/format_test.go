package render

import (
	"testing"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"dot", FormatDOT, false},
		{"gv", FormatDOT, false},
		{"SVG", FormatSVG, false},
		{" png ", FormatPNG, false},
		{"jpeg", FormatJPG, false},
		{"pdf", FormatPDF, false},
		{"json", FormatJSON, false},
		{"bmp", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errs.Is(err, errs.ErrCodeInvalidFormat) {
					t.Errorf("ParseFormat(%q) err = %v, want %s", tt.in, err, errs.ErrCodeInvalidFormat)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFormatNeedsLayout(t *testing.T) {
	for _, f := range Formats {
		want := f != FormatDOT && f != FormatJSON
		if got := f.NeedsLayout(); got != want {
			t.Errorf("%s.NeedsLayout() = %v, want %v", f, got, want)
		}
		if f.ContentType() == "" {
			t.Errorf("%s.ContentType() is empty", f)
		}
	}
}
