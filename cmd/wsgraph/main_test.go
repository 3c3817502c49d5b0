package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantMsg string
	}{
		{"success", nil, exitOK, ""},
		{"interrupted", context.Canceled, exitInterrupted, ""},
		{"interrupted during render", errs.Wrap(errs.ErrCodeRender, context.Canceled, "render svg"), exitInterrupted, ""},
		{"unknown format", errs.New(errs.ErrCodeInvalidFormat, "unknown format %q", "gif"), exitUsage, `wsgraph: unknown format "gif"` + "\n"},
		{"negative depth", errs.New(errs.ErrCodeInvalidInput, "depth must be >= 0"), exitUsage, "wsgraph: depth must be >= 0\n"},
		{"missing workspace", errs.New(errs.ErrCodeWorkspaceNotFound, "no workspace found in /tmp"), exitFailure, "wsgraph: no workspace found in /tmp\n"},
		{"cobra error", fmt.Errorf("unknown command %q", "grpah"), exitFailure, `wsgraph: unknown command "grpah"` + "\n"},
		{"wrapped cause", errs.Wrap(errs.ErrCodeIO, errors.New("disk full"), "write out.svg"), exitFailure, "wsgraph: write out.svg: disk full\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if got := exitCode(&out, tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
			if out.String() != tt.wantMsg {
				t.Errorf("message = %q, want %q", out.String(), tt.wantMsg)
			}
		})
	}
}
