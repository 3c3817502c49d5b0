package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/wsgraph/internal/cli"
	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

// Exit statuses. Usage covers bad flags, configuration and arguments that
// were rejected before any workspace was read.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
	code := exitCode(os.Stderr, root.ExecuteContext(ctx))
	cancel()
	os.Exit(code)
}

// exitCode reports err on w and maps it to the process exit status.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	fmt.Fprintf(w, "wsgraph: %s\n", errs.UserMessage(err))
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidEngine:
		return exitUsage
	}
	return exitFailure
}
