package main

import (
	"errors"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestExitErrHandler_NilError(t *testing.T) {
	// Should not panic or exit on nil error
	exitErrHandler(nil, nil)
}

func TestExitErrHandler_ExitCoder(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"success", cli.Exit("", 0), 0},
		{"usage or io", cli.Exit("exactly one file required", 1), 1},
		{"format rejected", cli.Exit("signature mismatch", 2), 2},
		{"corrupt", cli.Exit("checksum mismatch", 3), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// os.Exit cannot be observed in-process; check the ExitCoder the
			// handler relies on.
			var exitCoder cli.ExitCoder
			if !errors.As(tt.err, &exitCoder) {
				t.Fatalf("error should be cli.ExitCoder")
			}
			if exitCoder.ExitCode() != tt.wantCode {
				t.Errorf("exit code = %d, want %d", exitCoder.ExitCode(), tt.wantCode)
			}
		})
	}
}

func TestExitErrHandler_WrappedExitCoder(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), cli.Exit("inner error", 3))

	var exitCoder cli.ExitCoder
	if !errors.As(wrapped, &exitCoder) {
		t.Fatal("wrapped error should still match cli.ExitCoder")
	}
	if exitCoder.ExitCode() != 3 {
		t.Errorf("exit code = %d, want 3", exitCoder.ExitCode())
	}
}

func TestExitErrHandler_RegularError(t *testing.T) {
	var exitCoder cli.ExitCoder
	if errors.As(errors.New("regular error"), &exitCoder) {
		t.Fatal("regular error should not be cli.ExitCoder")
	}
}

func TestExitErrHandler_MessageSuppression(t *testing.T) {
	msg := cli.Exit("", 2).Error()
	if msg != "" && msg != "exit status 2" {
		t.Errorf("Expected empty or 'exit status 2', got %q", msg)
	}
}
