package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(Wrap(ErrInvalidConfig, "loading config"), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_UnwrapToSentinel(t *testing.T) {
	err := NewUserError(Wrapf(ErrNoClaudeDir, "looking in %s", "/tmp/x"), "cd into a project")

	if !errors.Is(err, ErrNoClaudeDir) {
		t.Error("errors.Is should find ErrNoClaudeDir through ExitError")
	}
	if !Is(err, ErrNoClaudeDir) {
		t.Error("Is should find ErrNoClaudeDir through ExitError")
	}
}

func TestExitError_As(t *testing.T) {
	wrapped := fmt.Errorf("running generate: %w", NewSystemError(ErrNotFound, "check permissions"))

	var exitErr *ExitError
	if !errors.As(wrapped, &exitErr) {
		t.Fatal("errors.As should find ExitError")
	}
	if exitErr.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitSystem)
	}
	if exitErr.Suggestion != "check permissions" {
		t.Errorf("Suggestion = %q", exitErr.Suggestion)
	}
}

func TestNewConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ExitError
		wantCode int
		wantHint bool
	}{
		{"user", NewUserError(ErrNotFound, "hint"), ExitUser, true},
		{"system", NewSystemError(ErrNotFound, "hint"), ExitSystem, true},
		{"config", NewConfigError(ErrInvalidConfig), ExitUser, true},
		{"plain", NewExitError(ErrNotFound, ExitSystem), ExitSystem, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if (tt.err.Suggestion != "") != tt.wantHint {
				t.Errorf("Suggestion = %q, wantHint %v", tt.err.Suggestion, tt.wantHint)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", New("boom"), ExitSystem},
		{"user error", NewUserError(nil, ""), ExitUser},
		{"wrapped user error", Wrap(NewUserError(ErrInvalidConfig, ""), "outer"), ExitUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
