package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidSeed, "seed out of range: %d", -1),
			want: "INVALID_SEED: seed out of range: -1",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeIOFailure, fmt.Errorf("disk full"), "write report"),
			want: "IO_FAILURE: write report: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodePlacementExhausted, "no room")

	if !Is(err, ErrCodePlacementExhausted) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeInvalidSeed) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() should not match a non-structured error")
	}

	// Wrapped errors should still match by code.
	wrapped := fmt.Errorf("pipeline: %w", err)
	if !Is(wrapped, ErrCodePlacementExhausted) {
		t.Error("Is() should unwrap fmt-wrapped errors")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeIOFailure, cause, "context")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidDate, "bad date")); got != ErrCodeInvalidDate {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidDate)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidLocale, "unknown locale %q", "xx")
	msg := UserMessage(err)
	if strings.Contains(msg, string(ErrCodeInvalidLocale)) {
		t.Errorf("UserMessage() should strip the code prefix, got %q", msg)
	}
	if !strings.Contains(msg, "xx") {
		t.Errorf("UserMessage() should keep the message, got %q", msg)
	}

	plain := stderrors.New("plain message")
	if got := UserMessage(plain); got != "plain message" {
		t.Errorf("UserMessage() on plain error = %q", got)
	}
}
