package sgerrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOfUnwrapsThroughFmtErrorf(t *testing.T) {
	base := New(InvalidArgument, "bad separation")
	wrappedErr := fmt.Errorf("prefix: %w", Wrap(IOFailure, "write output", base))
	if KindOf(wrappedErr) != IOFailure {
		t.Errorf("KindOf(wrapped) = %v, want IOFailure", KindOf(wrappedErr))
	}
}

func TestIs(t *testing.T) {
	err := New(ResourceExhaustion, "too many control points")
	if !Is(err, ResourceExhaustion) {
		t.Error("Is(err, ResourceExhaustion) = false, want true")
	}
	if Is(err, IOFailure) {
		t.Error("Is(err, IOFailure) = true, want false")
	}
}

func TestKindOfPlainErrorIsUnknown(t *testing.T) {
	if KindOf(errors.New("plain")) != Unknown {
		t.Error("KindOf(plain error) should be Unknown")
	}
}

func TestErrorStringIncludesKindAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(IOFailure, "flush buffer", cause)
	msg := err.Error()
	if msg == "" {
		t.Fatal("empty error string")
	}
	if !strings.Contains(msg, IOFailure.String()) || !strings.Contains(msg, "disk full") {
		t.Errorf("error string %q should include kind %q and cause %q", msg, IOFailure.String(), "disk full")
	}
	if got := errors.Unwrap(err); got != cause {
		t.Errorf("Unwrap = %v, want %v", got, cause)
	}
}
