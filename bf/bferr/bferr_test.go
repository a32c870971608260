package bferr_test

import (
	"errors"
	"testing"

	"github.com/tripwire/bf/bf/bferr"
)

func TestUnbalancedBracketsKind(t *testing.T) {
	err := bferr.UnbalancedBrackets()
	if err.Kind != bferr.KindUnbalancedBrackets {
		t.Errorf("Kind = %v, want KindUnbalancedBrackets", err.Kind)
	}
}

func TestIOWrapsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := bferr.IO("write failed", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIONilCause(t *testing.T) {
	err := bferr.IO("handler failed", nil)
	if err.Unwrap() != nil {
		t.Error("Unwrap() should be nil when no cause given")
	}
	if err.Error() == "" {
		t.Error("Error() should produce a non-empty message")
	}
}
