package ferrors

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorfCarriesStack(t *testing.T) {
	var err = Errorf("boom: %d", 42)
	if !HasStack(err) {
		t.Fatal("expected Errorf result to carry a stack location")
	}
	if err.Error() != "boom: 42" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestShortIncludesLocation(t *testing.T) {
	var err = New("something failed")
	var s = Short(err)
	if !strings.HasPrefix(s, "something failed at ") {
		t.Errorf("Short() = %q", s)
	}
}

func TestShortOfNilIsOK(t *testing.T) {
	if Short(nil) != "OK" {
		t.Error("Short(nil) should be OK")
	}
}

func TestInvalidOperationIs(t *testing.T) {
	var err = InvalidOperation("loop already running")
	if !IsInvalidOperation(err) {
		t.Error("expected IsInvalidOperation true")
	}
	if !errors.Is(err, ErrInvalidOperation) {
		t.Error("expected errors.Is to match ErrInvalidOperation")
	}
	if IsValueError(err) {
		t.Error("did not expect IsValueError true")
	}
}

func TestValueError(t *testing.T) {
	var err = ValueError("negative sleep duration")
	if !IsValueError(err) {
		t.Error("expected IsValueError true")
	}
}
