package fruntime

import "testing"

func TestNewCodeLocationSelf(t *testing.T) {
	var cl = NewCodeLocation(0)
	if !cl.IsSet() {
		t.Fatal("expected code location to be set")
	}
	if cl.Package() != "fruntime" {
		t.Errorf("Package() = %q, want fruntime", cl.Package())
	}
	if cl.Name() != "TestNewCodeLocationSelf" {
		t.Errorf("Name() = %q, want TestNewCodeLocationSelf", cl.Name())
	}
}

func TestCodeLocationZeroValue(t *testing.T) {
	var cl CodeLocation
	if cl.IsSet() {
		t.Error("zero-value CodeLocation reported IsSet")
	}
	if (&cl).IsSet() {
		t.Error("zero-value *CodeLocation reported IsSet")
	}
}
