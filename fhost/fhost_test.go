package fhost

import "testing"

func TestProcessorCountPositive(t *testing.T) {
	if ProcessorCount() < 1 {
		t.Error("expected at least one processor")
	}
}

func TestDescribeDoesNotPanic(t *testing.T) {
	// Describe must be safe to call even in sandboxed/CI environments
	// where host introspection may fail
	_ = Describe()
}
