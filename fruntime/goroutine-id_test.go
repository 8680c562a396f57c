package fruntime

import "testing"

func TestGoroutineIDNonEmpty(t *testing.T) {
	var id = GoroutineID()
	if id == "" {
		t.Fatal("expected a non-empty goroutine id")
	}
}

func TestGoroutineIDDiffersAcrossGoroutines(t *testing.T) {
	var id = GoroutineID()
	var otherID = make(chan string, 1)
	go func() { otherID <- GoroutineID() }()
	var other = <-otherID
	if other == id {
		t.Errorf("expected distinct goroutine ids, both were %q", id)
	}
}
