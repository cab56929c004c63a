package stats

import "testing"

func TestCounters(t *testing.T) {
	var c Counters
	c.AddSuccessful(3)
	c.AddFailed(2)

	if c.Successful() != 3 {
		t.Fatalf("successful: got %d, want 3", c.Successful())
	}
	if c.Failed() != 2 {
		t.Fatalf("failed: got %d, want 2", c.Failed())
	}
	if c.Total() != 5 {
		t.Fatalf("total: got %d, want 5", c.Total())
	}

	c.Reset()
	if c.Total() != 0 {
		t.Fatalf("total after reset: got %d, want 0", c.Total())
	}
}

func TestCountersSaturate(t *testing.T) {
	var c Counters
	c.AddSuccessful(^uint64(0))
	c.AddSuccessful(10)
	if c.Successful() != ^uint64(0) {
		t.Fatalf("successful did not saturate: %d", c.Successful())
	}
	c.AddFailed(1)
	if c.Total() != ^uint64(0) {
		t.Fatalf("total did not saturate: %d", c.Total())
	}
}
