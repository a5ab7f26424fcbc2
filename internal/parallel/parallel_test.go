package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForBatch(t *testing.T) {
	cfg := HeavyConfig()

	batch, channels := 4, 8
	var hits [4][8]atomic.Bool

	ForBatch(batch, channels, func(b, c int) {
		hits[b][c].Store(true)
	}, cfg)

	for b := 0; b < batch; b++ {
		for c := 0; c < channels; c++ {
			if !hits[b][c].Load() {
				t.Errorf("Missing result at [%d][%d]", b, c)
			}
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestFor_Ordering(t *testing.T) {
	// Every index must be visited exactly once regardless of chunking.
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	n := 37
	visits := make([]atomic.Int32, n)
	For(n, func(i int) {
		visits[i].Add(1)
	}, cfg)

	for i := range visits {
		if got := visits[i].Load(); got != 1 {
			t.Errorf("index %d visited %d times", i, got)
		}
	}
}
