package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapReturnsSamePointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("sim.runs")
	b := r.Ints.Get("sim.runs")
	if a != b {
		t.Fatal("Get must return the cached pointer")
	}
	a.Add(3)
	if got := r.Ints.Get("sim.runs").Load(); got != 3 {
		t.Errorf("Load() = %d, want 3", got)
	}
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if got := f.Load(); got != 400 {
		t.Errorf("Load() = %v, want 400", got)
	}
}

func TestStoreMax(t *testing.T) {
	var f AtomicFloat
	f.StoreMax(5)
	f.StoreMax(2)
	if got := f.Load(); got != 5 {
		t.Errorf("Load() = %v, want 5", got)
	}
}

func TestSnapshotOrderAndValues(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b").Store(2)
	r.Floats.Get("a").Store(1.5)

	var keys []string
	r.Ints.Range(func(k string, _ *atomic.Int64) { keys = append(keys, k) })
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("Range keys = %v", keys)
	}

	snap := r.Snapshot()
	if snap["a"] != 1.5 || snap["b"] != 2 {
		t.Errorf("Snapshot() = %v", snap)
	}
}
