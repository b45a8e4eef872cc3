package view

import (
	"sync"
	"testing"
	"time"
)

func TestSequencer_LatestTokenApplies(t *testing.T) {
	var seq Sequencer

	first := seq.Next()
	second := seq.Next()

	applied := false
	if seq.Apply(first, func() { applied = true }) {
		t.Error("stale token must not apply")
	}
	if applied {
		t.Error("callback ran for a stale token")
	}

	if !seq.Apply(second, func() { applied = true }) {
		t.Error("latest token must apply")
	}
	if !applied {
		t.Error("callback did not run for the latest token")
	}
}

func TestSequencer_OutOfOrderResponses(t *testing.T) {
	var seq Sequencer

	// a slow early fetch must never overwrite a newer one, regardless of
	// arrival order
	slow := seq.Next()
	fast := seq.Next()

	var result string
	seq.Apply(fast, func() { result = "fast" })
	seq.Apply(slow, func() { result = "slow" })

	if result != "fast" {
		t.Errorf("result = %q, stale response overwrote the newer one", result)
	}
}

func TestSequencer_Concurrent(t *testing.T) {
	var seq Sequencer
	var mu sync.Mutex
	appliedCount := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		token := seq.Next()
		go func(tok uint64) {
			defer wg.Done()
			seq.Apply(tok, func() {
				mu.Lock()
				appliedCount++
				mu.Unlock()
			})
		}(token)
	}
	wg.Wait()

	// at most the holder of the final token applies
	if appliedCount > 1 {
		t.Errorf("appliedCount = %d", appliedCount)
	}
}

func TestDebouncer_OnlyLastTriggerFires(t *testing.T) {
	debouncer := NewDebouncer(20 * time.Millisecond)
	defer debouncer.Stop()

	var mu sync.Mutex
	fired := []string{}
	record := func(tag string) func() {
		return func() {
			mu.Lock()
			fired = append(fired, tag)
			mu.Unlock()
		}
	}

	debouncer.Trigger(record("first"))
	debouncer.Trigger(record("second"))
	debouncer.Trigger(record("third"))

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 || fired[0] != "third" {
		t.Errorf("fired = %v, want only the last trigger", fired)
	}
}

func TestDebouncer_StopCancels(t *testing.T) {
	debouncer := NewDebouncer(10 * time.Millisecond)

	var mu sync.Mutex
	fired := false
	debouncer.Trigger(func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})
	debouncer.Stop()

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fired {
		t.Error("stopped debouncer must not fire")
	}
}
