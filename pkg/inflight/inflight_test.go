package inflight

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_CollapsesConcurrentDuplicates(t *testing.T) {
	group := New()

	var executions atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	fn := func() (interface{}, error) {
		executions.Add(1)
		close(started)
		<-release
		return "done", nil
	}

	var wg sync.WaitGroup
	results := make([]interface{}, 3)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = group.Do("users:1", fn)
	}()
	<-started

	for i := 1; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = group.Do("users:1", func() (interface{}, error) {
				executions.Add(1)
				return "done", nil
			})
		}(i)
	}

	// give the duplicates time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Errorf("executions = %d, concurrent duplicates must share one call", got)
	}
	for i, r := range results {
		if r != "done" {
			t.Errorf("results[%d] = %v", i, r)
		}
	}
}

func TestGroup_DistinctKeysRunIndependently(t *testing.T) {
	group := New()

	var executions atomic.Int32
	var wg sync.WaitGroup
	for _, key := range []string{"users:1", "users:2", "orders:1"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			group.Do(key, func() (interface{}, error) {
				executions.Add(1)
				return nil, nil
			})
		}(key)
	}
	wg.Wait()

	if got := executions.Load(); got != 3 {
		t.Errorf("executions = %d, distinct keys must not collapse", got)
	}
}

func TestGroup_SequentialCallsRunAgain(t *testing.T) {
	group := New()

	count := 0
	for i := 0; i < 3; i++ {
		group.Do("users:1", func() (interface{}, error) {
			count++
			return nil, nil
		})
	}
	if count != 3 {
		t.Errorf("count = %d, completed calls must not suppress later ones", count)
	}
}
