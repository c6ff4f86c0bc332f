package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int64
	var shared atomic.Int64

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			value, err, wasShared := g.Do("bundle", func() (any, error) {
				calls.Add(1)
				time.Sleep(5 * time.Millisecond)
				return "payload", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if value.(string) != "payload" {
				t.Errorf("unexpected value: %v", value)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
	if got := shared.Load(); got != workers-1 {
		t.Fatalf("expected %d shared results, got %d", workers-1, got)
	}
}

func TestSingleFlightDistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight

	a, _, _ := g.Do("a", func() (any, error) { return 1, nil })
	b, _, _ := g.Do("b", func() (any, error) { return 2, nil })

	if a.(int) != 1 || b.(int) != 2 {
		t.Fatalf("expected independent results, got %v and %v", a, b)
	}
}
