package deque

import (
	"sync"
	"testing"
)

func TestPushPopLIFO(t *testing.T) {
	d := New(4)
	w, _ := d.Handles()
	w.Push(1)
	w.Push(2)
	w.Push(3)

	v, ok := w.Pop()
	if !ok || v.(int) != 3 {
		t.Fatalf("got %v, %v", v, ok)
	}
	v, ok = w.Pop()
	if !ok || v.(int) != 2 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestPopEmpty(t *testing.T) {
	d := New(4)
	w, _ := d.Handles()
	if _, ok := w.Pop(); ok {
		t.Fatal("expected empty pop to fail")
	}
}

func TestStealFIFO(t *testing.T) {
	d := New(4)
	w, s := d.Handles()
	w.Push("a")
	w.Push("b")
	w.Push("c")

	v, res := s.Steal()
	if res != StealSuccess || v.(string) != "a" {
		t.Fatalf("got %v, %v", v, res)
	}
}

func TestStealEmpty(t *testing.T) {
	d := New(4)
	_, s := d.Handles()
	if _, res := s.Steal(); res != StealEmpty {
		t.Fatalf("got %v", res)
	}
}

func TestGrowBeyondInitialCapacity(t *testing.T) {
	d := New(4)
	w, _ := d.Handles()
	for i := 0; i < 100; i++ {
		w.Push(i)
	}
	count := 0
	for {
		if _, ok := w.Pop(); !ok {
			break
		}
		count++
	}
	if count != 100 {
		t.Fatalf("got %d items, want 100", count)
	}
}

// TestConcurrentStealDrainsExactlyOnce verifies no item is ever observed
// by more than one consumer (owner pop + concurrent steals), a basic
// soundness property of the Chase-Lev algorithm.
func TestConcurrentStealDrainsExactlyOnce(t *testing.T) {
	const n = 10000
	d := New(8)
	w, s := d.Handles()
	for i := 0; i < n; i++ {
		w.Push(i)
	}

	var mu sync.Mutex
	seen := make(map[int]bool, n)
	record := func(v any) {
		mu.Lock()
		defer mu.Unlock()
		i := v.(int)
		if seen[i] {
			t.Errorf("item %d observed twice", i)
		}
		seen[i] = true
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, res := s.Steal()
				switch res {
				case StealSuccess:
					record(v)
				case StealEmpty:
					return
				case StealRetry:
					continue
				}
			}
		}()
	}
	for {
		v, ok := w.Pop()
		if !ok {
			break
		}
		record(v)
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("got %d unique items, want %d", len(seen), n)
	}
}
