package locks

import (
	"sync"
	"testing"
)

func TestKeyedSerializesSameKey(t *testing.T) {
	k := NewKeyed()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := k.Acquire("counterparty:1")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected 50 increments, got %d", counter)
	}
}

func TestKeyedDeduplicatesKeys(t *testing.T) {
	k := NewKeyed()

	release := k.Acquire("a", "a", "", "b")
	release()

	// A second acquisition of the same keys must not block.
	release = k.Acquire("b", "a")
	release()
}

func TestKeyedOverlappingAcquisitions(t *testing.T) {
	k := NewKeyed()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			release := k.Acquire("a", "b")
			release()
		}()
		go func() {
			defer wg.Done()
			release := k.Acquire("b", "a")
			release()
		}()
	}
	wg.Wait()
}
