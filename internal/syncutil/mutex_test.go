package syncutil

import (
	"sync"
	"testing"
)

func TestMutexSerialisesWriters(t *testing.T) {
	var mu Mutex
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
}

func TestRWMutexAllowsConcurrentReaders(t *testing.T) {
	var mu RWMutex
	mu.RLock()
	mu.RLock()
	mu.RUnlock()
	mu.RUnlock()

	mu.Lock()
	mu.Unlock()
}
