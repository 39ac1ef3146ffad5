package keylock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameKey(t *testing.T) {
	t.Parallel()

	m := New()

	const (
		goroutines = 100
		increments = 100
	)

	// counter is intentionally unguarded: mutual exclusion must come from
	// the manager alone, so the race detector flags any gap.
	var (
		counter int
		wg      sync.WaitGroup
	)

	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()

			for j := 0; j < increments; j++ {
				m.Lock(1)
				counter++
				m.Unlock(1)
			}
		}()
	}

	wg.Wait()

	require.Equal(t, goroutines*increments, counter)
}

func TestLockDistinctKeysDoNotContend(t *testing.T) {
	t.Parallel()

	m := New()

	m.Lock(1)
	defer m.Unlock(1)

	acquired := make(chan struct{})

	go func() {
		m.Lock(2)
		defer m.Unlock(2)
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("locking key 2 blocked while key 1 was held")
	}
}

func TestConcurrentFirstReferenceCreatesOneHandle(t *testing.T) {
	t.Parallel()

	m := New()

	const goroutines = 100

	var (
		start   = make(chan struct{})
		handles = make(chan *sync.Mutex, goroutines)
		wg      sync.WaitGroup
	)

	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()

			<-start
			handles <- m.handle(42)
		}()
	}

	close(start)
	wg.Wait()
	close(handles)

	first := <-handles
	for h := range handles {
		require.Same(t, first, h)
	}
}
