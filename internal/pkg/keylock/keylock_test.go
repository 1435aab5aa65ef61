package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocker_SerializesSameKey(t *testing.T) {
	l := New()
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("emp-1:2025")
			defer unlock()
			v := counter
			v++
			counter = v
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, l.Len())
}

func TestLocker_MultipleKeysAnyOrder(t *testing.T) {
	l := New()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := l.Lock("a", "b", "c")
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := l.Lock("c", "b", "a", "a")
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, l.Len())
}

func TestLocker_UnlockIsIdempotent(t *testing.T) {
	l := New()
	unlock := l.Lock("k")
	unlock()
	unlock()

	unlock = l.Lock("k")
	defer unlock()
	assert.Equal(t, 1, l.Len())
}
