package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	kl := newKeyLock()
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := kl.Lock("req-1")
			v := counter
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, kl.size())
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	kl := newKeyLock()
	unlockA := kl.Lock("a")
	done := make(chan struct{})

	go func() {
		unlockB := kl.Lock("b")
		unlockB()
		close(done)
	}()

	<-done
	assert.Equal(t, 1, kl.size())
	unlockA()
	assert.Equal(t, 0, kl.size())
}
