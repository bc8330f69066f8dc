package lock_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/shared/lock"
)

func TestKeyedSerializesSameKey(t *testing.T) {
	keyed := lock.NewKeyed()

	const iterations = 500

	counter := 0

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range iterations {
				keyed.Lock("room-1")
				counter++
				keyed.Unlock("room-1")
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 8*iterations, counter)
}

func TestKeyedIndependentKeysDoNotBlock(t *testing.T) {
	keyed := lock.NewKeyed()

	keyed.Lock("room-1")

	done := make(chan struct{})

	go func() {
		keyed.Lock("room-2")
		keyed.Unlock("room-2")
		close(done)
	}()

	<-done

	keyed.Unlock("room-1")
}

func TestUnlockUnheldKeyPanics(t *testing.T) {
	keyed := lock.NewKeyed()

	assert.Panics(t, func() {
		keyed.Unlock("never-locked")
	})
}
