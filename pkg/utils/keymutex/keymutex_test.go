package keymutex

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMutex_SameKeyIsExclusive(t *testing.T) {
	m := New[string]()

	var inside int32
	var maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock("acct")
			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			m.Unlock("acct")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, m.Len(), "空闲后互斥量应被回收")
}

func TestMutex_DifferentKeysDoNotBlock(t *testing.T) {
	m := New[int]()
	m.Lock(1)
	defer m.Unlock(1)

	done := make(chan struct{})
	go func() {
		m.Lock(2)
		m.Unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("不同键的加锁被阻塞")
	}
	assert.Equal(t, 1, m.Len())
}

func TestMutex_UnlockWithoutLock_Panics(t *testing.T) {
	m := New[string]()
	assert.Panics(t, func() { m.Unlock("missing") })
}
