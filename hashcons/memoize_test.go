package hashcons

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoizerInvokesInnerAtMostOnce(t *testing.T) {
	a := newTag("memo-a")
	b := newTag("memo-b")

	var calls int64
	m := NewMemoizer(func(r Ref[tagData]) Ref[tagData] {
		atomic.AddInt64(&calls, 1)
		return newTag(r.Deref().Name + "-rewritten")
	})

	first := m.Rewrite(a)
	second := m.Rewrite(a)
	third := m.Rewrite(b)

	assert.True(t, first.PtrEq(second))
	assert.False(t, first.PtrEq(third))
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls), "inner must run exactly once per distinct input handle")
}

func TestMemoizerConcurrentCallsCollapseToOneInvocation(t *testing.T) {
	a := newTag("memo-concurrent")

	var calls int64
	release := make(chan struct{})
	m := NewMemoizer(func(r Ref[tagData]) Ref[tagData] {
		atomic.AddInt64(&calls, 1)
		<-release
		return newTag(r.Deref().Name + "-done")
	})

	const n = 16
	results := make([]Ref[tagData], n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = m.Rewrite(a)
		}(i)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	for i := 1; i < n; i++ {
		assert.True(t, results[0].PtrEq(results[i]))
	}
}
