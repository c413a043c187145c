package hub

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnRegistry_BindAndDrop(t *testing.T) {
	reg := NewConnRegistry()
	reg.Bind("c1", "ABC123")

	code, ok := reg.Drop("c1")
	require.True(t, ok)
	assert.Equal(t, "ABC123", code)
}

func TestConnRegistry_DropIsIdempotent(t *testing.T) {
	reg := NewConnRegistry()
	reg.Bind("c1", "ABC123")

	_, ok := reg.Drop("c1")
	require.True(t, ok)

	_, ok = reg.Drop("c1")
	assert.False(t, ok, "second drop must not yield the code again")
}

func TestConnRegistry_ConcurrentDropYieldsCodeOnce(t *testing.T) {
	reg := NewConnRegistry()
	reg.Bind("c1", "ABC123")

	var wg sync.WaitGroup
	hits := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if code, ok := reg.Drop("c1"); ok {
				hits <- code
			}
		}()
	}
	wg.Wait()
	close(hits)

	assert.Len(t, drain(hits), 1)
}

func drain(ch chan string) []string {
	var out []string
	for s := range ch {
		out = append(out, s)
	}
	return out
}
