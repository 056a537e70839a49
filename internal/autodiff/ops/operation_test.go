package ops_test

import (
	"sync"
	"testing"

	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/born-ml/autograph/internal/autodiff/ops"
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"Relu", "ReluGradient", "Sigmoid", "Softmax"}, ops.Names())

	for _, name := range ops.Names() {
		op, ok := ops.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, op.Name())
	}

	_, ok := ops.Lookup("Gelu")
	assert.False(t, ok)
}

func TestRegister_Errors(t *testing.T) {
	assert.Error(t, ops.Register(nil))
	assert.Error(t, ops.Register(ops.Relu))
}

// TestApply_Concurrent builds nodes from many goroutines and checks that
// every node gets a distinct ID.
func TestApply_Concurrent(t *testing.T) {
	x := autodiff.Placeholder("x", tensor.Shape{4}, tensor.Float32)
	g := autodiff.Placeholder("g", tensor.Shape{4}, tensor.Float32)

	const goroutines, perGoroutine = 8, 50
	ids := make(chan int64, goroutines*perGoroutine*4)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				for _, n := range []*autodiff.Node{
					ops.Relu.Apply(x),
					ops.ReluGradient.Apply(x, g),
					ops.Sigmoid.Apply(x),
					ops.Softmax.Apply(x),
				} {
					ids <- n.ID()
				}
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate node id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines*perGoroutine*4)
}
