package cpu_test

import (
	"testing"

	"github.com/born-ml/autograph/autodiff"
	"github.com/born-ml/autograph/backend"
	"github.com/born-ml/autograph/backend/cpu"
	"github.com/born-ml/autograph/nn"
	"github.com/born-ml/autograph/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftmaxThroughSelector(t *testing.T) {
	k := cpu.NewDefault()
	defer k.Release()

	x, err := tensor.FromFloat64([]float64{0, 0, 0, 0}, tensor.Shape{2, 2})
	require.NoError(t, err)
	out := tensor.Like(x)
	node := nn.Softmax.Apply(autodiff.Placeholder("x", x.Shape(), x.DType()))

	require.NoError(t, nn.Softmax.Compute(node, []*tensor.RawTensor{x}, out, backend.WithKernels(k)))
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, out.AsFloat64())
}
