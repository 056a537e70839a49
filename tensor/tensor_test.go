package tensor_test

import (
	"testing"

	"github.com/born-ml/autograph/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicAPI(t *testing.T) {
	x, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, tensor.CPU, x.Device())
	assert.Equal(t, "float32(2, 2)", x.String())

	s, err := tensor.Softmax(x)
	require.NoError(t, err)
	row := s.AsFloat32()[:2]
	assert.InDelta(t, 1.0, float64(row[0]+row[1]), 1e-6)

	_, err = tensor.NewRaw(tensor.Shape{-1}, tensor.Float64, tensor.CPU)
	assert.Error(t, err)
}
