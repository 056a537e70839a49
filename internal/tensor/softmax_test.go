package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftmax(t *testing.T) {
	x, err := FromFloat64([]float64{0, 0, 0, 1, 2, 3}, Shape{2, 3})
	require.NoError(t, err)

	s, err := Softmax(x)
	require.NoError(t, err)
	got := s.AsFloat64()

	for _, v := range got[:3] {
		assert.InDelta(t, 1.0/3, v, 1e-15)
	}
	denom := math.Exp(1) + math.Exp(2) + math.Exp(3)
	assert.InDeltaSlice(t, []float64{math.Exp(1) / denom, math.Exp(2) / denom, math.Exp(3) / denom}, got[3:], 1e-15)

	// Input is untouched.
	assert.Equal(t, []float64{0, 0, 0, 1, 2, 3}, x.AsFloat64())
}

func TestSoftmax_NoOverflow(t *testing.T) {
	x, err := FromFloat32([]float32{1e30, 1e30}, Shape{2})
	require.NoError(t, err)
	s, err := Softmax(x)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, s.AsFloat32())
}

func TestSoftmax_Float16(t *testing.T) {
	x, err := FromFloat16([]float32{0, 0, 0, 0}, Shape{4})
	require.NoError(t, err)
	s, err := Softmax(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, s.Float64s())
}

func TestSoftmax_ScalarAndEmpty(t *testing.T) {
	x, err := FromFloat64([]float64{42}, Shape{})
	require.NoError(t, err)
	s, err := Softmax(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, s.AsFloat64())

	empty, err := NewRaw(Shape{3, 0}, Float32, CPU)
	require.NoError(t, err)
	s, err = Softmax(empty)
	require.NoError(t, err)
	assert.Equal(t, 0, s.NumElements())

	_, err = Softmax(nil)
	assert.Error(t, err)
}
