package autodiff_test

import (
	"testing"

	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/born-ml/autograph/internal/autodiff/graphtest"
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotImplementedf(t *testing.T) {
	err := autodiff.NotImplementedf("gradient of %s", "Foo")
	assert.True(t, autodiff.IsNotImplemented(err))
	assert.Equal(t, "gradient of Foo: not implemented", err.Error())

	wrapped := errors.WithMessage(err, "building graph")
	assert.True(t, autodiff.IsNotImplemented(wrapped))
	assert.False(t, autodiff.IsNotImplemented(autodiff.CheckArity("Foo", 1, 2)))
	assert.False(t, autodiff.IsNotImplemented(nil))
}

func TestCheckArity(t *testing.T) {
	require.NoError(t, autodiff.CheckArity("Foo", 2, 2))
	err := autodiff.CheckArity("Foo", 3, 2)
	require.ErrorIs(t, err, autodiff.ErrArity)
	assert.Contains(t, err.Error(), "Foo: expected 2 input(s), got 3")
}

func TestCheckShapesEqual(t *testing.T) {
	require.NoError(t, autodiff.CheckShapesEqual("Foo"))
	require.NoError(t, autodiff.CheckShapesEqual("Foo", tensor.Shape{2, 3}, tensor.Shape{2, 3}))
	assert.ErrorIs(t, autodiff.CheckShapesEqual("Foo", tensor.Shape{2, 3}, tensor.Shape{3, 2}), autodiff.ErrShapeMismatch)
	assert.ErrorIs(t, autodiff.CheckShapesEqual("Foo", tensor.Shape{2, 3}, tensor.Shape{2, 3}, tensor.Shape{2}), tensor.ErrShapeMismatch)
}

func TestCheckCompute(t *testing.T) {
	x := graphtest.Float32([]float32{1, 2}, 2)
	y := graphtest.Float32([]float32{1, 2, 3}, 3)

	require.NoError(t, autodiff.CheckCompute("Foo", []*tensor.RawTensor{x}, tensor.Like(x), 1))
	assert.ErrorIs(t, autodiff.CheckCompute("Foo", nil, tensor.Like(x), 1), autodiff.ErrArity)
	assert.ErrorIs(t, autodiff.CheckCompute("Foo", []*tensor.RawTensor{x}, y, 1), autodiff.ErrShapeMismatch)
	assert.Error(t, autodiff.CheckCompute("Foo", []*tensor.RawTensor{x}, nil, 1))
	assert.Error(t, autodiff.CheckCompute("Foo", []*tensor.RawTensor{nil}, x, 1))
}
