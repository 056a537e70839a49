package ops_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/born-ml/autograph/internal/autodiff/graphtest"
	"github.com/born-ml/autograph/internal/autodiff/ops"
	"github.com/born-ml/autograph/internal/backend"
	"github.com/born-ml/autograph/internal/backend/cpu"
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelu_Name(t *testing.T) {
	a := autodiff.Placeholder("A", tensor.Shape{5}, tensor.Float32)
	b := autodiff.Placeholder("B", tensor.Shape{5}, tensor.Float32)

	assert.Equal(t, "Relu(A)", ops.Relu.Apply(a).Name())
	assert.Equal(t, "ReluGradient(A)", ops.ReluGradient.Apply(a, b).Name())
}

// TestRelu_Compute checks the documented scenario on the primary path.
func TestRelu_Compute(t *testing.T) {
	x := graphtest.Float32([]float32{-2, -1, 0, 1, 2}, 5)
	out := tensor.Like(x)

	n := ops.Relu.Apply(autodiff.Placeholder("x", x.Shape(), x.DType()))
	require.NoError(t, ops.Relu.Compute(n, []*tensor.RawTensor{x}, out, backend.PrimarySelector()))
	assert.Equal(t, []float32{0, 0, 0, 1, 2}, out.AsFloat32())
}

func TestRelu_ComputeMatchesMaximum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]float64, 3*17)
	for i := range data {
		data[i] = rng.NormFloat64() * 10
	}
	x := graphtest.Float64(data, 3, 17)
	out := tensor.Like(x)

	require.NoError(t, ops.Relu.Compute(nil, []*tensor.RawTensor{x}, out, backend.PrimarySelector()))
	for i, v := range out.AsFloat64() {
		want := data[i]
		if want < 0 {
			want = 0
		}
		require.Equalf(t, want, v, "element %d", i)
	}
}

func TestRelu_ComputeFloat16(t *testing.T) {
	x, err := tensor.FromFloat16([]float32{-1.5, 0.5, 2}, tensor.Shape{3})
	require.NoError(t, err)
	out := tensor.Like(x)

	require.NoError(t, ops.Relu.Compute(nil, []*tensor.RawTensor{x}, out, backend.PrimarySelector()))
	assert.Equal(t, []float64{0, 0.5, 2}, out.Float64s())
}

func TestRelu_ComputeArity(t *testing.T) {
	x := graphtest.Float32([]float32{1}, 1)
	err := ops.Relu.Compute(nil, []*tensor.RawTensor{x, x}, tensor.Like(x), backend.PrimarySelector())
	require.ErrorIs(t, err, autodiff.ErrArity)
	assert.False(t, autodiff.IsNotImplemented(err))
}

func TestRelu_ComputeOutputShapeMismatch(t *testing.T) {
	x := graphtest.Float32([]float32{1, 2}, 2)
	out := graphtest.Float32([]float32{0, 0, 0}, 3)
	err := ops.Relu.Compute(nil, []*tensor.RawTensor{x}, out, backend.PrimarySelector())
	assert.ErrorIs(t, err, autodiff.ErrShapeMismatch)
}

func TestRelu_Accelerator(t *testing.T) {
	kernels := graphtest.NewRecordingKernels(cpu.New(2, 1))
	x := graphtest.Float32([]float32{-2, -1, 0, 1, 2}, 5)
	out := tensor.Like(x)

	require.NoError(t, ops.Relu.Compute(nil, []*tensor.RawTensor{x}, out, backend.WithKernels(kernels)))
	assert.Equal(t, []float32{0, 0, 0, 1, 2}, out.AsFloat32())
	assert.Equal(t, []string{"Relu"}, kernels.Calls())
}

func TestRelu_AcceleratorMissing(t *testing.T) {
	x := graphtest.Float32([]float32{1}, 1)
	sel := backend.Selector{Kind: backend.Accelerator}
	err := ops.Relu.Compute(nil, []*tensor.RawTensor{x}, tensor.Like(x), sel)
	assert.ErrorIs(t, err, backend.ErrNoAccelerator)
}

// TestRelu_Gradient checks the gradient is a ReluGradient node over (x, grad).
func TestRelu_Gradient(t *testing.T) {
	x := autodiff.Placeholder("x", tensor.Shape{5}, tensor.Float32)
	g := autodiff.Placeholder("g", tensor.Shape{5}, tensor.Float32)
	y := ops.Relu.Apply(x)

	grads, err := ops.Relu.Gradient(y, g)
	require.NoError(t, err)
	require.Len(t, grads, 1)

	gradNode := grads[0]
	assert.Equal(t, ops.ReluGradient, gradNode.Op())
	assert.Equal(t, "ReluGradient(x)", gradNode.Name())
	require.Equal(t, 2, gradNode.NumInputs())
	assert.Same(t, x, gradNode.Input(0))
	assert.Same(t, g, gradNode.Input(1))

	got := graphtest.MustEval(t, gradNode, graphtest.Feeds{
		x: graphtest.Float32([]float32{-2, -1, 0, 1, 2}, 5),
		g: graphtest.Float32([]float32{1, 1, 1, 1, 1}, 5),
	})
	assert.Equal(t, []float32{0, 0, 0, 1, 1}, got.AsFloat32())
}

func TestRelu_InferShape(t *testing.T) {
	shape, err := ops.Relu.InferShape(nil, []tensor.Shape{{2, 3, 4}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3, 4}, shape)

	_, err = ops.Relu.InferShape(nil, nil)
	assert.ErrorIs(t, err, autodiff.ErrArity)
	_, err = ops.Relu.InferShape(nil, []tensor.Shape{{1}, {1}})
	assert.ErrorIs(t, err, autodiff.ErrArity)
}

func TestReluGradient_Compute(t *testing.T) {
	x := graphtest.Float32([]float32{-2, -1, 0, 1, 2}, 5)
	g := graphtest.Float32([]float32{1, 1, 1, 1, 1}, 5)
	out := tensor.Like(x)

	require.NoError(t, ops.ReluGradient.Compute(nil, []*tensor.RawTensor{x, g}, out, backend.PrimarySelector()))
	assert.Equal(t, []float32{0, 0, 0, 1, 1}, out.AsFloat32())
}

// TestReluGradient_MatchesWhere checks sign(max(x,0))*g == where(x > 0, g, 0)
// on both paths.
func TestReluGradient_MatchesWhere(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	n := 4 * 33
	xs, gs := make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i] = rng.NormFloat64()
		gs[i] = rng.NormFloat64() * 3
	}
	xs[0] = 0 // The boundary belongs to the zero side.
	x, g := graphtest.Float64(xs, 4, 33), graphtest.Float64(gs, 4, 33)

	for _, sel := range []backend.Selector{backend.PrimarySelector(), backend.WithKernels(cpu.New(3, 8))} {
		t.Run(sel.String(), func(t *testing.T) {
			out := tensor.Like(x)
			require.NoError(t, ops.ReluGradient.Compute(nil, []*tensor.RawTensor{x, g}, out, sel))
			for i, v := range out.AsFloat64() {
				want := 0.0
				if xs[i] > 0 {
					want = gs[i]
				}
				require.Equalf(t, want, v, "element %d", i)
			}
		})
	}
}

func TestReluGradient_ComputeErrors(t *testing.T) {
	x := graphtest.Float32([]float32{1, 2, 3}, 3)
	g := graphtest.Float32([]float32{1, 2, 3, 4}, 4)

	err := ops.ReluGradient.Compute(nil, []*tensor.RawTensor{x}, tensor.Like(x), backend.PrimarySelector())
	assert.ErrorIs(t, err, autodiff.ErrArity)

	err = ops.ReluGradient.Compute(nil, []*tensor.RawTensor{x, g}, tensor.Like(x), backend.PrimarySelector())
	assert.ErrorIs(t, err, autodiff.ErrShapeMismatch)
}

func TestReluGradient_Accelerator(t *testing.T) {
	kernels := graphtest.NewRecordingKernels(cpu.New(1, 1))
	x := graphtest.Float32([]float32{-2, -1, 0, 1, 2}, 5)
	g := graphtest.Float32([]float32{3, 3, 3, 3, 3}, 5)
	out := tensor.Like(x)

	require.NoError(t, ops.ReluGradient.Compute(nil, []*tensor.RawTensor{x, g}, out, backend.WithKernels(kernels)))
	assert.Equal(t, []float32{0, 0, 0, 3, 3}, out.AsFloat32())
	assert.Equal(t, []string{"ReluGradient"}, kernels.Calls())
}

func TestReluGradient_GradientNotImplemented(t *testing.T) {
	x := autodiff.Placeholder("x", tensor.Shape{2}, tensor.Float32)
	g := autodiff.Placeholder("g", tensor.Shape{2}, tensor.Float32)
	n := ops.ReluGradient.Apply(x, g)

	grads, err := ops.ReluGradient.Gradient(n, g)
	assert.Nil(t, grads)
	require.ErrorIs(t, err, autodiff.ErrNotImplemented)
	assert.True(t, autodiff.IsNotImplemented(err))
}

func TestReluGradient_InferShape(t *testing.T) {
	shape, err := ops.ReluGradient.InferShape(nil, []tensor.Shape{{4, 2}, {4, 2}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 2}, shape)

	_, err = ops.ReluGradient.InferShape(nil, []tensor.Shape{{4, 2}, {2, 4}})
	assert.ErrorIs(t, err, autodiff.ErrShapeMismatch)

	_, err = ops.ReluGradient.InferShape(nil, []tensor.Shape{{4, 2}})
	assert.ErrorIs(t, err, autodiff.ErrArity)
}

// TestReluGradient_OutputAliasesGrad writes the result into the gradient
// buffer itself; both paths must read grad before overwriting it.
func TestReluGradient_OutputAliasesGrad(t *testing.T) {
	for _, sel := range []backend.Selector{backend.PrimarySelector(), backend.WithKernels(cpu.New(1, 1))} {
		t.Run(sel.String(), func(t *testing.T) {
			x := graphtest.Float32([]float32{-2, -1, 0, 1, 2}, 5)
			g := graphtest.Float32([]float32{5, 5, 5, 5, 5}, 5)
			require.NoError(t, ops.ReluGradient.Compute(nil, []*tensor.RawTensor{x, g}, g, sel))
			assert.Equal(t, []float32{0, 0, 0, 5, 5}, g.AsFloat32())
		})
	}
}

func TestRelu_NaN(t *testing.T) {
	nan := math.NaN()
	for _, sel := range []backend.Selector{backend.PrimarySelector(), backend.WithKernels(cpu.New(1, 1))} {
		t.Run(sel.String(), func(t *testing.T) {
			x := graphtest.Float64([]float64{nan, -1, 1}, 3)
			out := tensor.Like(x)
			require.NoError(t, ops.Relu.Compute(nil, []*tensor.RawTensor{x}, out, sel))
			got := out.AsFloat64()
			assert.True(t, math.IsNaN(got[0]))
			assert.Equal(t, []float64{0, 1}, got[1:])

			g := graphtest.Float64([]float64{2, 2, 2}, 3)
			require.NoError(t, ops.ReluGradient.Compute(nil, []*tensor.RawTensor{x, g}, out, sel))
			got = out.AsFloat64()
			assert.True(t, math.IsNaN(got[0]))
			assert.Equal(t, []float64{0, 2}, got[1:])
		})
	}
}
