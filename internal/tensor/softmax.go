package tensor

import (
	"math"

	"github.com/pkg/errors"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// Softmax returns a new tensor with the softmax of x taken over its last axis.
//
// Each row is shifted by its maximum before exponentiation, so large logits do
// not overflow. A scalar is treated as a single row of length 1.
func Softmax(x *RawTensor) (*RawTensor, error) {
	if x == nil {
		return nil, errors.New("Softmax: input tensor is nil")
	}
	result := Like(x)
	rowLen := x.shape.LastDim()
	if rowLen == 0 || x.NumElements() == 0 {
		return result, nil
	}

	switch x.dtype {
	case Float32:
		softmaxRows(x.AsFloat32(), result.AsFloat32(), rowLen)
	case Float64:
		softmaxRows(x.AsFloat64(), result.AsFloat64(), rowLen)
	case Float16:
		in := x.AsFloat16()
		wide := make([]float32, len(in))
		for i, v := range in {
			wide[i] = v.Float32()
		}
		softmaxRows(wide, wide, rowLen)
		dst := result.AsFloat16()
		for i, v := range wide {
			dst[i] = float16.Fromfloat32(v)
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedDType, "Softmax: %s", x.dtype)
	}
	return result, nil
}

func softmaxRows[T constraints.Float](in, out []T, rowLen int) {
	for start := 0; start < len(in); start += rowLen {
		SoftmaxRow(in[start:start+rowLen], out[start:start+rowLen])
	}
}

// SoftmaxRow writes the max-shifted softmax of one row into out.
// Accumulation is done in float64.
func SoftmaxRow[T constraints.Float](in, out []T) {
	maxVal := math.Inf(-1)
	for _, v := range in {
		if float64(v) > maxVal {
			maxVal = float64(v)
		}
	}

	var sum float64
	for i, v := range in {
		e := math.Exp(float64(v) - maxVal)
		out[i] = T(e)
		sum += e
	}

	for i := range out {
		out[i] = T(float64(out[i]) / sum)
	}
}
