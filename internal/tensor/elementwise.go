package tensor

import (
	"math"

	"github.com/pkg/errors"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// Element-wise primitives. Each one writes into a caller-allocated out tensor
// that must have the inputs' shape and dtype; out may alias an input.
//
// Float16 values are widened to float32 for the arithmetic and rounded back.

type unaryFn func(float64) float64

type binaryFn func(a, b float64) float64

func mapUnary[T constraints.Float](in, out []T, f unaryFn) {
	for i, v := range in {
		out[i] = T(f(float64(v)))
	}
}

func mapBinary[T constraints.Float](a, b, out []T, f binaryFn) {
	for i := range a {
		out[i] = T(f(float64(a[i]), float64(b[i])))
	}
}

func applyUnary(op string, x, out *RawTensor, f unaryFn) error {
	if err := checkSame(op, out, x); err != nil {
		return err
	}
	switch x.dtype {
	case Float32:
		mapUnary(x.AsFloat32(), out.AsFloat32(), f)
	case Float64:
		mapUnary(x.AsFloat64(), out.AsFloat64(), f)
	case Float16:
		in, dst := x.AsFloat16(), out.AsFloat16()
		for i, v := range in {
			dst[i] = float16.Fromfloat32(float32(f(float64(v.Float32()))))
		}
	default:
		return errors.Wrapf(ErrUnsupportedDType, "%s: %s", op, x.dtype)
	}
	return nil
}

func applyBinary(op string, a, b, out *RawTensor, f binaryFn) error {
	if err := checkSame(op, out, a, b); err != nil {
		return err
	}
	switch a.dtype {
	case Float32:
		mapBinary(a.AsFloat32(), b.AsFloat32(), out.AsFloat32(), f)
	case Float64:
		mapBinary(a.AsFloat64(), b.AsFloat64(), out.AsFloat64(), f)
	case Float16:
		av, bv, dst := a.AsFloat16(), b.AsFloat16(), out.AsFloat16()
		for i := range av {
			dst[i] = float16.Fromfloat32(float32(f(float64(av[i].Float32()), float64(bv[i].Float32()))))
		}
	default:
		return errors.Wrapf(ErrUnsupportedDType, "%s: %s", op, a.dtype)
	}
	return nil
}

// Maximum computes out = max(x, c) element-wise. NaN inputs stay NaN.
func Maximum(x *RawTensor, c float64, out *RawTensor) error {
	return applyUnary("Maximum", x, out, func(v float64) float64 {
		if v > c || math.IsNaN(v) {
			return v
		}
		return c
	})
}

// ReluMask computes out = sign(max(x, 0)) * grad in a single pass, so out may
// alias either input. A NaN in x yields NaN.
func ReluMask(x, grad, out *RawTensor) error {
	return applyBinary("ReluMask", x, grad, out, func(v, g float64) float64 {
		switch {
		case v > 0:
			return g
		case math.IsNaN(v):
			return v
		default:
			return 0
		}
	})
}

// Tanh computes out = tanh(x).
func Tanh(x, out *RawTensor) error {
	return applyUnary("Tanh", x, out, math.Tanh)
}

// AffineScalar computes out = scale*x + shift.
func AffineScalar(x *RawTensor, scale, shift float64, out *RawTensor) error {
	return applyUnary("AffineScalar", x, out, func(v float64) float64 {
		return scale*v + shift
	})
}

// Neg computes out = -x.
func Neg(x, out *RawTensor) error {
	return applyUnary("Neg", x, out, func(v float64) float64 { return -v })
}

// Mul computes out = a * b element-wise.
func Mul(a, b, out *RawTensor) error {
	return applyBinary("Mul", a, b, out, func(x, y float64) float64 { return x * y })
}

// Sub computes out = a - b element-wise.
func Sub(a, b, out *RawTensor) error {
	return applyBinary("Sub", a, b, out, func(x, y float64) float64 { return x - y })
}
