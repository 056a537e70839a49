package autodiff

import (
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/pkg/errors"
)

// Error classes returned by operators. Wrap them with errors.Wrapf to add
// context; test for them with errors.Is.
var (
	// ErrNotImplemented marks a documented capability gap, e.g. asking for the
	// gradient of an operator that has none. Callers are expected to route
	// around it, unlike the classes below which signal caller bugs.
	ErrNotImplemented = errors.New("not implemented")

	// ErrArity is returned when the number of inputs or input shapes is wrong.
	ErrArity = errors.New("wrong number of inputs")

	// ErrShapeMismatch is returned when shapes that must agree do not.
	ErrShapeMismatch = tensor.ErrShapeMismatch
)

// IsNotImplemented reports whether err is (or wraps) ErrNotImplemented.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// NotImplementedf returns ErrNotImplemented wrapped with a formatted message.
func NotImplementedf(format string, args ...any) error {
	return errors.Wrapf(ErrNotImplemented, format, args...)
}

// CheckArity fails with ErrArity unless got == want.
func CheckArity(op string, got, want int) error {
	if got != want {
		return errors.Wrapf(ErrArity, "%s: expected %d input(s), got %d", op, want, got)
	}
	return nil
}

// CheckShapesEqual fails with ErrShapeMismatch unless all shapes are equal.
func CheckShapesEqual(op string, shapes ...tensor.Shape) error {
	for i := 1; i < len(shapes); i++ {
		if !shapes[i].Equal(shapes[0]) {
			return errors.Wrapf(ErrShapeMismatch, "%s: input %d has shape %s, input 0 has shape %s",
				op, i, shapes[i], shapes[0])
		}
	}
	return nil
}

// CheckCompute validates a Compute call: exactly want non-nil inputs and an
// output buffer shaped like the first input.
func CheckCompute(op string, inputs []*tensor.RawTensor, out *tensor.RawTensor, want int) error {
	if err := CheckArity(op, len(inputs), want); err != nil {
		return err
	}
	if out == nil {
		return errors.Errorf("%s: output buffer is nil", op)
	}
	for i, in := range inputs {
		if in == nil {
			return errors.Errorf("%s: input %d is nil", op, i)
		}
	}
	if want > 0 && !out.Shape().Equal(inputs[0].Shape()) {
		return errors.Wrapf(ErrShapeMismatch, "%s: output buffer has shape %s, input has shape %s",
			op, out.Shape(), inputs[0].Shape())
	}
	return nil
}

// InputShapes returns the shapes of the given values.
func InputShapes(values []*tensor.RawTensor) []tensor.Shape {
	shapes := make([]tensor.Shape, len(values))
	for i, v := range values {
		shapes[i] = v.Shape()
	}
	return shapes
}
