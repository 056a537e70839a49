package tensor

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Device represents the compute device a tensor's values were produced on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// Common errors.
var (
	ErrUnsupportedDType = errors.New("unsupported dtype")
	ErrShapeMismatch    = errors.New("shape mismatch")
)

// RawTensor is the low-level tensor representation: a row-major byte buffer
// interpreted according to its dtype.
type RawTensor struct {
	data   []byte
	shape  Shape
	dtype  DataType
	device Device
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid shape")
	}
	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Like allocates a zeroed tensor with the same shape, dtype and device as t.
// It is how evaluators pre-allocate output buffers for element-wise nodes.
func Like(t *RawTensor) *RawTensor {
	return &RawTensor{
		data:   make([]byte, len(t.data)),
		shape:  t.shape.Clone(),
		dtype:  t.dtype,
		device: t.device,
	}
}

// FromFloat32 creates a float32 tensor, copying data.
func FromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	t, err := newFrom(len(data), shape, Float32)
	if err != nil {
		return nil, err
	}
	copy(t.AsFloat32(), data)
	return t, nil
}

// FromFloat64 creates a float64 tensor, copying data.
func FromFloat64(data []float64, shape Shape) (*RawTensor, error) {
	t, err := newFrom(len(data), shape, Float64)
	if err != nil {
		return nil, err
	}
	copy(t.AsFloat64(), data)
	return t, nil
}

// FromFloat16 creates a float16 tensor, rounding each float32 value to half precision.
func FromFloat16(data []float32, shape Shape) (*RawTensor, error) {
	t, err := newFrom(len(data), shape, Float16)
	if err != nil {
		return nil, err
	}
	dst := t.AsFloat16()
	for i, v := range data {
		dst[i] = float16.Fromfloat32(v)
	}
	return t, nil
}

func newFrom(n int, shape Shape, dtype DataType) (*RawTensor, error) {
	if shape.NumElements() != n {
		return nil, errors.Errorf("shape %s requires %d elements, but got %d", shape, shape.NumElements(), n)
	}
	return NewRaw(shape, dtype, CPU)
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	if len(r.data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	if len(r.data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat16 interprets the data as []float16.Float16.
// Panics if the tensor's dtype is not Float16.
func (r *RawTensor) AsFloat16() []float16.Float16 {
	if r.dtype != Float16 {
		panic(fmt.Sprintf("tensor dtype is %s, not float16", r.dtype))
	}
	if len(r.data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*float16.Float16)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Float64s returns a float64 copy of the values, whatever the dtype.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, r.AsFloat64())
	case Float16:
		for i, v := range r.AsFloat16() {
			out[i] = float64(v.Float32())
		}
	}
	return out
}

// String prints dtype and shape, e.g. "float32(2, 3)".
func (r *RawTensor) String() string {
	return r.dtype.String() + r.shape.String()
}

// CopyInto copies src's values into dst. Shapes and dtypes must match.
func CopyInto(dst, src *RawTensor) error {
	if err := checkSame("CopyInto", dst, src); err != nil {
		return err
	}
	copy(dst.data, src.data)
	return nil
}

// checkSame verifies that every tensor in others has out's shape and dtype.
func checkSame(op string, out *RawTensor, others ...*RawTensor) error {
	if out == nil {
		return errors.Errorf("%s: output tensor is nil", op)
	}
	for _, t := range others {
		if t == nil {
			return errors.Errorf("%s: input tensor is nil", op)
		}
		if !t.shape.Equal(out.shape) {
			return errors.Wrapf(ErrShapeMismatch, "%s: %s vs %s", op, t.shape, out.shape)
		}
		if t.dtype != out.dtype {
			return errors.Wrapf(ErrUnsupportedDType, "%s: mixed dtypes %s and %s", op, t.dtype, out.dtype)
		}
	}
	return nil
}
