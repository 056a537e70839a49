// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/autograph/internal/tensor"
)

// RawTensor is the dense tensor container used as node values.
type RawTensor = tensor.RawTensor

// Shape represents the dimensions of a tensor. An empty shape is a scalar.
type Shape = tensor.Shape

// DataType represents the element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Float16 DataType = tensor.Float16
)

// Device represents the device a tensor's values were produced on.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Errors returned by tensor constructors and primitives.
var (
	ErrUnsupportedDType = tensor.ErrUnsupportedDType
	ErrShapeMismatch    = tensor.ErrShapeMismatch
)

// NewRaw allocates a zeroed tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Like allocates a zeroed tensor with t's shape, dtype and device.
func Like(t *RawTensor) *RawTensor {
	return tensor.Like(t)
}

// FromFloat32 creates a float32 tensor, copying data.
//
// Example:
//
//	x, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat32(data, shape)
}

// FromFloat64 creates a float64 tensor, copying data.
func FromFloat64(data []float64, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat64(data, shape)
}

// FromFloat16 creates a float16 tensor, rounding each value to half precision.
func FromFloat16(data []float32, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat16(data, shape)
}

// Softmax returns the softmax of x over its last axis.
func Softmax(x *RawTensor) (*RawTensor, error) {
	return tensor.Softmax(x)
}
