// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/autograph/autodiff"
	"github.com/born-ml/autograph/internal/autodiff/ops"
)

// Operator types.
type (
	ReluOp         = ops.ReluOp
	ReluGradientOp = ops.ReluGradientOp
	SigmoidOp      = ops.SigmoidOp
	SoftmaxOp      = ops.SoftmaxOp
)

// Activation operators.
var (
	Relu         = ops.Relu
	ReluGradient = ops.ReluGradient
	Sigmoid      = ops.Sigmoid
	Softmax      = ops.Softmax
)

// Lookup returns the operator registered under name, e.g. "Sigmoid".
func Lookup(name string) (autodiff.Op, bool) {
	return ops.Lookup(name)
}

// Names returns the registered operator names, sorted.
func Names() []string {
	return ops.Names()
}

// Register adds a custom activation operator. Names must be unique.
func Register(op autodiff.Op) error {
	return ops.Register(op)
}
