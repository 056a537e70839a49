// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides the symbolic computation graph that autograph
// operators plug into.
//
// A Node is one operator application. Operators implement Op: they compute a
// forward value into a caller-allocated buffer, build their gradient as new
// nodes, and infer output shapes without executing. Evaluation order and
// value caching are left to the caller.
//
// Example:
//
//	import (
//	    "github.com/born-ml/autograph/autodiff"
//	    "github.com/born-ml/autograph/nn"
//	    "github.com/born-ml/autograph/tensor"
//	)
//
//	func main() {
//	    x := autodiff.Placeholder("x", tensor.Shape{4}, tensor.Float32)
//	    g := autodiff.Placeholder("g", tensor.Shape{4}, tensor.Float32)
//	    y := nn.Relu.Apply(x)                 // "Relu(x)"
//	    grads, err := y.Op().Gradient(y, g)   // [ReluGradient(x)]
//	}
package autodiff

import (
	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/born-ml/autograph/tensor"
)

// Node is one operator application in the computation graph.
type Node = autodiff.Node

// Op is the contract every operator implements.
type Op = autodiff.Op

// Error classes returned by operators; test with errors.Is.
var (
	ErrNotImplemented = autodiff.ErrNotImplemented
	ErrArity          = autodiff.ErrArity
	ErrShapeMismatch  = autodiff.ErrShapeMismatch
)

// IsNotImplemented reports whether err marks a documented capability gap.
func IsNotImplemented(err error) bool {
	return autodiff.IsNotImplemented(err)
}

// NewNode creates a node applying op to inputs. Operator Apply methods call it.
func NewNode(op Op, name string, inputs ...*Node) *Node {
	return autodiff.NewNode(op, name, inputs...)
}

// Placeholder creates a leaf node whose value is fed by the evaluator.
func Placeholder(name string, shape tensor.Shape, dtype tensor.DataType) *Node {
	return autodiff.Placeholder(name, shape, dtype)
}

// Mul returns a node computing a * b element-wise.
func Mul(a, b *Node) *Node { return autodiff.Mul(a, b) }

// Sub returns a node computing a - b element-wise.
func Sub(a, b *Node) *Node { return autodiff.Sub(a, b) }

// Neg returns a node computing -a.
func Neg(a *Node) *Node { return autodiff.Neg(a) }
