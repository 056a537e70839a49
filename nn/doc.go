// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the differentiable activation operators.
//
// # Overview
//
// This package contains:
//   - Relu: max(x, 0)
//   - ReluGradient: the node Relu's gradient builds, grad where x > 0
//   - Sigmoid: 1 / (1 + exp(-x)), computed without overflow
//   - Softmax: normalized exponentials over the last axis
//
// Each operator is a stateless singleton. Apply inserts a node into the
// graph; Compute, Gradient and InferShape implement autodiff.Op.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/autograph/autodiff"
//	    "github.com/born-ml/autograph/backend"
//	    "github.com/born-ml/autograph/nn"
//	    "github.com/born-ml/autograph/tensor"
//	)
//
//	func main() {
//	    x := autodiff.Placeholder("x", tensor.Shape{2, 3}, tensor.Float32)
//	    y := nn.Sigmoid.Apply(x)
//
//	    in, _ := tensor.FromFloat32([]float32{-1, 0, 1, 2, 3, 4}, tensor.Shape{2, 3})
//	    out := tensor.Like(in)
//	    if err := nn.Sigmoid.Compute(y, []*tensor.RawTensor{in}, out, backend.Select(backend.Primary)); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Gradients
//
// Gradient returns new nodes rather than values. Softmax and ReluGradient
// have no gradient and return an error for which autodiff.IsNotImplemented
// is true; pair Softmax with a cross-entropy loss instead.
package nn
