// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense tensor values that flow through an
// autograph computation graph.
//
// # Overview
//
// A RawTensor is a row-major buffer with a Shape and a DataType (float32,
// float64 or float16). Operators never allocate their outputs: the evaluator
// allocates a buffer with Like or NewRaw and the operator writes into it.
//
// # Basic Usage
//
//	import "github.com/born-ml/autograph/tensor"
//
//	func main() {
//	    x, err := tensor.FromFloat32([]float32{-1, 0, 2}, tensor.Shape{3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    out := tensor.Like(x) // zeroed, same shape and dtype
//	    _ = out
//	}
//
// # Thread Safety
//
// Tensors carry no locks. Concurrent reads are safe; a tensor being written
// by a Compute call must not be read until the call returns.
package tensor
