package ops

import (
	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/born-ml/autograph/internal/backend"
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/pkg/errors"
)

// SoftmaxOp normalizes the last axis of its input:
//
//	softmax(x)_i = exp(x_i - max(x)) / Σ_j exp(x_j - max(x))
//
// It has no gradient of its own. Differentiate through a cross-entropy loss
// operator that consumes the logits instead.
type SoftmaxOp struct{}

// Apply returns a node computing Softmax(x), named "SoftmaxOp(<x>)".
func (SoftmaxOp) Apply(x *autodiff.Node) *autodiff.Node {
	return autodiff.NewNode(Softmax, "SoftmaxOp("+x.Name()+")", x)
}

// Name returns "Softmax".
func (SoftmaxOp) Name() string { return "Softmax" }

// Compute writes the row-wise softmax of x into out.
func (SoftmaxOp) Compute(_ *autodiff.Node, inputs []*tensor.RawTensor, out *tensor.RawTensor, sel backend.Selector) error {
	if err := autodiff.CheckCompute("Softmax", inputs, out, 1); err != nil {
		return err
	}
	if sel.Accelerated() {
		k, err := sel.AcceleratorKernels()
		if err != nil {
			return errors.WithMessage(err, "Softmax")
		}
		return k.Softmax(inputs[0], out)
	}
	s, err := tensor.Softmax(inputs[0])
	if err != nil {
		return err
	}
	return tensor.CopyInto(out, s)
}

// Gradient is not supported; use a cross-entropy loss operator.
func (SoftmaxOp) Gradient(_ *autodiff.Node, _ *autodiff.Node) ([]*autodiff.Node, error) {
	return nil, autodiff.NotImplementedf("gradient of Softmax, please use a cross-entropy operator")
}

// InferShape returns the input shape.
func (SoftmaxOp) InferShape(_ *autodiff.Node, inputShapes []tensor.Shape) (tensor.Shape, error) {
	if err := autodiff.CheckArity("Softmax", len(inputShapes), 1); err != nil {
		return nil, err
	}
	return inputShapes[0].Clone(), nil
}
