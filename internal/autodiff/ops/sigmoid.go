package ops

import (
	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/born-ml/autograph/internal/backend"
	"github.com/born-ml/autograph/internal/tensor"
)

// SigmoidOp is the logistic function σ(x) = 1 / (1 + exp(-x)).
//
// The naive form overflows exp(-x) for large negative x. Since
// tanh(x) = 2σ(2x) - 1, it is computed instead as
//
//	σ(x) = 0.5 + 0.5*tanh(0.5*x)
//
// There is no accelerator kernel for it.
type SigmoidOp struct{}

// Apply returns a node computing Sigmoid(x), named "Sigmoid(<x>)".
func (SigmoidOp) Apply(x *autodiff.Node) *autodiff.Node {
	return autodiff.NewNode(Sigmoid, "Sigmoid("+x.Name()+")", x)
}

// Name returns "Sigmoid".
func (SigmoidOp) Name() string { return "Sigmoid" }

// Compute writes 0.5 + 0.5*tanh(0.5*x) into out. Only the primary path is supported.
func (SigmoidOp) Compute(_ *autodiff.Node, inputs []*tensor.RawTensor, out *tensor.RawTensor, sel backend.Selector) error {
	if err := autodiff.CheckCompute("Sigmoid", inputs, out, 1); err != nil {
		return err
	}
	if sel.Accelerated() {
		return autodiff.NotImplementedf("Sigmoid: accelerator kernel")
	}
	if err := tensor.AffineScalar(inputs[0], 0.5, 0, out); err != nil {
		return err
	}
	if err := tensor.Tanh(out, out); err != nil {
		return err
	}
	return tensor.AffineScalar(out, 0.5, 0.5, out)
}

// Gradient returns [(σ(x) - σ(x)*σ(x)) * outputGrad].
//
// This is σ(x)*(1-σ(x)) written without a constant-one node. The expression
// uses two fresh Sigmoid nodes over x rather than reusing n.
func (SigmoidOp) Gradient(n *autodiff.Node, outputGrad *autodiff.Node) ([]*autodiff.Node, error) {
	x := n.Input(0)
	s := Sigmoid.Apply(x)
	sq := Sigmoid.Apply(x)
	local := autodiff.Sub(s, autodiff.Mul(sq, sq))
	return []*autodiff.Node{autodiff.Mul(local, outputGrad)}, nil
}

// InferShape returns the first input shape. It fails only when no shape is given.
func (SigmoidOp) InferShape(_ *autodiff.Node, inputShapes []tensor.Shape) (tensor.Shape, error) {
	if len(inputShapes) == 0 {
		return nil, autodiff.CheckArity("Sigmoid", 0, 1)
	}
	return inputShapes[0].Clone(), nil
}
