package ops

import (
	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/born-ml/autograph/internal/backend"
	"github.com/born-ml/autograph/internal/tensor"
	"github.com/pkg/errors"
)

// ReluOp is the rectified linear unit: output = max(x, 0).
//
// Its gradient is not computed eagerly: Gradient returns a ReluGradient node
// over the original input and the upstream gradient.
type ReluOp struct{}

// Apply returns a node computing Relu(x), named "Relu(<x>)".
func (ReluOp) Apply(x *autodiff.Node) *autodiff.Node {
	return autodiff.NewNode(Relu, "Relu("+x.Name()+")", x)
}

// Name returns "Relu".
func (ReluOp) Name() string { return "Relu" }

// Compute writes max(x, 0) into out.
func (ReluOp) Compute(_ *autodiff.Node, inputs []*tensor.RawTensor, out *tensor.RawTensor, sel backend.Selector) error {
	if err := autodiff.CheckCompute("Relu", inputs, out, 1); err != nil {
		return err
	}
	if sel.Accelerated() {
		k, err := sel.AcceleratorKernels()
		if err != nil {
			return errors.WithMessage(err, "Relu")
		}
		return k.Relu(inputs[0], out)
	}
	return tensor.Maximum(inputs[0], 0, out)
}

// Gradient returns [ReluGradient(x, outputGrad)].
func (ReluOp) Gradient(n *autodiff.Node, outputGrad *autodiff.Node) ([]*autodiff.Node, error) {
	return []*autodiff.Node{ReluGradient.Apply(n.Input(0), outputGrad)}, nil
}

// InferShape returns the input shape.
func (ReluOp) InferShape(_ *autodiff.Node, inputShapes []tensor.Shape) (tensor.Shape, error) {
	if err := autodiff.CheckArity("Relu", len(inputShapes), 1); err != nil {
		return nil, err
	}
	return inputShapes[0].Clone(), nil
}

// ReluGradientOp computes the derivative of Relu times the upstream gradient:
//
//	output = sign(max(x, 0)) * grad
//
// which is grad where x > 0 and 0 elsewhere.
type ReluGradientOp struct{}

// Apply returns a node over (x, grad), named "ReluGradient(<x>)".
func (ReluGradientOp) Apply(x, grad *autodiff.Node) *autodiff.Node {
	return autodiff.NewNode(ReluGradient, "ReluGradient("+x.Name()+")", x, grad)
}

// Name returns "ReluGradient".
func (ReluGradientOp) Name() string { return "ReluGradient" }

// Compute writes sign(max(x, 0)) * grad into out.
func (ReluGradientOp) Compute(_ *autodiff.Node, inputs []*tensor.RawTensor, out *tensor.RawTensor, sel backend.Selector) error {
	if err := autodiff.CheckCompute("ReluGradient", inputs, out, 2); err != nil {
		return err
	}
	if err := autodiff.CheckShapesEqual("ReluGradient", inputs[0].Shape(), inputs[1].Shape()); err != nil {
		return err
	}
	if sel.Accelerated() {
		k, err := sel.AcceleratorKernels()
		if err != nil {
			return errors.WithMessage(err, "ReluGradient")
		}
		return k.ReluGradient(inputs[0], inputs[1], out)
	}
	return tensor.ReluMask(inputs[0], inputs[1], out)
}

// Gradient is not supported: second-order derivatives through Relu are not available.
func (ReluGradientOp) Gradient(_ *autodiff.Node, _ *autodiff.Node) ([]*autodiff.Node, error) {
	return nil, autodiff.NotImplementedf("gradient of ReluGradient")
}

// InferShape requires two equal shapes and returns it.
func (ReluGradientOp) InferShape(_ *autodiff.Node, inputShapes []tensor.Shape) (tensor.Shape, error) {
	if err := autodiff.CheckArity("ReluGradient", len(inputShapes), 2); err != nil {
		return nil, err
	}
	if err := autodiff.CheckShapesEqual("ReluGradient", inputShapes...); err != nil {
		return nil, err
	}
	return inputShapes[0].Clone(), nil
}
