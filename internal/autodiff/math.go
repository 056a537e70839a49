package autodiff

import (
	"github.com/born-ml/autograph/internal/backend"
	"github.com/born-ml/autograph/internal/tensor"
)

// Element-wise arithmetic used to compose gradient expressions. These run on
// the primary path only.

// PlaceholderOp is the leaf operator for values fed by the evaluator.
// Unlike the other operators, each placeholder has its own PlaceholderOp
// carrying the declared shape and dtype.
type PlaceholderOp struct {
	shape tensor.Shape
	dtype tensor.DataType
}

// Placeholder creates a leaf node named name.
func Placeholder(name string, shape tensor.Shape, dtype tensor.DataType) *Node {
	return NewNode(&PlaceholderOp{shape: shape.Clone(), dtype: dtype}, name)
}

// Name returns "Placeholder".
func (op *PlaceholderOp) Name() string { return "Placeholder" }

// DType returns the declared dtype.
func (op *PlaceholderOp) DType() tensor.DataType { return op.dtype }

// Compute fails: placeholder values must be fed by the evaluator.
func (op *PlaceholderOp) Compute(n *Node, _ []*tensor.RawTensor, _ *tensor.RawTensor, _ backend.Selector) error {
	return NotImplementedf("placeholder %q has no compute, its value must be fed", n.Name())
}

// Gradient returns no input gradients: placeholders have no inputs.
func (op *PlaceholderOp) Gradient(_ *Node, _ *Node) ([]*Node, error) {
	return nil, nil
}

// InferShape returns the declared shape.
func (op *PlaceholderOp) InferShape(_ *Node, inputShapes []tensor.Shape) (tensor.Shape, error) {
	if err := CheckArity("Placeholder", len(inputShapes), 0); err != nil {
		return nil, err
	}
	return op.shape.Clone(), nil
}

// MulOp multiplies two equally shaped tensors element-wise.
type MulOp struct{}

// SubOp subtracts two equally shaped tensors element-wise.
type SubOp struct{}

// NegOp negates a tensor element-wise.
type NegOp struct{}

var (
	mulOp = MulOp{}
	subOp = SubOp{}
	negOp = NegOp{}
)

// Mul returns a node computing a * b.
func Mul(a, b *Node) *Node {
	return NewNode(mulOp, "("+a.Name()+"*"+b.Name()+")", a, b)
}

// Sub returns a node computing a - b.
func Sub(a, b *Node) *Node {
	return NewNode(subOp, "("+a.Name()+"-"+b.Name()+")", a, b)
}

// Neg returns a node computing -a.
func Neg(a *Node) *Node {
	return NewNode(negOp, "(-"+a.Name()+")", a)
}

// Name returns "Mul".
func (MulOp) Name() string { return "Mul" }

// Compute writes a * b into out.
func (MulOp) Compute(_ *Node, inputs []*tensor.RawTensor, out *tensor.RawTensor, sel backend.Selector) error {
	if err := CheckCompute("Mul", inputs, out, 2); err != nil {
		return err
	}
	if sel.Accelerated() {
		return NotImplementedf("Mul: accelerator kernel")
	}
	return tensor.Mul(inputs[0], inputs[1], out)
}

// Gradient returns [grad*b, grad*a].
func (MulOp) Gradient(n *Node, outputGrad *Node) ([]*Node, error) {
	return []*Node{Mul(outputGrad, n.Input(1)), Mul(outputGrad, n.Input(0))}, nil
}

// InferShape requires two equal shapes.
func (MulOp) InferShape(_ *Node, inputShapes []tensor.Shape) (tensor.Shape, error) {
	return binaryShape("Mul", inputShapes)
}

// Name returns "Sub".
func (SubOp) Name() string { return "Sub" }

// Compute writes a - b into out.
func (SubOp) Compute(_ *Node, inputs []*tensor.RawTensor, out *tensor.RawTensor, sel backend.Selector) error {
	if err := CheckCompute("Sub", inputs, out, 2); err != nil {
		return err
	}
	if sel.Accelerated() {
		return NotImplementedf("Sub: accelerator kernel")
	}
	return tensor.Sub(inputs[0], inputs[1], out)
}

// Gradient returns [grad, -grad].
func (SubOp) Gradient(_ *Node, outputGrad *Node) ([]*Node, error) {
	return []*Node{outputGrad, Neg(outputGrad)}, nil
}

// InferShape requires two equal shapes.
func (SubOp) InferShape(_ *Node, inputShapes []tensor.Shape) (tensor.Shape, error) {
	return binaryShape("Sub", inputShapes)
}

// Name returns "Neg".
func (NegOp) Name() string { return "Neg" }

// Compute writes -a into out.
func (NegOp) Compute(_ *Node, inputs []*tensor.RawTensor, out *tensor.RawTensor, sel backend.Selector) error {
	if err := CheckCompute("Neg", inputs, out, 1); err != nil {
		return err
	}
	if sel.Accelerated() {
		return NotImplementedf("Neg: accelerator kernel")
	}
	return tensor.Neg(inputs[0], out)
}

// Gradient returns [-grad].
func (NegOp) Gradient(_ *Node, outputGrad *Node) ([]*Node, error) {
	return []*Node{Neg(outputGrad)}, nil
}

// InferShape returns the single input shape.
func (NegOp) InferShape(_ *Node, inputShapes []tensor.Shape) (tensor.Shape, error) {
	if err := CheckArity("Neg", len(inputShapes), 1); err != nil {
		return nil, err
	}
	return inputShapes[0].Clone(), nil
}

func binaryShape(op string, inputShapes []tensor.Shape) (tensor.Shape, error) {
	if err := CheckArity(op, len(inputShapes), 2); err != nil {
		return nil, err
	}
	if err := CheckShapesEqual(op, inputShapes...); err != nil {
		return nil, err
	}
	return inputShapes[0].Clone(), nil
}
