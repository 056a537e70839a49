package autodiff

import (
	"github.com/born-ml/autograph/internal/backend"
	"github.com/born-ml/autograph/internal/tensor"
)

// Op is a differentiable operator. Implementations are stateless values shared
// by every node they create, and safe for concurrent use.
//
// Each concrete operator also has a typed Apply method that builds nodes, e.g.
// Relu.Apply(x) or ReluGradient.Apply(x, grad).
type Op interface {
	// Name returns the operator kind, e.g. "Relu".
	Name() string

	// Compute evaluates n given its inputs' values and writes the result into
	// out, which the caller allocated with the shape returned by InferShape and
	// the inputs' dtype. sel picks the primary or accelerator path.
	Compute(n *Node, inputs []*tensor.RawTensor, out *tensor.RawTensor, sel backend.Selector) error

	// Gradient returns, for each input of n, a node computing that input's
	// gradient contribution given outputGrad, the gradient flowing into n.
	Gradient(n *Node, outputGrad *Node) ([]*Node, error)

	// InferShape returns the output shape of n for the given input shapes.
	InferShape(n *Node, inputShapes []tensor.Shape) (tensor.Shape, error)
}
