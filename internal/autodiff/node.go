// Package autodiff implements the symbolic computation graph that operators
// plug into.
//
// Architecture:
//   - Node: one operator application, holding its inputs and a display name
//   - Op: the contract every operator implements (compute, gradient, shape inference)
//   - Gradients are themselves graph nodes: Op.Gradient builds new nodes from the
//     node being differentiated and the upstream gradient node
//
// Evaluating a graph (ordering nodes, allocating outputs, caching values) is left
// to the caller; see the graphtest package for a simple recursive evaluator.
package autodiff

import (
	"sync"
	"sync/atomic"

	"github.com/born-ml/autograph/internal/tensor"
)

var nextNodeID atomic.Int64

// Node is one operator application in the computation graph.
//
// Nodes are created only through an operator's Apply method (or NewNode) and
// never change structurally afterwards. Inputs are shared with other nodes.
type Node struct {
	id     int64
	name   string
	op     Op
	inputs []*Node

	mu    sync.Mutex
	value *tensor.RawTensor // Optionally attached by an evaluator.
}

// NewNode creates a node applying op to inputs. Operators call this from their
// Apply methods; name is the display name derived from the inputs' names.
func NewNode(op Op, name string, inputs ...*Node) *Node {
	return &Node{
		id:     nextNodeID.Add(1),
		name:   name,
		op:     op,
		inputs: append([]*Node(nil), inputs...),
	}
}

// ID returns the node's process-unique id.
func (n *Node) ID() int64 {
	return n.id
}

// Name returns the display name, e.g. "Relu(A)".
func (n *Node) Name() string {
	return n.name
}

// Op returns the operator this node applies.
func (n *Node) Op() Op {
	return n.op
}

// Inputs returns the input nodes in order. The slice must not be modified.
func (n *Node) Inputs() []*Node {
	return n.inputs
}

// NumInputs returns the number of input nodes.
func (n *Node) NumInputs() int {
	return len(n.inputs)
}

// Input returns the i-th input node.
func (n *Node) Input(i int) *Node {
	return n.inputs[i]
}

// String returns the display name.
func (n *Node) String() string {
	return n.name
}

// SetValue attaches an evaluated value to the node.
func (n *Node) SetValue(v *tensor.RawTensor) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.value = v
}

// Value returns the attached value, or nil.
func (n *Node) Value() *tensor.RawTensor {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}
