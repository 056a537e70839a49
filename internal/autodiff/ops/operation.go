// Package ops defines the activation operators of the autodiff graph.
//
// Each operator is a stateless value implementing autodiff.Op, exposed as a
// package-level singleton used as a node factory:
//   - Relu: max(x, 0)
//   - ReluGradient: sign(max(x, 0)) * grad, the node Relu's gradient builds
//   - Sigmoid: 0.5 + 0.5*tanh(0.5*x), overflow-free for large |x|
//   - Softmax: max-shifted softmax over the last axis
//
// Operators are also registered by name (see Lookup) so graph loaders can
// resolve them; Register is the extension point for further activations.
package ops

import (
	"sort"
	"sync"

	"github.com/born-ml/autograph/internal/autodiff"
	"github.com/pkg/errors"
)

// Global singleton operators. They hold no state and may be used concurrently.
var (
	Relu         = ReluOp{}
	ReluGradient = ReluGradientOp{}
	Sigmoid      = SigmoidOp{}
	Softmax      = SoftmaxOp{}
)

var registry = struct {
	sync.RWMutex
	ops map[string]autodiff.Op
}{ops: map[string]autodiff.Op{}}

func init() {
	for _, op := range []autodiff.Op{Relu, ReluGradient, Sigmoid, Softmax} {
		if err := Register(op); err != nil {
			panic(err)
		}
	}
}

// Register makes op resolvable by its name.
func Register(op autodiff.Op) error {
	if op == nil || op.Name() == "" {
		return errors.New("ops: cannot register an operator without a name")
	}
	registry.Lock()
	defer registry.Unlock()
	if _, found := registry.ops[op.Name()]; found {
		return errors.Errorf("ops: operator %q already registered", op.Name())
	}
	registry.ops[op.Name()] = op
	return nil
}

// Lookup returns the operator registered under name.
func Lookup(name string) (autodiff.Op, bool) {
	registry.RLock()
	defer registry.RUnlock()
	op, ok := registry.ops[name]
	return op, ok
}

// Names returns the registered operator names, sorted.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.ops))
	for name := range registry.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
