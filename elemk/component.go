package elemk

import (
	"fmt"

	"github.com/pkg/errors"
)

// Wrapper is implemented by every typed component. A value is a component iff
// it is a Wrapper, a raw *NodeSet never is.
type Wrapper interface {
	Nodes() *NodeSet
}

// Component is embedded by typed components and holds the backing node set
type Component struct {
	element *NodeSet
}

// NewComponent over nodes
func NewComponent(nodes *NodeSet) Component {
	return Component{element: nodes}
}

// Nodes backing this component
func (c Component) Nodes() *NodeSet {
	return c.element
}

// NodesOf w, nil for a nil or typed nil wrapper
func NodesOf(w Wrapper) *NodeSet {
	if IsNil(w) {
		return nil
	}
	return w.Nodes()
}

// Factory constructs a typed component over a node set
type Factory[T Wrapper] func(nodes *NodeSet) T

// IsComponent answers if v was produced by a component factory
func IsComponent(v interface{}) bool {
	if v == nil {
		return false
	}
	if _, raw := v.(*NodeSet); raw {
		return false
	}
	_, ok := v.(Wrapper)
	return ok
}

// Create a component of type T from subject, which may be a *NodeSet, a single
// Element or an existing Wrapper whose nodes are re-wrapped.
func Create[T Wrapper](subject interface{}, factory Factory[T]) (T, error) {
	var zero T
	if factory == nil {
		return zero, &PreconditionErr{Op: "create " + TypeName[T](), Value: "factory"}
	}

	op := fmt.Sprintf("tried to create %s", TypeName[T]())
	nodes, err := subjectNodes(subject)
	if err == ErrNilSubject {
		return zero, &PreconditionErr{Op: op, Value: "subject", Err: ErrNilSubject}
	}
	if err != nil {
		return zero, &SubjectTypeErr{Op: op, Type: fmt.Sprintf("%T", subject)}
	}
	return factory(nodes), nil
}

func subjectNodes(subject interface{}) (*NodeSet, error) {
	switch s := subject.(type) {
	case nil:
		return nil, ErrNilSubject
	case *NodeSet:
		if s == nil {
			return nil, ErrNilSubject
		}
		return s, nil
	case Wrapper:
		nodes := NodesOf(s)
		if nodes == nil {
			return nil, ErrNilSubject
		}
		return nodes, nil
	case Element:
		if IsNil(s) {
			return nil, ErrNilSubject
		}
		return NodeSetOf(s), nil
	}
	return nil, errors.Errorf("unsupported subject %T", subject)
}

// TypeName of T for messages and trace records
func TypeName[T any]() string {
	var zero T
	name := fmt.Sprintf("%T", zero)
	if name == "<nil>" {
		name = fmt.Sprintf("%T", (*T)(nil))[1:]
	}
	return name
}
