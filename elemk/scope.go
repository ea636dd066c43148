package elemk

import (
	"fmt"
	"reflect"
)

// ScopeKind discriminates the Scope union
type ScopeKind int8

const (
	// ScopeDocument searches the whole document (the zero value)
	ScopeDocument ScopeKind = iota
	// ScopeComponent searches within a component's backing nodes
	ScopeComponent
	// ScopeNodeSet searches within a raw node set
	ScopeNodeSet
)

var scopeKindMap = map[ScopeKind]string{
	ScopeDocument:  "document",
	ScopeComponent: "component",
	ScopeNodeSet:   "nodeset",
}

func (k ScopeKind) String() string {
	if s, ok := scopeKindMap[k]; ok {
		return s
	}
	return "unknown"
}

// Scope is where a query is executed: the whole document, a component or a
// raw node set.
type Scope struct {
	kind      ScopeKind
	component Wrapper
	nodes     *NodeSet
}

// DocumentScope is the whole document
func DocumentScope() Scope {
	return Scope{kind: ScopeDocument}
}

// ComponentScope searches inside w
func ComponentScope(w Wrapper) Scope {
	return Scope{kind: ScopeComponent, component: w}
}

// NodeSetScope searches inside nodes
func NodeSetScope(nodes *NodeSet) Scope {
	return Scope{kind: ScopeNodeSet, nodes: nodes}
}

// ScopeOf resolves an untyped root value into a Scope
func ScopeOf(root interface{}) (Scope, error) {
	switch r := root.(type) {
	case nil:
		return DocumentScope(), nil
	case Scope:
		return r, nil
	case *NodeSet:
		if r == nil {
			return Scope{}, &PreconditionErr{Op: "resolve scope", Value: "root node set"}
		}
		return NodeSetScope(r), nil
	case Wrapper:
		if IsNil(r) {
			return Scope{}, &PreconditionErr{Op: "resolve scope", Value: "root component"}
		}
		return ComponentScope(r), nil
	case Element:
		if IsNil(r) {
			return Scope{}, &PreconditionErr{Op: "resolve scope", Value: "root element", Err: ErrNilSubject}
		}
		return NodeSetScope(NodeSetOf(r)), nil
	}
	return Scope{}, &PreconditionErr{Op: "resolve scope", Value: fmt.Sprintf("root of type %T", root)}
}

// Kind of scope
func (s Scope) Kind() ScopeKind {
	return s.kind
}

// Component for ScopeComponent scopes
func (s Scope) Component() (Wrapper, bool) {
	return s.component, s.kind == ScopeComponent
}

// NodeSet for ScopeNodeSet scopes
func (s Scope) NodeSet() (*NodeSet, bool) {
	return s.nodes, s.kind == ScopeNodeSet
}

// Nodes the scope searches within, nil for the document scope
func (s Scope) Nodes() *NodeSet {
	switch s.kind {
	case ScopeComponent:
		return NodesOf(s.component)
	case ScopeNodeSet:
		return s.nodes
	}
	return nil
}

// IsNil answers if v is nil or a typed nil, like the zero component an absent
// Selection returns
func IsNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
