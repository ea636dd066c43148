package elemk

import (
	"context"
	"strings"
)

// NodeSet is an ordered collection of matched elements. It is a handle, the
// elements themselves belong to the driver's page.
type NodeSet struct {
	elements []Element
}

// NodeSetOf wraps raw elements into a node set, nil elements are dropped
func NodeSetOf(elements ...Element) *NodeSet {
	n := &NodeSet{elements: make([]Element, 0, len(elements))}
	for _, e := range elements {
		if e == nil {
			continue
		}
		n.elements = append(n.elements, e)
	}
	return n
}

// Len of the node set, a nil set is empty
func (n *NodeSet) Len() int {
	if n == nil {
		return 0
	}
	return len(n.elements)
}

// Empty answers if there are no elements in the set
func (n *NodeSet) Empty() bool {
	return n.Len() == 0
}

// Elements returns a copy of the underlying elements
func (n *NodeSet) Elements() []Element {
	if n == nil {
		return nil
	}
	ret := make([]Element, len(n.elements))
	copy(ret, n.elements)
	return ret
}

// First element or nil
func (n *NodeSet) First() Element {
	if n.Len() == 0 {
		return nil
	}
	return n.elements[0]
}

// Eq selects the element at index. Negative indexes count back from the end.
// Out of range returns an empty set.
func (n *NodeSet) Eq(index int) *NodeSet {
	l := n.Len()
	if index < 0 {
		index += l
	}
	if index < 0 || index >= l {
		return &NodeSet{elements: []Element{}}
	}
	return &NodeSet{elements: []Element{n.elements[index]}}
}

// Contains keeps the elements whose text content contains text (case sensitive)
func (n *NodeSet) Contains(ctx context.Context, text string) (*NodeSet, error) {
	ret := &NodeSet{elements: make([]Element, 0)}
	for _, e := range n.Elements() {
		content, err := e.Text(ctx)
		if err != nil {
			return nil, err
		}
		if strings.Contains(content, text) {
			ret.elements = append(ret.elements, e)
		}
	}
	return ret, nil
}

// Find descendants of every element in the set matching selector. Elements
// found from more than one scope element are only returned once.
func (n *NodeSet) Find(ctx context.Context, selector string) (*NodeSet, error) {
	ret := &NodeSet{elements: make([]Element, 0)}
	seen := make(map[string]struct{})
	for _, e := range n.Elements() {
		found, err := e.QueryAll(ctx, selector)
		if err != nil {
			return nil, &QueryErr{Query: selector, Err: err}
		}
		for _, f := range found {
			if f == nil {
				continue
			}
			if id := f.ID(); id != "" {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
			}
			ret.elements = append(ret.elements, f)
		}
	}
	return ret, nil
}

// Split into one single element set per element, preserving order
func (n *NodeSet) Split() []*NodeSet {
	sets := make([]*NodeSet, n.Len())
	for i, e := range n.Elements() {
		sets[i] = &NodeSet{elements: []Element{e}}
	}
	return sets
}

// Texts of every element in order
func (n *NodeSet) Texts(ctx context.Context) ([]string, error) {
	texts := make([]string, 0, n.Len())
	for _, e := range n.Elements() {
		t, err := e.Text(ctx)
		if err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, nil
}

// Text of all elements joined together, like jQuery's .text()
func (n *NodeSet) Text(ctx context.Context) (string, error) {
	texts, err := n.Texts(ctx)
	if err != nil {
		return "", err
	}
	return strings.Join(texts, ""), nil
}

// Attribute of the first element
func (n *NodeSet) Attribute(ctx context.Context, name string) (string, bool, error) {
	first := n.First()
	if first == nil {
		return "", false, nil
	}
	return first.Attribute(ctx, name)
}
