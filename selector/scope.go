package selector

import (
	"context"

	"gitlab.com/elemk/elemk"
)

// ResolveScope returns the node set a query runs in: the root component's
// nodes, the root node set, or the whole document.
func ResolveScope(ctx context.Context, doc elemk.Document, opts *elemk.Options) (*elemk.NodeSet, error) {
	var root elemk.Scope
	if opts != nil {
		root = opts.Root
	}

	switch root.Kind() {
	case elemk.ScopeComponent:
		nodes := root.Nodes()
		if nodes == nil {
			return nil, &elemk.PreconditionErr{Op: "resolve scope", Value: "root component element"}
		}
		return nodes, nil
	case elemk.ScopeNodeSet:
		nodes := root.Nodes()
		if nodes == nil {
			return nil, &elemk.PreconditionErr{Op: "resolve scope", Value: "root node set"}
		}
		return nodes, nil
	}

	if elemk.IsNil(doc) {
		return nil, &elemk.PreconditionErr{Op: "resolve scope", Value: "document", Err: elemk.ErrNilDocument}
	}
	return elemk.NodeSetOf(doc), nil
}
