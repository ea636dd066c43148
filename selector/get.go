package selector

import (
	"context"

	"gitlab.com/elemk/elemk"
)

// Query builds the compound query from base and opts, runs it within the
// resolved scope and narrows the result. An empty compound query selects the
// scope itself.
func Query(ctx context.Context, doc elemk.Document, base string, opts *elemk.Options) (*elemk.NodeSet, error) {
	scope, err := ResolveScope(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	result := scope
	if query := BuildQuery(base, opts); query != "" {
		if result, err = scope.Find(ctx, query); err != nil {
			return nil, err
		}
	}
	return Narrow(ctx, result, opts)
}

// Find runs the query within component, ignoring any root set in opts
func Find(ctx context.Context, component elemk.Wrapper, base string, opts *elemk.Options) (*elemk.NodeSet, error) {
	if component == nil {
		return nil, &elemk.PreconditionErr{Op: "find " + base, Value: "component"}
	}
	root, err := elemk.ScopeOf(component)
	if err != nil {
		return nil, err
	}

	scoped := elemk.Options{}
	if opts != nil {
		scoped = *opts
	}
	scoped.Root = root
	return Query(ctx, nil, base, &scoped)
}
