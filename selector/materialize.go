package selector

import (
	"context"

	"gitlab.com/elemk/elemk"
)

// SelectionKind discriminates what a Selection holds
type SelectionKind int8

// revive:exported
const (
	SelectionAbsent SelectionKind = iota
	SelectionRaw
	SelectionComponent
	SelectionComponents
)

// Selection is the outcome of materializing a node set: nothing, the raw node
// set, one component or one component per element.
type Selection[T elemk.Wrapper] struct {
	kind       SelectionKind
	raw        *elemk.NodeSet
	components []T
}

// Kind of selection
func (s Selection[T]) Kind() SelectionKind {
	return s.kind
}

// Absent when the query matched nothing
func (s Selection[T]) Absent() bool {
	return s.kind == SelectionAbsent
}

// Raw node set, only for Options.Raw
func (s Selection[T]) Raw() (*elemk.NodeSet, bool) {
	return s.raw, s.kind == SelectionRaw
}

// Component from the single result variant
func (s Selection[T]) Component() (T, bool) {
	var zero T
	if s.kind != SelectionComponent || len(s.components) == 0 {
		return zero, false
	}
	return s.components[0], true
}

// Components from the all results variant, in document order
func (s Selection[T]) Components() []T {
	if s.kind != SelectionComponents && s.kind != SelectionComponent {
		return nil
	}
	return s.components
}

// Materialize wraps set in one component. Zero elements gives an absent
// selection rather than an error, Options.Raw skips wrapping.
func Materialize[T elemk.Wrapper](ctx context.Context, set *elemk.NodeSet, factory elemk.Factory[T], opts *elemk.Options) (Selection[T], error) {
	defer trace(ctx, "materialize", elemk.TypeName[T](), set, opts)

	if opts != nil && opts.Raw {
		return Selection[T]{kind: SelectionRaw, raw: set}, nil
	}
	if set.Empty() {
		return Selection[T]{kind: SelectionAbsent}, nil
	}
	c, err := elemk.Create(set, factory)
	if err != nil {
		return Selection[T]{}, err
	}
	return Selection[T]{kind: SelectionComponent, components: []T{c}}, nil
}

// MaterializeAll wraps every element of set in its own component
func MaterializeAll[T elemk.Wrapper](ctx context.Context, set *elemk.NodeSet, factory elemk.Factory[T], opts *elemk.Options) (Selection[T], error) {
	defer trace(ctx, "materialize_all", elemk.TypeName[T](), set, opts)

	if opts != nil && opts.Raw {
		return Selection[T]{kind: SelectionRaw, raw: set}, nil
	}
	if set.Empty() {
		return Selection[T]{kind: SelectionAbsent}, nil
	}

	components := make([]T, 0, set.Len())
	for _, single := range set.Split() {
		c, err := elemk.Create(single, factory)
		if err != nil {
			return Selection[T]{}, err
		}
		components = append(components, c)
	}
	return Selection[T]{kind: SelectionComponents, components: components}, nil
}

// Get queries base within the document (or opts.Root) and materializes a
// single component
func Get[T elemk.Wrapper](ctx context.Context, doc elemk.Document, base string, factory elemk.Factory[T], opts *elemk.Options) (Selection[T], error) {
	set, err := Query(ctx, doc, base, opts)
	if err != nil {
		return Selection[T]{}, err
	}
	return Materialize(ctx, set, factory, opts)
}

// GetAll queries base and materializes one component per match
func GetAll[T elemk.Wrapper](ctx context.Context, doc elemk.Document, base string, factory elemk.Factory[T], opts *elemk.Options) (Selection[T], error) {
	set, err := Query(ctx, doc, base, opts)
	if err != nil {
		return Selection[T]{}, err
	}
	return MaterializeAll(ctx, set, factory, opts)
}

// FindIn queries base inside component and materializes a single component
func FindIn[T elemk.Wrapper](ctx context.Context, component elemk.Wrapper, base string, factory elemk.Factory[T], opts *elemk.Options) (Selection[T], error) {
	set, err := Find(ctx, component, base, opts)
	if err != nil {
		return Selection[T]{}, err
	}
	return Materialize(ctx, set, factory, opts)
}

// FindAllIn queries base inside component and materializes one component per match
func FindAllIn[T elemk.Wrapper](ctx context.Context, component elemk.Wrapper, base string, factory elemk.Factory[T], opts *elemk.Options) (Selection[T], error) {
	set, err := Find(ctx, component, base, opts)
	if err != nil {
		return Selection[T]{}, err
	}
	return MaterializeAll(ctx, set, factory, opts)
}

func trace(ctx context.Context, op, component string, set *elemk.NodeSet, opts *elemk.Options) {
	elemk.Trace(ctx, op).
		Str("component", component).
		Int("matched", set.Len()).
		Object("options", opts).
		Msg("selection")
}
