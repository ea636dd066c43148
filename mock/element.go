package mock

import (
	"context"

	"gitlab.com/elemk/elemk"
)

// Element with swappable behaviour, records calls
type Element struct {
	IDFn     func() string
	IDCalled bool

	QueryAllFn      func(ctx context.Context, selector string) ([]elemk.Element, error)
	QueryAllCalled  bool
	QueryAllQueries []string

	TextFn     func(ctx context.Context) (string, error)
	TextCalled bool

	AttributeFn     func(ctx context.Context, name string) (string, bool, error)
	AttributeCalled bool
}

func (e *Element) ID() string {
	e.IDCalled = true
	if e.IDFn == nil {
		return ""
	}
	return e.IDFn()
}

func (e *Element) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	e.QueryAllCalled = true
	e.QueryAllQueries = append(e.QueryAllQueries, selector)
	if e.QueryAllFn == nil {
		return []elemk.Element{}, nil
	}
	return e.QueryAllFn(ctx, selector)
}

func (e *Element) Text(ctx context.Context) (string, error) {
	e.TextCalled = true
	if e.TextFn == nil {
		return "", nil
	}
	return e.TextFn(ctx)
}

func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	e.AttributeCalled = true
	if e.AttributeFn == nil {
		return "", false, nil
	}
	return e.AttributeFn(ctx, name)
}
