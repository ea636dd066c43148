package mock

import (
	"context"
	"fmt"

	"gitlab.com/elemk/elemk"
)

// MakeMockElement with a fixed id, text and attributes
func MakeMockElement(id, text string, attrs map[string]string) *Element {
	return &Element{
		IDFn: func() string { return id },
		TextFn: func(ctx context.Context) (string, error) {
			return text, nil
		},
		AttributeFn: func(ctx context.Context, name string) (string, bool, error) {
			v, ok := attrs[name]
			return v, ok, nil
		},
	}
}

// MakeMockElements one element per text, ids are el-1, el-2...
func MakeMockElements(texts ...string) []elemk.Element {
	m := make([]elemk.Element, 0, len(texts))
	for i, text := range texts {
		m = append(m, MakeMockElement(fmt.Sprintf("el-%d", i+1), text, nil))
	}
	return m
}

// MakeMockDocument returns a document answering every query with results,
// and records each query it was asked.
func MakeMockDocument(results []elemk.Element) *Element {
	return &Element{
		IDFn: func() string { return "document" },
		QueryAllFn: func(ctx context.Context, selector string) ([]elemk.Element, error) {
			return results, nil
		},
	}
}

// MakeMockFailingDocument fails every query with err
func MakeMockFailingDocument(err error) *Element {
	return &Element{
		IDFn: func() string { return "document" },
		QueryAllFn: func(ctx context.Context, selector string) ([]elemk.Element, error) {
			return nil, err
		},
	}
}
