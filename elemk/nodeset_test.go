package elemk_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"gitlab.com/elemk/elemk"
	"gitlab.com/elemk/mock"
)

func TestNodeSetEq(t *testing.T) {
	set := elemk.NodeSetOf(mock.MakeMockElements("a", "b", "c")...)

	var inputs = []struct {
		index    int
		expected string
	}{
		{0, "el-1"},
		{2, "el-3"},
		{-1, "el-3"},
		{3, ""},
		{5, ""},
		{-4, ""},
	}

	for _, in := range inputs {
		ret := set.Eq(in.index)
		if in.expected == "" {
			if !ret.Empty() {
				t.Fatalf("index %d expected empty set got %d elements", in.index, ret.Len())
			}
			continue
		}
		if ret.Len() != 1 {
			t.Fatalf("index %d expected 1 element got %d", in.index, ret.Len())
		}
		if ret.First().ID() != in.expected {
			t.Fatalf("index %d expected %s got %s", in.index, in.expected, ret.First().ID())
		}
	}
}

func TestNodeSetContains(t *testing.T) {
	ctx := context.Background()
	set := elemk.NodeSetOf(mock.MakeMockElements("Apple", "Banana", "Apple Pie", "apple")...)

	ret, err := set.Contains(ctx, "Apple")
	if err != nil {
		t.Fatalf("error filtering: %s\n", err)
	}

	texts, _ := ret.Texts(ctx)
	if len(texts) != 2 || texts[0] != "Apple" || texts[1] != "Apple Pie" {
		t.Fatalf("expected [Apple, Apple Pie] got %v", texts)
	}
}

func TestNodeSetFindDedup(t *testing.T) {
	ctx := context.Background()
	shared := mock.MakeMockElement("shared", "x", nil)
	other := mock.MakeMockElement("other", "y", nil)
	anon := mock.MakeMockElement("", "z", nil)

	parentA := &mock.Element{QueryAllFn: func(ctx context.Context, selector string) ([]elemk.Element, error) {
		return []elemk.Element{shared, anon}, nil
	}}
	parentB := &mock.Element{QueryAllFn: func(ctx context.Context, selector string) ([]elemk.Element, error) {
		return []elemk.Element{shared, other, anon}, nil
	}}

	ret, err := elemk.NodeSetOf(parentA, parentB).Find(ctx, ".item")
	if err != nil {
		t.Fatalf("error finding: %s\n", err)
	}

	// elements without an id can not be de-duplicated
	if ret.Len() != 4 {
		t.Fatalf("expected 4 elements got %d", ret.Len())
	}
	if parentA.QueryAllQueries[0] != ".item" || parentB.QueryAllQueries[0] != ".item" {
		t.Fatalf("expected both parents to be queried")
	}
}

func TestNodeSetFindError(t *testing.T) {
	cause := errors.New("bad selector")
	set := elemk.NodeSetOf(mock.MakeMockFailingDocument(cause))

	_, err := set.Find(context.Background(), "div[")
	if err == nil {
		t.Fatalf("expected error")
	}

	qerr, ok := err.(*elemk.QueryErr)
	if !ok {
		t.Fatalf("expected QueryErr got %T", err)
	}
	if qerr.Query != "div[" || errors.Cause(err) != cause {
		t.Fatalf("unexpected query err %#v", qerr)
	}
}

func TestNodeSetNil(t *testing.T) {
	var set *elemk.NodeSet
	if set.Len() != 0 || !set.Empty() || set.First() != nil {
		t.Fatalf("nil set must behave as empty")
	}
	if !set.Eq(0).Empty() {
		t.Fatalf("eq on nil set must be empty")
	}
	if len(elemk.NodeSetOf(nil, nil).Elements()) != 0 {
		t.Fatalf("nil elements should be dropped")
	}
}

func TestNodeSetSplit(t *testing.T) {
	set := elemk.NodeSetOf(mock.MakeMockElements("a", "b")...)
	parts := set.Split()
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts got %d", len(parts))
	}
	for i, p := range parts {
		if p.Len() != 1 || p.First() != set.Elements()[i] {
			t.Fatalf("part %d does not match element", i)
		}
	}
}
