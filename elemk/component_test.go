package elemk_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"gitlab.com/elemk/elemk"
	"gitlab.com/elemk/mock"
)

type button struct {
	elemk.Component
}

func newButton(nodes *elemk.NodeSet) *button {
	return &button{Component: elemk.NewComponent(nodes)}
}

func TestIsComponent(t *testing.T) {
	nodes := elemk.NodeSetOf(mock.MakeMockElements("Save")...)

	b, err := elemk.Create(nodes, newButton)
	if err != nil {
		t.Fatalf("error creating: %s\n", err)
	}

	if !elemk.IsComponent(b) {
		t.Fatalf("factory output must be a component")
	}
	if elemk.IsComponent(nodes) {
		t.Fatalf("raw node set must not be a component")
	}
	if elemk.IsComponent(nil) || elemk.IsComponent("button") {
		t.Fatalf("nil and strings are not components")
	}
	if b.Nodes() != nodes {
		t.Fatalf("component must keep a reference to its node set")
	}
}

func TestCreateFromElement(t *testing.T) {
	el := mock.MakeMockElement("1", "Save", nil)
	b, err := elemk.Create(el, newButton)
	if err != nil {
		t.Fatalf("error creating: %s\n", err)
	}
	if b.Nodes().Len() != 1 || b.Nodes().First() != el {
		t.Fatalf("expected element to be wrapped in a single node set")
	}
}

func TestCreateFromComponent(t *testing.T) {
	nodes := elemk.NodeSetOf(mock.MakeMockElements("Save")...)
	first := newButton(nodes)

	second, err := elemk.Create(first, newButton)
	if err != nil {
		t.Fatalf("error creating: %s\n", err)
	}
	if second == first || second.Nodes() != nodes {
		t.Fatalf("expected a new component over the same nodes")
	}
}

func TestCreateUndefinedSubject(t *testing.T) {
	var nilNodes *elemk.NodeSet
	var nilButton *button

	for _, subject := range []interface{}{nil, nilNodes, nilButton} {
		_, err := elemk.Create(subject, newButton)
		if err == nil {
			t.Fatalf("expected error for %#v", subject)
		}
		if !elemk.IsPrecondition(err) {
			t.Fatalf("expected precondition error got %T", err)
		}
		if !strings.Contains(err.Error(), "tried to create *elemk_test.button") {
			t.Fatalf("error should name the component type: %s", err)
		}
	}
}

func TestCreateWrongSubjectType(t *testing.T) {
	_, err := elemk.Create("div.button", newButton)
	if err == nil {
		t.Fatalf("expected error for a string subject")
	}
	if elemk.IsPrecondition(err) {
		t.Fatalf("a defined subject of the wrong type is not undefined: %s", err)
	}
	var typeErr *elemk.SubjectTypeErr
	if !errors.As(err, &typeErr) || typeErr.Type != "string" {
		t.Fatalf("expected subject type error got %v", err)
	}
	if strings.Contains(err.Error(), "undefined") {
		t.Fatalf("unexpected message %s", err)
	}
}

func TestCreateUndefinedSubjectCause(t *testing.T) {
	_, err := elemk.Create(nil, newButton)
	if !errors.Is(err, elemk.ErrNilSubject) {
		t.Fatalf("expected ErrNilSubject as the cause got %v", err)
	}
}

func TestTypeName(t *testing.T) {
	if name := elemk.TypeName[*button](); name != "*elemk_test.button" {
		t.Fatalf("unexpected name %s", name)
	}
	if name := elemk.TypeName[elemk.Wrapper](); name != "elemk.Wrapper" {
		t.Fatalf("unexpected name %s", name)
	}
}
