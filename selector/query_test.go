package selector_test

import (
	"testing"

	"gitlab.com/elemk/elemk"
	"gitlab.com/elemk/selector"
)

func TestBuildQuery(t *testing.T) {
	var inputs = []struct {
		base     string
		opts     *elemk.Options
		expected string
	}{
		{".list-item", nil, ".list-item"},
		{".list-item", &elemk.Options{}, ".list-item"},
		{".list-item", &elemk.Options{Index: elemk.Int(1), Text: elemk.String("x")}, ".list-item"},
		{"button", &elemk.Options{Marker: "x"}, "button[data-marker=x]"},
		{"button", &elemk.Options{CSS: ".primary"}, "button.primary"},
		{"button", &elemk.Options{Marker: "save", CSS: ".primary"}, "button[data-marker=save]"},
		{"button", &elemk.Options{Marker: "save", MarkerAttribute: "data-cy"}, "button[data-cy=save]"},
		{"", &elemk.Options{Marker: "save"}, "[data-marker=save]"},
		{"", &elemk.Options{CSS: " > li"}, " > li"},
		{"", &elemk.Options{}, ""},
		{"div", &elemk.Options{CSS: "[broken"}, "div[broken"},
	}

	for _, in := range inputs {
		if got := selector.BuildQuery(in.base, in.opts); got != in.expected {
			t.Fatalf("BuildQuery(%q, %#v) expected %q got %q", in.base, in.opts, in.expected, got)
		}
	}
}
