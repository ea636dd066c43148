package scripts_test

import (
	"strings"
	"testing"

	"gitlab.com/elemk/dom/scripts"
)

func TestGet(t *testing.T) {
	for _, name := range []string{scripts.TextContent, scripts.OuterHTML} {
		src, err := scripts.Get(name)
		if err != nil {
			t.Fatalf("error getting %s: %s\n", name, err)
		}
		if !strings.HasPrefix(strings.TrimSpace(src), "function") {
			t.Fatalf("%s is not a function declaration: %s", name, src)
		}
	}

	if _, err := scripts.Get("missing.js"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}
