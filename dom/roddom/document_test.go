package roddom_test

import (
	"context"
	"testing"

	"github.com/go-rod/rod/lib/launcher"
	"gitlab.com/elemk/dom/domtest"
	"gitlab.com/elemk/dom/roddom"
	"gitlab.com/elemk/elemk"
)

func TestConformance(t *testing.T) {
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no chrome found")
	}

	cfg := elemk.DefaultConfig()
	cfg.Driver = elemk.DriverRod
	cfg.ChromePath = bin
	cfg.URL = domtest.Serve(t)

	doc, closer, err := roddom.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to open page: %s\n", err)
	}
	defer closer()

	domtest.Run(t, doc)
}

func TestOpenWithoutTarget(t *testing.T) {
	if _, _, err := roddom.Open(context.Background(), elemk.DefaultConfig()); !elemk.IsPrecondition(err) {
		t.Fatalf("expected precondition error got %v", err)
	}
}
