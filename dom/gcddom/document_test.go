package gcddom_test

import (
	"context"
	"os"
	"testing"

	"gitlab.com/elemk/dom/domtest"
	"gitlab.com/elemk/dom/gcddom"
	"gitlab.com/elemk/elemk"
)

func TestConformance(t *testing.T) {
	chrome, _ := gcddom.FindChrome()
	if _, err := os.Stat(chrome); err != nil {
		t.Skip("no chrome found")
	}

	cfg := elemk.DefaultConfig()
	cfg.Driver = elemk.DriverGCD
	cfg.ChromePath = chrome
	cfg.URL = domtest.Serve(t)

	doc, closer, err := gcddom.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to open page: %s\n", err)
	}
	defer closer()

	domtest.Run(t, doc)
}

func TestNewNilTarget(t *testing.T) {
	if _, err := gcddom.New(nil, 0); !elemk.IsPrecondition(err) {
		t.Fatalf("expected precondition error got %v", err)
	}
}

func TestOpenWithoutTarget(t *testing.T) {
	if _, _, err := gcddom.Open(context.Background(), elemk.DefaultConfig()); !elemk.IsPrecondition(err) {
		t.Fatalf("expected precondition error got %v", err)
	}
}
