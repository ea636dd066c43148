package elemk_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"gitlab.com/elemk/elemk"
)

func TestLoadConfig(t *testing.T) {
	data := `
driver = "rod"
url = "http://localhost:8080/"
marker_attribute = "data-cy"
timeout_seconds = 5
`
	cfg, err := elemk.LoadConfig(strings.NewReader(data))
	if err != nil {
		t.Fatalf("error loading config: %s\n", err)
	}
	if cfg.Driver != elemk.DriverRod {
		t.Fatalf("expected rod driver got %s", cfg.Driver)
	}
	if cfg.MarkerAttribute != "data-cy" || cfg.TimeoutSeconds != 5 {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if !cfg.Headless {
		t.Fatalf("headless default should survive decoding")
	}
}

func TestLoadConfigUnknownDriver(t *testing.T) {
	_, err := elemk.LoadConfig(strings.NewReader(`driver = "netscape"`))
	if errors.Cause(err) != elemk.ErrUnknownDriver {
		t.Fatalf("expected unknown driver err got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := elemk.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %s\n", err)
	}
	if cfg.Driver != elemk.DriverStatic || cfg.MarkerAttribute != elemk.DefaultMarkerAttribute {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
}

func TestConfigTarget(t *testing.T) {
	cfg := elemk.DefaultConfig()
	if _, err := cfg.Target(); !elemk.IsPrecondition(err) {
		t.Fatalf("expected precondition error without url or file got %v", err)
	}

	cfg.File = "/tmp/page one.html"
	target, err := cfg.Target()
	if err != nil {
		t.Fatalf("error building target: %s\n", err)
	}
	if target != "file:///tmp/page%20one.html" {
		t.Fatalf("unexpected file target %s", target)
	}

	cfg.URL = "http://localhost:8080/"
	if target, _ = cfg.Target(); target != cfg.URL {
		t.Fatalf("url must win over file got %s", target)
	}
	if cfg.Timeout().Seconds() != 30 {
		t.Fatalf("unexpected timeout %s", cfg.Timeout())
	}
}
