package elemk

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// DriverType selects which browser driver backs the Document
type DriverType string

// revive:exported
const (
	DriverStatic     DriverType = "static"
	DriverGCD        DriverType = "gcd"
	DriverRod        DriverType = "rod"
	DriverPlaywright DriverType = "playwright"
	DriverChromedp   DriverType = "chromedp"
)

// Drivers known to the cli
var Drivers = []DriverType{DriverStatic, DriverGCD, DriverRod, DriverPlaywright, DriverChromedp}

// Config for elemk
type Config struct {
	Driver          DriverType `toml:"driver"`
	URL             string     `toml:"url"`
	File            string     `toml:"file"`
	MarkerAttribute string     `toml:"marker_attribute"`
	ChromePath      string     `toml:"chrome_path"`
	ControlURL      string     `toml:"control_url"` // attach to a running browser instead of launching one
	TimeoutSeconds  int        `toml:"timeout_seconds"`
	Headless        bool       `toml:"headless"`
}

// DefaultConfig used when no config file is given
func DefaultConfig() *Config {
	return &Config{
		Driver:          DriverStatic,
		MarkerAttribute: DefaultMarkerAttribute,
		TimeoutSeconds:  30,
		Headless:        true,
	}
}

// LoadConfig decodes a toml config, unset fields keep their defaults
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile from path
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config %s", path)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate the driver and timeouts
func (c *Config) Validate() error {
	known := false
	for _, d := range Drivers {
		if c.Driver == d {
			known = true
			break
		}
	}
	if !known {
		return errors.Wrap(ErrUnknownDriver, string(c.Driver))
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds must be positive")
	}
	if c.MarkerAttribute == "" {
		c.MarkerAttribute = DefaultMarkerAttribute
	}
	return nil
}

// Timeout for navigation and browser start up
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Target the browser drivers navigate to, the url or the file as a file url
func (c *Config) Target() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	if c.File == "" {
		return "", &PreconditionErr{Op: "open page", Value: "url or file"}
	}
	abs, err := filepath.Abs(c.File)
	if err != nil {
		return "", errors.Wrapf(err, "invalid file %s", c.File)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
