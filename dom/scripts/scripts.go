// Package scripts holds the javascript function declarations the devtools
// drivers call on remote nodes.
package scripts

import (
	"sync"

	"github.com/gobuffalo/packr/v2"
	"github.com/pkg/errors"
)

// revive:exported
const (
	TextContent = "text_content.js"
	OuterHTML   = "outer_html.js"
)

var (
	boxOnce sync.Once
	box     *packr.Box
)

func scriptBox() *packr.Box {
	boxOnce.Do(func() {
		box = packr.New("elemk-scripts", "./js")
	})
	return box
}

// Get the function declaration called name
func Get(name string) (string, error) {
	src, err := scriptBox().FindString(name)
	if err != nil {
		return "", errors.Wrapf(err, "script %s not found", name)
	}
	return src, nil
}
