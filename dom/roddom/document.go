// Package roddom implements elemk documents over go-rod pages
package roddom

import (
	"context"
	"strconv"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/elemk/dom/scripts"
	"gitlab.com/elemk/elemk"
)

// Document is the top level document of a rod page
type Document struct {
	page   *rod.Page
	textFn string
}

// New document over page
func New(page *rod.Page) (*Document, error) {
	if page == nil {
		return nil, &elemk.PreconditionErr{Op: "open page", Value: "page"}
	}
	textFn, err := scripts.Get(scripts.TextContent)
	if err != nil {
		return nil, err
	}
	return &Document{page: page, textFn: textFn}, nil
}

// Open launches chrome, or connects to cfg.ControlURL, and loads the
// configured target. The returned func closes everything Open started.
func Open(ctx context.Context, cfg *elemk.Config) (*Document, func(), error) {
	target, err := cfg.Target()
	if err != nil {
		return nil, nil, err
	}

	controlURL := cfg.ControlURL
	var l *launcher.Launcher
	if controlURL == "" {
		l = launcher.New().Headless(cfg.Headless)
		if cfg.ChromePath != "" {
			l = l.Bin(cfg.ChromePath)
		}
		if controlURL, err = l.Launch(); err != nil {
			return nil, nil, errors.Wrap(err, "failed to launch browser")
		}
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Cleanup()
		}
		return nil, nil, errors.Wrap(err, "failed to connect to browser")
	}
	closer := func() {
		if err := browser.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close browser")
		}
		if l != nil {
			l.Cleanup()
		}
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		closer()
		return nil, nil, errors.Wrapf(err, "failed to open %s", target)
	}
	if err := page.Timeout(cfg.Timeout()).WaitLoad(); err != nil {
		closer()
		return nil, nil, errors.Wrapf(err, "failed to load %s", target)
	}
	log.Ctx(ctx).Debug().Str("url", target).Msg("page loaded")

	doc, err := New(page)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return doc, closer, nil
}

// ID of the document scope
func (d *Document) ID() string {
	return "document"
}

// QueryAll from the top level document
func (d *Document) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	found, err := d.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "querySelectorAll %s failed", selector)
	}
	return d.wrap(found), nil
}

// Text of the document body
func (d *Document) Text(ctx context.Context) (string, error) {
	res, err := d.page.Context(ctx).Eval(`() => document.body ? document.body.textContent : ""`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Attribute documents have none
func (d *Document) Attribute(ctx context.Context, name string) (string, bool, error) {
	return "", false, nil
}

func (d *Document) wrap(found rod.Elements) []elemk.Element {
	elements := make([]elemk.Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, &Element{doc: d, el: el})
	}
	return elements
}

// Element backed by a rod element
type Element struct {
	doc *Document
	el  *rod.Element

	idOnce sync.Once
	id     string
}

// ID is the backend node id, stable across remote object handles
func (e *Element) ID() string {
	e.idOnce.Do(func() {
		node, err := e.el.Describe(0, false)
		if err != nil {
			log.Debug().Err(err).Msg("unable to describe element")
			return
		}
		e.id = strconv.Itoa(int(node.BackendNodeID))
	})
	return e.id
}

// QueryAll descendants matching selector
func (e *Element) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	found, err := e.el.Context(ctx).Elements(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "querySelectorAll %s failed", selector)
	}
	return e.doc.wrap(found), nil
}

// Text content of the element
func (e *Element) Text(ctx context.Context) (string, error) {
	res, err := e.el.Context(ctx).Eval(e.doc.textFn)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Attribute name of the element
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// OuterHTML of the element
func (e *Element) OuterHTML(ctx context.Context) (string, error) {
	return e.el.Context(ctx).HTML()
}
