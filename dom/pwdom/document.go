// Package pwdom implements elemk documents over playwright pages
package pwdom

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
	"gitlab.com/elemk/elemk"
)

// handles carry no node id, elements are tagged with an expando property once
const identityFn = `(el, id) => el.__elemkId || (el.__elemkId = id)`

const attributeFn = `(el, name) => el.getAttribute(name)`

// Document is the main frame of a playwright page
type Document struct {
	page playwright.Page
}

// New document over page
func New(page playwright.Page) (*Document, error) {
	if page == nil {
		return nil, &elemk.PreconditionErr{Op: "open page", Value: "page"}
	}
	return &Document{page: page}, nil
}

// Open starts playwright, launches chromium (or connects over CDP to
// cfg.ControlURL) and loads the configured target. The returned func stops
// everything Open started.
func Open(ctx context.Context, cfg *elemk.Config) (*Document, func(), error) {
	target, err := cfg.Target()
	if err != nil {
		return nil, nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not start playwright")
	}

	var browser playwright.Browser
	if cfg.ControlURL != "" {
		browser, err = pw.Chromium.ConnectOverCDP(cfg.ControlURL)
	} else {
		opts := playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(cfg.Headless)}
		if cfg.ChromePath != "" {
			opts.ExecutablePath = playwright.String(cfg.ChromePath)
		}
		browser, err = pw.Chromium.Launch(opts)
	}
	if err != nil {
		pw.Stop()
		return nil, nil, errors.Wrap(err, "could not launch browser")
	}
	closer := func() {
		if err := browser.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close browser")
		}
		if err := pw.Stop(); err != nil {
			log.Warn().Err(err).Msg("failed to stop playwright")
		}
	}

	page, err := browser.NewPage()
	if err != nil {
		closer()
		return nil, nil, errors.Wrap(err, "could not create page")
	}
	timeout := float64(cfg.Timeout().Milliseconds())
	page.SetDefaultTimeout(timeout)
	if _, err := page.Goto(target, playwright.PageGotoOptions{Timeout: playwright.Float(timeout)}); err != nil {
		closer()
		return nil, nil, errors.Wrapf(err, "failed to load %s", target)
	}
	log.Ctx(ctx).Debug().Str("url", target).Msg("page loaded")

	doc, _ := New(page)
	return doc, closer, nil
}

// ID of the document scope
func (d *Document) ID() string {
	return "document"
}

// QueryAll from the main frame
func (d *Document) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := d.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "querySelectorAll %s failed", selector)
	}
	return wrap(handles), nil
}

// Text of the document body
func (d *Document) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := d.page.Evaluate(`() => document.body ? document.body.textContent : ""`)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// Attribute documents have none
func (d *Document) Attribute(ctx context.Context, name string) (string, bool, error) {
	return "", false, nil
}

func wrap(handles []playwright.ElementHandle) []elemk.Element {
	elements := make([]elemk.Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &Element{handle: h})
	}
	return elements
}

// Element backed by a playwright element handle
type Element struct {
	handle playwright.ElementHandle

	idOnce sync.Once
	id     string
}

// ID tags the element on first use so later handles to the same node agree
func (e *Element) ID() string {
	e.idOnce.Do(func() {
		v, err := e.handle.Evaluate(identityFn, uuid.NewV4().String())
		if err != nil {
			log.Debug().Err(err).Msg("unable to tag element")
			return
		}
		e.id, _ = v.(string)
	})
	return e.id
}

// QueryAll descendants matching selector
func (e *Element) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := e.handle.QuerySelectorAll(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "querySelectorAll %s failed", selector)
	}
	return wrap(handles), nil
}

// Text content of the element
func (e *Element) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.handle.TextContent()
}

// Attribute name of the element
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	v, err := e.handle.Evaluate(attributeFn, name)
	if err != nil {
		return "", false, err
	}
	s, ok := v.(string)
	return s, ok, nil
}

// OuterHTML of the element
func (e *Element) OuterHTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := e.handle.Evaluate(`el => el.outerHTML`)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}
