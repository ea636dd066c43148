// Package cdpdom implements elemk documents over a chromedp tab, talking to
// the DOM domain directly so queries never poll.
package cdpdom

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/elemk/dom/scripts"
	"gitlab.com/elemk/elemk"
)

// Document is the top level document of a chromedp tab
type Document struct {
	tabCtx  context.Context
	timeout time.Duration
	textFn  string

	rootLock sync.Mutex
	rootID   cdp.NodeID
}

// New document over the tab of tabCtx, which must come from chromedp.NewContext
func New(tabCtx context.Context, timeout time.Duration) (*Document, error) {
	if chromedp.FromContext(tabCtx) == nil {
		return nil, &elemk.PreconditionErr{Op: "open tab", Value: "chromedp context"}
	}
	textFn, err := scripts.Get(scripts.TextContent)
	if err != nil {
		return nil, err
	}
	return &Document{tabCtx: tabCtx, timeout: timeout, textFn: textFn}, nil
}

// Open allocates a browser, or connects to cfg.ControlURL, and loads the
// configured target. The returned func closes the tab and the browser.
func Open(ctx context.Context, cfg *elemk.Config) (*Document, func(), error) {
	target, err := cfg.Target()
	if err != nil {
		return nil, nil, err
	}

	var allocCtx context.Context
	var cancelAlloc context.CancelFunc
	if cfg.ControlURL != "" {
		allocCtx, cancelAlloc = chromedp.NewRemoteAllocator(ctx, cfg.ControlURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", cfg.Headless))
		if cfg.ChromePath != "" {
			opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
		}
		allocCtx, cancelAlloc = chromedp.NewExecAllocator(ctx, opts...)
	}
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	closer := func() {
		cancelTab()
		cancelAlloc()
	}

	// the first run starts the browser and must not carry a deadline
	if err := chromedp.Run(tabCtx); err != nil {
		closer()
		return nil, nil, errors.Wrap(err, "failed to start browser")
	}

	navCtx, cancel := context.WithTimeout(tabCtx, cfg.Timeout())
	defer cancel()
	if err := chromedp.Run(navCtx, chromedp.Navigate(target)); err != nil {
		closer()
		return nil, nil, errors.Wrapf(err, "failed to load %s", target)
	}
	log.Ctx(ctx).Debug().Str("url", target).Msg("page loaded")

	doc, err := New(tabCtx, cfg.Timeout())
	if err != nil {
		closer()
		return nil, nil, err
	}
	return doc, closer, nil
}

// run fn on the tab, bounded by the document timeout and cancelled with ctx
func (d *Document) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(d.tabCtx, d.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, chromedp.ActionFunc(fn))
}

func (d *Document) root(ctx context.Context) (cdp.NodeID, error) {
	d.rootLock.Lock()
	defer d.rootLock.Unlock()
	if d.rootID != 0 {
		return d.rootID, nil
	}
	err := d.run(ctx, func(ctx context.Context) error {
		node, err := dom.GetDocument().WithDepth(0).Do(ctx)
		if err != nil {
			return err
		}
		d.rootID = node.NodeID
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to get document")
	}
	return d.rootID, nil
}

// ID of the document scope
func (d *Document) ID() string {
	return "document"
}

// QueryAll from the top level document
func (d *Document) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	id, err := d.root(ctx)
	if err != nil {
		return nil, err
	}
	return d.element(id).QueryAll(ctx, selector)
}

// Text of the document body
func (d *Document) Text(ctx context.Context) (string, error) {
	body, err := d.QueryAll(ctx, "body")
	if err != nil || len(body) == 0 {
		return "", err
	}
	return body[0].Text(ctx)
}

// Attribute documents have none
func (d *Document) Attribute(ctx context.Context, name string) (string, bool, error) {
	return "", false, nil
}

func (d *Document) element(id cdp.NodeID) *Element {
	return &Element{doc: d, nodeID: id}
}

// Element is a node of the document, addressed by its node id
type Element struct {
	doc    *Document
	nodeID cdp.NodeID
}

// ID is the devtools node id
func (e *Element) ID() string {
	return strconv.FormatInt(int64(e.nodeID), 10)
}

// QueryAll descendants matching selector
func (e *Element) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	var ids []cdp.NodeID
	err := e.doc.run(ctx, func(ctx context.Context) error {
		var err error
		ids, err = dom.QuerySelectorAll(e.nodeID, selector).Do(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "querySelectorAll %s failed", selector)
	}

	elements := make([]elemk.Element, 0, len(ids))
	for _, id := range ids {
		elements = append(elements, e.doc.element(id))
	}
	return elements, nil
}

// Text content of the element
func (e *Element) Text(ctx context.Context) (string, error) {
	var text string
	err := e.doc.run(ctx, func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(e.nodeID).Do(ctx)
		if err != nil {
			return err
		}
		res, exp, err := runtime.CallFunctionOn(e.doc.textFn).
			WithObjectID(obj.ObjectID).
			WithReturnByValue(true).
			WithSilent(true).
			Do(ctx)
		if err != nil {
			return err
		}
		if exp != nil {
			return errors.Errorf("script exception on node %d: %s", e.nodeID, exp.Text)
		}
		if res == nil || len(res.Value) == 0 {
			return nil
		}
		return json.Unmarshal([]byte(res.Value), &text)
	})
	return text, err
}

// Attribute name of the element
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	var attrs []string
	err := e.doc.run(ctx, func(ctx context.Context) error {
		var err error
		attrs, err = dom.GetAttributes(e.nodeID).Do(ctx)
		return err
	})
	if err != nil {
		return "", false, err
	}

	name = strings.ToLower(name)
	for i := 0; i+1 < len(attrs); i += 2 {
		if strings.ToLower(attrs[i]) == name {
			return attrs[i+1], true, nil
		}
	}
	return "", false, nil
}

// OuterHTML of the element
func (e *Element) OuterHTML(ctx context.Context) (string, error) {
	var markup string
	err := e.doc.run(ctx, func(ctx context.Context) error {
		var err error
		markup, err = dom.GetOuterHTML().WithNodeID(e.nodeID).Do(ctx)
		return err
	})
	return markup, err
}
