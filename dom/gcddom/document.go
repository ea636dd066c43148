// Package gcddom implements elemk documents over a Chrome tab driven with gcd
package gcddom

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/elemk/dom/scripts"
	"gitlab.com/elemk/elemk"
)

// revive:exported
var (
	ErrNavigationTimedOut = errors.New("navigation timed out")
	ErrNavigating         = errors.New("error in navigation")
)

// Document is the top level document of a tab. Node ids are only valid until
// the next navigation.
type Document struct {
	target  *gcd.ChromeTarget
	timeout time.Duration

	textFn string
	htmlFn string

	rootLock sync.Mutex
	rootID   int
}

// New document over target, enabling the DOM and Page domains
func New(target *gcd.ChromeTarget, timeout time.Duration) (*Document, error) {
	if target == nil {
		return nil, &elemk.PreconditionErr{Op: "open tab", Value: "target"}
	}
	textFn, err := scripts.Get(scripts.TextContent)
	if err != nil {
		return nil, err
	}
	htmlFn, err := scripts.Get(scripts.OuterHTML)
	if err != nil {
		return nil, err
	}

	if _, err := target.DOM.Enable(); err != nil {
		return nil, errors.Wrap(err, "failed to enable DOM")
	}
	if _, err := target.Page.Enable(); err != nil {
		return nil, errors.Wrap(err, "failed to enable Page")
	}
	return &Document{target: target, timeout: timeout, textFn: textFn, htmlFn: htmlFn}, nil
}

// Navigate to url and wait for the load event
func (d *Document) Navigate(ctx context.Context, url string) error {
	loaded := make(chan struct{}, 1)
	d.target.Subscribe("Page.loadEventFired", func(target *gcd.ChromeTarget, payload []byte) {
		select {
		case loaded <- struct{}{}:
		default:
		}
	})
	defer d.target.Unsubscribe("Page.loadEventFired")

	navParams := &gcdapi.PageNavigateParams{Url: url, TransitionType: "typed"}
	_, _, errText, err := d.target.Page.NavigateWithParams(navParams)
	if err != nil {
		return err
	}
	if errText != "" {
		return errors.Wrap(ErrNavigating, errText)
	}

	select {
	case <-loaded:
	case <-time.After(d.timeout):
		return ErrNavigationTimedOut
	case <-ctx.Done():
		return ctx.Err()
	}

	d.rootLock.Lock()
	d.rootID = 0
	d.rootLock.Unlock()
	log.Ctx(ctx).Debug().Str("url", url).Msg("navigation complete")
	return nil
}

func (d *Document) root() (int, error) {
	d.rootLock.Lock()
	defer d.rootLock.Unlock()
	if d.rootID != 0 {
		return d.rootID, nil
	}
	doc, err := d.target.DOM.GetDocument(-1, false)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get document")
	}
	d.rootID = doc.NodeId
	return d.rootID, nil
}

// ID of the document scope
func (d *Document) ID() string {
	return "document"
}

// QueryAll from the top level document
func (d *Document) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	id, err := d.root()
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

func (d *Document) element(nodeID int) *Element {
	return &Element{doc: d, nodeID: nodeID}
}

// Element is a node of the document, addressed by its node id
type Element struct {
	doc    *Document
	nodeID int
}

// ID is the devtools node id
func (e *Element) ID() string {
	return strconv.Itoa(e.nodeID)
}

// QueryAll descendants matching selector
func (e *Element) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nodeIDs, err := e.doc.target.DOM.QuerySelectorAll(e.nodeID, selector)
	if err != nil {
		return nil, errors.Wrapf(err, "querySelectorAll %s failed", selector)
	}

	elements := make([]elemk.Element, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		if id == 0 {
			continue
		}
		elements = append(elements, e.doc.element(id))
	}
	return elements, nil
}

// Text content of the element
func (e *Element) Text(ctx context.Context) (string, error) {
	return e.callString(ctx, e.doc.textFn)
}

// OuterHTML of the element
func (e *Element) OuterHTML(ctx context.Context) (string, error) {
	return e.callString(ctx, e.doc.htmlFn)
}

// Attribute name of the element
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	attrs, err := e.doc.target.DOM.GetAttributes(e.nodeID)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to get attributes of node %d", e.nodeID)
	}
	v, ok := attributeValue(attrs, name)
	return v, ok, nil
}

func (e *Element) callString(ctx context.Context, fn string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	obj, err := e.doc.target.DOM.ResolveNodeWithParams(&gcdapi.DOMResolveNodeParams{NodeId: e.nodeID, ObjectGroup: "elemk"})
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve node %d", e.nodeID)
	}

	params := &gcdapi.RuntimeCallFunctionOnParams{
		FunctionDeclaration: fn,
		ObjectId:            obj.ObjectId,
		Silent:              true,
		ReturnByValue:       true,
	}
	r, exp, err := e.doc.target.Runtime.CallFunctionOnWithParams(params)
	if err != nil {
		return "", err
	}
	if exp != nil {
		return "", errors.Errorf("script exception on node %d: %s", e.nodeID, exp.Text)
	}
	if r == nil || r.Value == nil {
		return "", nil
	}
	if s, ok := r.Value.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", r.Value), nil
}
