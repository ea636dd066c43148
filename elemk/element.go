package elemk

import "context"

// Element is a single DOM element as exposed by a driver
type Element interface {
	// ID of the underlying node, empty if the driver can not provide a stable one
	ID() string
	// QueryAll descendants matching a css selector, in document order
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	// Text content of the element and all of its descendants
	Text(ctx context.Context) (string, error)
	// Attribute value and whether it exists
	Attribute(ctx context.Context, name string) (string, bool, error)
}

// Document is the whole-document scope of a page. Searching it searches
// every element on the page, its Text is the text of the body.
type Document interface {
	Element
}

// MarkupElement is implemented by drivers that can render an element back to
// its outer html
type MarkupElement interface {
	Element
	OuterHTML(ctx context.Context) (string, error)
}
