// Package staticdom is an offline driver over a parsed HTML document. Queries
// are css selectors matched with cascadia, text is the DOM textContent.
package staticdom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"gitlab.com/elemk/elemk"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed page
type Document struct {
	root *html.Node
}

// Parse an html document
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse document")
	}
	return &Document{root: root}, nil
}

// ParseString parses src as an html document
func ParseString(src string) (*Document, error) {
	return Parse(strings.NewReader(src))
}

// ParseFile parses the html document at path
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Fetch and parse the document at url. Scripts are not run.
func Fetch(ctx context.Context, client *http.Client, url string) (*Document, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, errors.Errorf("failed to fetch %s: %s", url, resp.Status)
	}
	return Parse(resp.Body)
}

// Node is the root #document node
func (d *Document) Node() *html.Node {
	return d.root
}

// ID of the document
func (d *Document) ID() string {
	return "document"
}

// QueryAll elements in the document matching selector
func (d *Document) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	return queryAll(d.root, selector)
}

// Text content of the document body
func (d *Document) Text(ctx context.Context) (string, error) {
	if b := body(d.root); b != nil {
		return textContent(b), nil
	}
	return "", nil
}

// Attribute documents have none
func (d *Document) Attribute(ctx context.Context, name string) (string, bool, error) {
	return "", false, nil
}

// Element is a parsed element node
type Element struct {
	node *html.Node
}

// Node underlying this element
func (e *Element) Node() *html.Node {
	return e.node
}

// ID is the node's address, stable for the life of the Document
func (e *Element) ID() string {
	return fmt.Sprintf("%p", e.node)
}

// QueryAll descendants matching selector
func (e *Element) QueryAll(ctx context.Context, selector string) ([]elemk.Element, error) {
	return queryAll(e.node, selector)
}

// Text content of this element
func (e *Element) Text(ctx context.Context) (string, error) {
	return textContent(e.node), nil
}

// Attribute value, names are matched case insensitive
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	name = strings.ToLower(name)
	for _, attr := range e.node.Attr {
		if strings.ToLower(attr.Key) == name {
			return attr.Val, true, nil
		}
	}
	return "", false, nil
}

// OuterHTML renders the element back to markup
func (e *Element) OuterHTML(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func body(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := body(c); b != nil {
			return b
		}
	}
	return nil
}

func queryAll(n *html.Node, selector string) ([]elemk.Element, error) {
	m, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid selector %q", selector)
	}
	nodes := cascadia.QueryAll(n, m)
	elements := make([]elemk.Element, len(nodes))
	for i, node := range nodes {
		elements[i] = &Element{node: node}
	}
	return elements, nil
}

func textContent(n *html.Node) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
