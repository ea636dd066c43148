// Package domtest holds the behaviour every driver must share, run by each
// driver's tests against Page.
package domtest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/elemk/elemk"
	"gitlab.com/elemk/selector"
)

// Page every driver is checked against
const Page = `<!DOCTYPE html>
<html><head><title>conformance</title></head><body>
<ul id="fruit">
  <li class="list-item" data-marker="a">Apple</li>
  <li class="list-item" data-marker="b">Banana</li>
  <li class="list-item">Apple <b>Pie</b></li>
</ul>
<div class="panel" data-marker="outer"><div class="panel" data-marker="inner"><span>inner</span></div></div>
</body></html>`

// Serve Page over http for drivers that need a url
func Serve(t *testing.T) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(Page))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// Run the conformance checks against doc, which must have Page loaded
func Run(t *testing.T, doc elemk.Document) {
	t.Run("query", func(t *testing.T) { query(t, doc) })
	t.Run("descendants", func(t *testing.T) { descendants(t, doc) })
	t.Run("attributes", func(t *testing.T) { attributes(t, doc) })
	t.Run("invalid", func(t *testing.T) { invalid(t, doc) })
	t.Run("identity", func(t *testing.T) { identity(t, doc) })
	t.Run("selector", func(t *testing.T) { textMatch(t, doc) })
	t.Run("document text", func(t *testing.T) { documentText(t, doc) })
	t.Run("markup", func(t *testing.T) { markup(t, doc) })
}

func query(t *testing.T, doc elemk.Document) {
	ctx := context.Background()
	items, err := doc.QueryAll(ctx, ".list-item")
	require.NoError(t, err)
	require.Len(t, items, 3)

	texts, err := elemk.NodeSetOf(items...).Texts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Banana", "Apple Pie"}, texts)

	none, err := doc.QueryAll(ctx, ".missing")
	require.NoError(t, err, "no match is not an error")
	assert.Empty(t, none)
}

func descendants(t *testing.T, doc elemk.Document) {
	ctx := context.Background()
	outer, err := doc.QueryAll(ctx, "[data-marker=outer]")
	require.NoError(t, err)
	require.Len(t, outer, 1)

	inner, err := outer[0].QueryAll(ctx, ".panel")
	require.NoError(t, err)
	require.Len(t, inner, 1, "the scope element itself must not match")
	v, ok, err := inner[0].Attribute(ctx, "data-marker")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "inner", v)
}

func attributes(t *testing.T, doc elemk.Document) {
	ctx := context.Background()
	marked, err := doc.QueryAll(ctx, ".list-item[data-marker=b]")
	require.NoError(t, err)
	require.Len(t, marked, 1)

	v, ok, err := marked[0].Attribute(ctx, "data-marker")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok, err = marked[0].Attribute(ctx, "title")
	require.NoError(t, err)
	assert.False(t, ok)
}

func invalid(t *testing.T, doc elemk.Document) {
	_, err := doc.QueryAll(context.Background(), ".list-item[data-marker=")
	assert.Error(t, err)
}

func identity(t *testing.T, doc elemk.Document) {
	ctx := context.Background()
	first, err := doc.QueryAll(ctx, "li")
	require.NoError(t, err)
	second, err := doc.QueryAll(ctx, "#fruit li")
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.Len(t, second, 3)
	if first[0].ID() == "" {
		t.Skip("driver has no stable element identity")
	}
	for i := range first {
		assert.Equal(t, first[i].ID(), second[i].ID())
	}
	assert.NotEqual(t, first[0].ID(), first[1].ID())
}

func textMatch(t *testing.T, doc elemk.Document) {
	ctx := context.Background()
	set, err := selector.Query(ctx, doc, ".list-item", &elemk.Options{Text: elemk.String("Apple")})
	require.NoError(t, err)
	texts, err := set.Texts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Apple Pie"}, texts)

	set, err = selector.Query(ctx, doc, "li", &elemk.Options{Marker: "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func documentText(t *testing.T, doc elemk.Document) {
	text, err := doc.Text(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Banana")
	assert.NotContains(t, text, "conformance", "document text is the body text")
}

func markup(t *testing.T, doc elemk.Document) {
	ctx := context.Background()
	spans, err := doc.QueryAll(ctx, "[data-marker=inner] span")
	require.NoError(t, err)
	require.Len(t, spans, 1)
	el, ok := spans[0].(elemk.MarkupElement)
	if !ok {
		t.Skip("driver has no markup access")
	}
	html, err := el.OuterHTML(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<span>inner</span>", html)
}
