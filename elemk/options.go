package elemk

import "github.com/rs/zerolog"

// DefaultMarkerAttribute is appended to queries when Options.Marker is set
const DefaultMarkerAttribute = "data-marker"

// Options refine a selection. Create a fresh value per call, nothing here is
// mutated by the selector functions.
type Options struct {
	Root            Scope   // where to search, zero value is the whole document
	Marker          string  // matches [MarkerAttribute=Marker], takes precedence over CSS
	MarkerAttribute string  // defaults to DefaultMarkerAttribute
	CSS             string  // raw css fragment appended to the query
	Index           *int    // select the element at this position, takes precedence over Text
	Text            *string // keep elements whose text contains this
	Raw             bool    // return the node set instead of a component
}

// Int pointer for Options.Index
func Int(i int) *int {
	return &i
}

// String pointer for Options.Text
func String(s string) *string {
	return &s
}

// Attribute name used for markers
func (o *Options) Attribute() string {
	if o == nil || o.MarkerAttribute == "" {
		return DefaultMarkerAttribute
	}
	return o.MarkerAttribute
}

// MarshalZerologObject so options can be attached to trace records
func (o *Options) MarshalZerologObject(e *zerolog.Event) {
	if o == nil {
		return
	}
	e.Str("root", o.Root.Kind().String())
	if o.Marker != "" {
		e.Str("marker", o.Marker)
		e.Str("marker_attribute", o.Attribute())
	}
	if o.CSS != "" {
		e.Str("css", o.CSS)
	}
	if o.Index != nil {
		e.Int("index", *o.Index)
	}
	if o.Text != nil {
		e.Str("text", *o.Text)
	}
	e.Bool("raw", o.Raw)
}
