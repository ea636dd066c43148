package selector

import "gitlab.com/elemk/elemk"

// BuildQuery appends the marker attribute filter, or failing that the raw css
// fragment, to base. The fragment is not validated, a malformed one fails when
// the query is executed.
func BuildQuery(base string, opts *elemk.Options) string {
	if opts == nil {
		return base
	}
	if opts.Marker != "" {
		return base + "[" + opts.Attribute() + "=" + opts.Marker + "]"
	}
	if opts.CSS != "" {
		return base + opts.CSS
	}
	return base
}
