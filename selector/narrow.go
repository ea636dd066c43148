package selector

import (
	"context"

	"gitlab.com/elemk/elemk"
)

// Narrow the result set by index, or if no index is given by text. When both
// are set the index wins and the text is ignored.
func Narrow(ctx context.Context, set *elemk.NodeSet, opts *elemk.Options) (*elemk.NodeSet, error) {
	if opts == nil {
		return set, nil
	}
	if opts.Index != nil {
		return set.Eq(*opts.Index), nil
	}
	if opts.Text != nil {
		return set.Contains(ctx, *opts.Text)
	}
	return set, nil
}
