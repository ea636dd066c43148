package gcddom

import (
	"context"

	"github.com/rs/zerolog/log"
	"gitlab.com/elemk/elemk"
)

// Open leases a browser, loads the configured target in its first tab and
// returns a func that returns the browser, removing its profile.
func Open(ctx context.Context, cfg *elemk.Config) (*Document, func(), error) {
	target, err := cfg.Target()
	if err != nil {
		return nil, nil, err
	}

	leaser := NewLocalLeaser(cfg.ChromePath, cfg.Headless, cfg.Timeout())
	port, err := leaser.Acquire()
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := leaser.Return(port); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("port", port).Msg("failed to return browser")
		}
	}

	doc, err := leaser.Open(ctx, port)
	if err != nil {
		closer()
		return nil, nil, err
	}
	if err := doc.Navigate(ctx, target); err != nil {
		closer()
		return nil, nil, err
	}
	return doc, closer, nil
}
