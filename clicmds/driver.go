package clicmds

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"gitlab.com/elemk/dom/cdpdom"
	"gitlab.com/elemk/dom/gcddom"
	"gitlab.com/elemk/dom/pwdom"
	"gitlab.com/elemk/dom/roddom"
	"gitlab.com/elemk/dom/staticdom"
	"gitlab.com/elemk/elemk"
)

func noop() {}

// openDocument for the configured driver, the returned func releases whatever
// the driver started
func openDocument(ctx context.Context, cfg *elemk.Config) (elemk.Document, func(), error) {
	switch cfg.Driver {
	case elemk.DriverStatic:
		return openStatic(ctx, cfg)
	case elemk.DriverGCD:
		doc, closer, err := gcddom.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return doc, closer, nil
	case elemk.DriverRod:
		doc, closer, err := roddom.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return doc, closer, nil
	case elemk.DriverPlaywright:
		doc, closer, err := pwdom.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return doc, closer, nil
	case elemk.DriverChromedp:
		doc, closer, err := cdpdom.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return doc, closer, nil
	}
	return nil, nil, errors.Wrap(elemk.ErrUnknownDriver, string(cfg.Driver))
}

func openStatic(ctx context.Context, cfg *elemk.Config) (elemk.Document, func(), error) {
	if cfg.File != "" {
		doc, err := staticdom.ParseFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		return doc, noop, nil
	}
	if cfg.URL == "" {
		return nil, nil, &elemk.PreconditionErr{Op: "open page", Value: "url or file"}
	}
	client := &http.Client{Timeout: cfg.Timeout()}
	doc, err := staticdom.Fetch(ctx, client, cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	return doc, noop, nil
}
