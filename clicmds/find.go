package clicmds

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/elemk/commands"
	"gitlab.com/elemk/elemk"
	"gitlab.com/elemk/jscomp"
	"gitlab.com/elemk/selector"
)

// FindFlags shared by find and findall
func FindFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "toml config to use, flags override it",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "driver",
			Usage: "static, gcd, rod, playwright or chromedp",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "page to load",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "local html file to load",
		},
		&cli.StringFlag{
			Name:  "chrome",
			Usage: "path to the browser binary",
		},
		&cli.StringFlag{
			Name:  "query",
			Usage: "base css query",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "marker",
			Usage: "match elements whose marker attribute has this value",
		},
		&cli.StringFlag{
			Name:  "marker-attr",
			Usage: "marker attribute name",
		},
		&cli.StringFlag{
			Name:  "css",
			Usage: "css fragment appended to the query",
		},
		&cli.IntFlag{
			Name:  "index",
			Usage: "select the match at this position, negative counts from the end",
		},
		&cli.StringFlag{
			Name:  "text",
			Usage: "keep matches containing this text",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "print the node set without creating components",
		},
		&cli.StringFlag{
			Name:  "component",
			Usage: "script component definition to create over matches",
		},
		&cli.StringFlag{
			Name:  "call",
			Usage: "method of each component to print",
		},
		&cli.BoolFlag{
			Name:  "html",
			Usage: "print the outer html of each match instead of its text",
		},
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "dump each result",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging and trace records",
		},
	}
}

// Find prints the single component created over every match
func Find(ctx *cli.Context) error {
	return run(ctx, false)
}

// FindAll prints one component per match
func FindAll(ctx *cli.Context) error {
	return run(ctx, true)
}

func run(c *cli.Context, all bool) error {
	cfg, err := configFrom(c)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if c.Bool("debug") {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: c.App.ErrWriter}).Level(level).With().Timestamp().Logger()
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		select {
		case <-sig:
			logger.Info().Msg("Ctrl-C Pressed, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	doc, closer, err := openDocument(ctx, cfg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("driver", string(cfg.Driver)).Msg("failed to open document")
		return err
	}
	defer closer()

	opts := optionsFrom(c, cfg)
	out := &printer{w: c.App.Writer, call: c.String("call"), html: c.Bool("html"), dump: c.Bool("dump")}

	if path := c.String("component"); path != "" {
		def, err := jscomp.LoadFile(path)
		if err != nil {
			return err
		}
		return search(ctx, doc, c.String("query"), def.Factory(ctx), opts, all, out)
	}
	return search(ctx, doc, c.String("query"), elemk.Factory[elemk.Component](elemk.NewComponent), opts, all, out)
}

func search[T elemk.Wrapper](ctx context.Context, doc elemk.Document, query string, factory elemk.Factory[T], opts *elemk.Options, all bool, out *printer) error {
	get := selector.Get[T]
	if all {
		get = selector.GetAll[T]
	}
	sel, err := get(ctx, doc, query, factory, opts)
	if err != nil {
		return err
	}

	if raw, ok := sel.Raw(); ok {
		return out.nodes(ctx, raw)
	}
	if sel.Absent() {
		fmt.Fprintln(out.w, "no matches")
		return nil
	}
	for i, comp := range sel.Components() {
		if err := out.component(ctx, i, comp); err != nil {
			return err
		}
	}
	return nil
}

func configFrom(c *cli.Context) (*elemk.Config, error) {
	cfg := elemk.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = elemk.LoadConfigFile(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet("driver") {
		cfg.Driver = elemk.DriverType(c.String("driver"))
	}
	if c.IsSet("url") {
		cfg.URL = c.String("url")
	}
	if c.IsSet("file") {
		cfg.File = c.String("file")
	}
	if c.IsSet("chrome") {
		cfg.ChromePath = c.String("chrome")
	}
	if c.IsSet("marker-attr") {
		cfg.MarkerAttribute = c.String("marker-attr")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func optionsFrom(c *cli.Context, cfg *elemk.Config) *elemk.Options {
	opts := &elemk.Options{
		Marker:          c.String("marker"),
		MarkerAttribute: cfg.MarkerAttribute,
		CSS:             c.String("css"),
		Raw:             c.Bool("raw"),
	}
	if c.IsSet("index") {
		opts.Index = elemk.Int(c.Int("index"))
	}
	if c.IsSet("text") {
		opts.Text = elemk.String(c.String("text"))
	}
	return opts
}

type printer struct {
	w    io.Writer
	call string
	html bool
	dump bool
}

func (p *printer) nodes(ctx context.Context, set *elemk.NodeSet) error {
	texts, err := p.texts(ctx, set)
	if err != nil {
		return err
	}
	for i, text := range texts {
		fmt.Fprintf(p.w, "%d: %s\n", i, text)
	}
	if p.dump {
		spew.Fdump(p.w, texts)
	}
	return nil
}

func (p *printer) component(ctx context.Context, i int, comp elemk.Wrapper) error {
	var value interface{}
	if p.call != "" {
		v, err := commands.Wrap(ctx, comp).Map(p.call).Value()
		if err != nil {
			return err
		}
		value = v
	} else {
		texts, err := p.texts(ctx, elemk.NodesOf(comp))
		if err != nil {
			return err
		}
		value = strings.Join(texts, "")
	}

	fmt.Fprintf(p.w, "%d: %v\n", i, value)
	if p.dump {
		spew.Fdump(p.w, value)
	}
	return nil
}

// texts of each node, or their markup when html is set
func (p *printer) texts(ctx context.Context, set *elemk.NodeSet) ([]string, error) {
	if !p.html {
		return set.Texts(ctx)
	}
	out := make([]string, 0, set.Len())
	for _, el := range set.Elements() {
		m, ok := el.(elemk.MarkupElement)
		if !ok {
			return nil, errors.Errorf("element %s has no markup access", el.ID())
		}
		html, err := m.OuterHTML(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, html)
	}
	return out, nil
}
