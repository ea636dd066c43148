package jscomp

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/dop251/goja"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/elemk/elemk"
)

// Definition of a script component. The script's completion value must be a
// constructor taking the element api as its only argument:
//
//	(function () {
//		function TodoList(element) { this.element = element; }
//		TodoList.prototype.count = function () { return this.element.find("li").len(); };
//		return TodoList;
//	})()
type Definition struct {
	name    string
	program *goja.Program
}

// Load compiles source into a component definition called name
func Load(name, source string) (*Definition, error) {
	program, err := goja.Compile(name, source, false)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile component %s", name)
	}
	return &Definition{name: name, program: program}, nil
}

// LoadFile compiles the script at path, the component is named after the file
func LoadFile(path string) (*Definition, error) {
	src, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Load(name, string(src))
}

// Name of the component
func (d *Definition) Name() string {
	return d.name
}

// New runs the definition in a fresh runtime and constructs an instance over
// nodes. Every instance owns its runtime.
func (d *Definition) New(ctx context.Context, nodes *elemk.NodeSet) (*Component, error) {
	if nodes == nil {
		return nil, &elemk.PreconditionErr{Op: "tried to create " + d.name, Value: "subject"}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Component{
		Component: elemk.NewComponent(nodes),
		def:       d,
		vm:        goja.New(),
		ctx:       ctx,
	}
	c.vm.Set("console", c.console())

	ctor, err := c.vm.RunProgram(d.program)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to run component %s", d.name)
	}
	if _, ok := goja.AssertFunction(ctor); !ok {
		return nil, errors.Errorf("component %s did not evaluate to a constructor", d.name)
	}

	obj, err := c.vm.New(ctor, c.elementValue(nodes))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct component %s", d.name)
	}
	c.obj = obj
	log.Ctx(ctx).Debug().Str("component", d.name).Int("elements", nodes.Len()).Msg("created script component")
	return c, nil
}

// Factory for the selector functions. Construction errors are kept on the
// component and returned from its first property read or method call.
func (d *Definition) Factory(ctx context.Context) elemk.Factory[*Component] {
	return func(nodes *elemk.NodeSet) *Component {
		c, err := d.New(ctx, nodes)
		if err != nil {
			return &Component{Component: elemk.NewComponent(nodes), def: d, ctx: ctx, err: err}
		}
		return c
	}
}
