package jscomp

import (
	"context"
	"sync"

	"github.com/dop251/goja"
	"github.com/pkg/errors"
	"gitlab.com/elemk/elemk"
)

const nodesKey = "__nodes"

// Component instance of a script definition. Properties and methods are
// resolved on the script object at call time.
type Component struct {
	elemk.Component
	def *Definition
	err error

	mu  sync.Mutex
	vm  *goja.Runtime
	obj *goja.Object
	ctx context.Context
}

// Name of the component's definition
func (c *Component) Name() string {
	return c.def.name
}

// Err from constructing the component
func (c *Component) Err() error {
	return c.err
}

// Property of the script object. Element api values are returned as node sets.
func (c *Component) Property(ctx context.Context, name string) (interface{}, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx != nil {
		c.ctx = ctx
	}

	v := c.obj.Get(name)
	if v == nil {
		return nil, &elemk.MissingMemberErr{Member: name}
	}
	return c.export(v), nil
}

// Invoke method on the script object. Node sets and components passed as
// arguments reach the script as element api values.
func (c *Component) Invoke(ctx context.Context, method string, args ...interface{}) (interface{}, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx != nil {
		c.ctx = ctx
	}

	fn, ok := goja.AssertFunction(c.obj.Get(method))
	if !ok {
		return nil, &elemk.MissingMemberErr{Member: method}
	}

	jsArgs := make([]goja.Value, len(args))
	for i, a := range args {
		jsArgs[i] = c.toValue(a)
	}
	ret, err := fn(c.obj, jsArgs...)
	if err != nil {
		return nil, errors.Wrapf(unwrapGoError(err), "%s.%s", c.def.name, method)
	}
	return c.export(ret), nil
}

func (c *Component) toValue(a interface{}) goja.Value {
	switch v := a.(type) {
	case *elemk.NodeSet:
		if v != nil {
			return c.elementValue(v)
		}
	case elemk.Wrapper:
		if nodes := elemk.NodesOf(v); nodes != nil {
			return c.elementValue(nodes)
		}
	}
	return c.vm.ToValue(a)
}

func (c *Component) export(v goja.Value) interface{} {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	if obj, ok := v.(*goja.Object); ok {
		if hidden := obj.Get(nodesKey); hidden != nil {
			if nodes, ok := hidden.Export().(*elemk.NodeSet); ok {
				return nodes
			}
		}
	}
	return v.Export()
}

// unwrapGoError returns the Go error a native function panicked with, so
// callers can still inspect query errors raised inside scripts
func unwrapGoError(err error) error {
	ex, ok := err.(*goja.Exception)
	if !ok {
		return err
	}
	obj, ok := ex.Value().(*goja.Object)
	if !ok {
		return err
	}
	if v := obj.Get("value"); v != nil {
		if goErr, ok := v.Export().(error); ok {
			return goErr
		}
	}
	return err
}
