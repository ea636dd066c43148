package jscomp

import (
	"github.com/dop251/goja"
	"gitlab.com/elemk/elemk"
)

// elementValue exposes nodes to scripts as this.element:
//
//	len()          number of elements
//	text()         joined text content
//	texts()        text content of every element
//	attr(name)     attribute of the first element or null
//	find(css)      descendants matching css
//	eq(i)          element at position i
//	contains(text) elements whose text contains text
func (c *Component) elementValue(nodes *elemk.NodeSet) goja.Value {
	vm := c.vm
	obj := vm.NewObject()
	obj.DefineDataProperty(nodesKey, vm.ToValue(nodes), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_FALSE)

	obj.Set("len", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(nodes.Len())
	})
	obj.Set("text", func(goja.FunctionCall) goja.Value {
		text, err := nodes.Text(c.ctx)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(text)
	})
	obj.Set("texts", func(goja.FunctionCall) goja.Value {
		texts, err := nodes.Texts(c.ctx)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		items := make([]interface{}, len(texts))
		for i, t := range texts {
			items[i] = t
		}
		return vm.NewArray(items...)
	})
	obj.Set("attr", func(call goja.FunctionCall) goja.Value {
		v, ok, err := nodes.Attribute(c.ctx, call.Argument(0).String())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		if !ok {
			return goja.Null()
		}
		return vm.ToValue(v)
	})
	obj.Set("find", func(call goja.FunctionCall) goja.Value {
		found, err := nodes.Find(c.ctx, call.Argument(0).String())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return c.elementValue(found)
	})
	obj.Set("eq", func(call goja.FunctionCall) goja.Value {
		return c.elementValue(nodes.Eq(int(call.Argument(0).ToInteger())))
	})
	obj.Set("contains", func(call goja.FunctionCall) goja.Value {
		found, err := nodes.Contains(c.ctx, call.Argument(0).String())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return c.elementValue(found)
	})
	return obj
}
