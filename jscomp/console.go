package jscomp

import (
	"strings"

	"github.com/dop251/goja"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// console routes script console output to the logger of the calling context
func (c *Component) console() *goja.Object {
	obj := c.vm.NewObject()
	obj.Set("log", c.consoleFn(zerolog.InfoLevel))
	obj.Set("info", c.consoleFn(zerolog.InfoLevel))
	obj.Set("debug", c.consoleFn(zerolog.DebugLevel))
	obj.Set("warn", c.consoleFn(zerolog.WarnLevel))
	obj.Set("error", c.consoleFn(zerolog.ErrorLevel))
	return obj
}

func (c *Component) consoleFn(level zerolog.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		log.Ctx(c.ctx).WithLevel(level).
			Str("component", c.def.name).
			Msg(strings.Join(parts, " "))
		return goja.Undefined()
	}
}
