package commands

import (
	"context"
	"reflect"
	"runtime"

	"gitlab.com/elemk/elemk"
)

// MapFn calls fn with subject and returns its result. It is the compile time
// checked form of Chain.Map.
func MapFn[S, R any](ctx context.Context, subject S, fn func(ctx context.Context, subject S) (R, error)) (R, error) {
	if fn == nil {
		var zero R
		return zero, &elemk.PreconditionErr{Op: "map", Value: "function"}
	}
	logStep(ctx, "map", subject, funcName(fn), nil)
	return fn(ctx, subject)
}

// TapFn calls fn with subject and returns the subject again
func TapFn[S any](ctx context.Context, subject S, fn func(ctx context.Context, subject S) error) (S, error) {
	if fn == nil {
		var zero S
		return zero, &elemk.PreconditionErr{Op: "tap", Value: "function"}
	}
	logStep(ctx, "tap", subject, funcName(fn), nil)
	if err := fn(ctx, subject); err != nil {
		var zero S
		return zero, err
	}
	return subject, nil
}

func funcName(fn interface{}) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return ""
}
