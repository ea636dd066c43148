package commands

import (
	"context"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gitlab.com/elemk/elemk"
)

// PropertyReader is implemented by subjects that resolve their own properties,
// script components for example. Subjects that don't are read by reflection.
type PropertyReader interface {
	Property(ctx context.Context, name string) (interface{}, error)
}

// MethodInvoker is implemented by subjects that dispatch their own methods
type MethodInvoker interface {
	Invoke(ctx context.Context, method string, args ...interface{}) (interface{}, error)
}

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// ReadProperty name of subject. Exported struct fields are read first, then
// getters (no arguments besides an optional context).
func ReadProperty(ctx context.Context, subject interface{}, name string) (interface{}, error) {
	if elemk.IsNil(subject) {
		return nil, &elemk.PreconditionErr{Op: "read " + name, Value: "subject", Err: elemk.ErrNilSubject}
	}
	if r, ok := subject.(PropertyReader); ok {
		return r.Property(ctx, name)
	}

	v := reflect.ValueOf(subject)
	if f, ok := fieldByName(v, name); ok {
		return f.Interface(), nil
	}
	if m, ok := methodByName(v, name); ok && isGetter(m.Type()) {
		return call(ctx, m, nil)
	}
	return nil, &elemk.MissingMemberErr{Member: name}
}

// InvokeMethod on subject by name with args. A leading context.Context
// parameter is filled in with ctx, a trailing error result is returned as the
// error.
func InvokeMethod(ctx context.Context, subject interface{}, method string, args ...interface{}) (interface{}, error) {
	if elemk.IsNil(subject) {
		return nil, &elemk.PreconditionErr{Op: "invoke " + method, Value: "subject", Err: elemk.ErrNilSubject}
	}
	if inv, ok := subject.(MethodInvoker); ok {
		return inv.Invoke(ctx, method, args...)
	}

	m, ok := methodByName(reflect.ValueOf(subject), method)
	if !ok {
		return nil, &elemk.MissingMemberErr{Member: method}
	}
	return call(ctx, m, args)
}

func candidates(name string) []string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return []string{name}
	}
	return []string{name, string(unicode.ToUpper(r)) + name[size:]}
}

func fieldByName(v reflect.Value, name string) (reflect.Value, bool) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	for _, n := range candidates(name) {
		sf, ok := v.Type().FieldByName(n)
		if !ok || sf.PkgPath != "" {
			continue
		}
		f, err := v.FieldByIndexErr(sf.Index)
		if err != nil || !f.CanInterface() {
			continue
		}
		return f, true
	}
	return reflect.Value{}, false
}

func methodByName(v reflect.Value, name string) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	for _, n := range candidates(name) {
		if m := v.MethodByName(n); m.IsValid() {
			return m, true
		}
	}
	return reflect.Value{}, false
}

func isGetter(t reflect.Type) bool {
	switch t.NumIn() {
	case 0:
	case 1:
		if t.In(0) != contextType {
			return false
		}
	default:
		return false
	}
	switch t.NumOut() {
	case 1:
		return t.Out(0) != errorType
	case 2:
		return t.Out(1) == errorType
	}
	return false
}

func call(ctx context.Context, fn reflect.Value, args []interface{}) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	t := fn.Type()

	in := make([]reflect.Value, 0, len(args)+1)
	if t.NumIn() > 0 && t.In(0) == contextType {
		in = append(in, reflect.ValueOf(ctx))
	}

	fixed := t.NumIn() - len(in)
	if t.IsVariadic() {
		fixed--
	}
	if len(args) < fixed || (!t.IsVariadic() && len(args) > fixed) {
		return nil, errors.Errorf("expected %d arguments got %d", fixed, len(args))
	}

	for i, a := range args {
		pos := len(in)
		var pt reflect.Type
		if t.IsVariadic() && pos >= t.NumIn()-1 {
			pt = t.In(t.NumIn() - 1).Elem()
		} else {
			pt = t.In(pos)
		}
		av, err := convertArg(a, pt)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		in = append(in, av)
	}
	return results(fn.Call(in))
}

func convertArg(a interface{}, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, errors.Errorf("cannot use nil as %s", t)
	}

	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		return convertNumber(v, t)
	}
	if v.Kind() == t.Kind() && v.Type().ConvertibleTo(t) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, errors.Errorf("cannot use %T as %s", a, t)
}

// convertNumber only when the value survives the round trip, so 1.7 is not an
// int and 300 is not a uint8
func convertNumber(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if isSigned(v.Kind()) && v.Int() < 0 && isUnsigned(t.Kind()) {
		return reflect.Value{}, errors.Errorf("cannot use %v as %s without losing its sign", v.Interface(), t)
	}
	if isFloat(v.Kind()) && !isFloat(t.Kind()) && v.Float() < 0 && isUnsigned(t.Kind()) {
		return reflect.Value{}, errors.Errorf("cannot use %v as %s without losing its sign", v.Interface(), t)
	}
	conv := v.Convert(t)
	if conv.Convert(v.Type()).Interface() != v.Interface() {
		return reflect.Value{}, errors.Errorf("cannot use %v as %s without losing precision", v.Interface(), t)
	}
	return conv, nil
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func results(out []reflect.Value) (interface{}, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	ret := make([]interface{}, len(out))
	for i, o := range out {
		ret[i] = o.Interface()
	}
	return ret, nil
}
