package commands

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gitlab.com/elemk/elemk"
	"gitlab.com/elemk/selector"
)

// Chain of commands over a subject. The first failing step stops the chain,
// every later step is skipped and Value returns that error. Chains are
// immutable, each step returns a new chain.
type Chain struct {
	ctx     context.Context
	subject interface{}
	err     error
}

// Wrap subject to start a chain
func Wrap(ctx context.Context, subject interface{}) *Chain {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Chain{ctx: ctx, subject: subject}
}

// Value of the chain's subject or the error that stopped it
func (c *Chain) Value() (interface{}, error) {
	return c.subject, c.err
}

// Err that stopped the chain
func (c *Chain) Err() error {
	return c.err
}

// Context the chain runs with
func (c *Chain) Context() context.Context {
	return c.ctx
}

func (c *Chain) next(subject interface{}, err error) *Chain {
	if err != nil {
		return &Chain{ctx: c.ctx, err: err}
	}
	// methods may chain commands themselves, their result is the inner subject
	if inner, ok := subject.(*Chain); ok {
		if inner == nil {
			return &Chain{ctx: c.ctx, err: &elemk.PreconditionErr{Op: "continue chain", Value: "returned chain", Err: elemk.ErrNilSubject}}
		}
		return &Chain{ctx: c.ctx, subject: inner.subject, err: inner.err}
	}
	return &Chain{ctx: c.ctx, subject: subject}
}

// Then runs fn with the current subject, its result becomes the next subject
func (c *Chain) Then(fn func(ctx context.Context, subject interface{}) (interface{}, error)) *Chain {
	if c.err != nil {
		return c
	}
	return c.next(fn(c.ctx, c.subject))
}

// Prop reads property from the subject
func (c *Chain) Prop(property string, args ...interface{}) *Chain {
	if c.err != nil {
		return c
	}
	logStep(c.ctx, "prop", c.subject, property+" in subject", args)
	return c.next(ReadProperty(c.ctx, c.subject, property))
}

// Map invokes method on the subject and continues with its result
func (c *Chain) Map(method string, args ...interface{}) *Chain {
	if c.err != nil {
		return c
	}
	logStep(c.ctx, "map", c.subject, method, args)
	return c.next(InvokeMethod(c.ctx, c.subject, method, args...))
}

// Tap invokes method on the subject and continues with the same subject
func (c *Chain) Tap(method string, args ...interface{}) *Chain {
	if c.err != nil {
		return c
	}
	logStep(c.ctx, "tap", c.subject, method, args)

	ret, err := InvokeMethod(c.ctx, c.subject, method, args...)
	if err == nil {
		if inner, ok := ret.(*Chain); ok {
			if inner == nil {
				return c.next(inner, nil)
			}
			err = inner.err
		}
	}
	if err != nil {
		return c.next(nil, err)
	}
	return c.next(c.subject, nil)
}

// Find base within the subject, which must be a component, a node set or an
// element. The result is the raw node set, use Create to wrap it.
func (c *Chain) Find(base string, opts *elemk.Options) *Chain {
	if c.err != nil {
		return c
	}
	logStep(c.ctx, "find", c.subject, base, nil)

	if elemk.IsNil(c.subject) {
		return c.next(nil, &elemk.PreconditionErr{Op: "find " + base, Value: "subject", Err: elemk.ErrNilSubject})
	}
	root, err := elemk.ScopeOf(c.subject)
	if err != nil {
		return c.next(nil, err)
	}
	scoped := elemk.Options{}
	if opts != nil {
		scoped = *opts
	}
	scoped.Root = root
	return c.next(selector.Query(c.ctx, nil, base, &scoped))
}

// Create wraps the chain's subject as a T. A component subject is re-created
// from its backing nodes.
func Create[T elemk.Wrapper](c *Chain, factory elemk.Factory[T]) *Chain {
	if c.err != nil {
		return c
	}
	ret, err := elemk.Create(c.subject, factory)
	if err != nil {
		return c.next(nil, err)
	}
	return c.next(ret, nil)
}

// Apply a typed step to the chain, failing if the subject is not an S
func Apply[S, R any](c *Chain, fn func(ctx context.Context, subject S) (R, error)) *Chain {
	if c.err != nil {
		return c
	}
	s, err := As[S](c)
	if err != nil {
		return c.next(nil, err)
	}
	return c.next(MapFn(c.ctx, s, fn))
}

// As returns the chain's subject as a T
func As[T any](c *Chain) (T, error) {
	var zero T
	if c.err != nil {
		return zero, c.err
	}
	if elemk.IsNil(c.subject) {
		return zero, &elemk.PreconditionErr{Op: "read " + elemk.TypeName[T](), Value: "subject", Err: elemk.ErrNilSubject}
	}
	ret, ok := c.subject.(T)
	if !ok {
		return zero, errors.Errorf("subject is %T not %s", c.subject, elemk.TypeName[T]())
	}
	return ret, nil
}

func logStep(ctx context.Context, displayName string, subject interface{}, message string, args []interface{}) {
	evt := elemk.Trace(ctx, "command").
		Str("display_name", displayName).
		Str("message", message).
		Str("subject", fmt.Sprintf("%T", subject))
	if w, ok := subject.(elemk.Wrapper); ok {
		evt = evt.Int("elements", elemk.NodesOf(w).Len())
	}
	evt.Interface("args", args).Msg(displayName)
}
