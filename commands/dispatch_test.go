package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/elemk/commands"
	"gitlab.com/elemk/elemk"
)

type counter struct {
	values map[string]interface{}
	calls  []string
}

func (c *counter) Property(ctx context.Context, name string) (interface{}, error) {
	v, ok := c.values[name]
	if !ok {
		return nil, &elemk.MissingMemberErr{Member: name}
	}
	return v, nil
}

func (c *counter) Invoke(ctx context.Context, method string, args ...interface{}) (interface{}, error) {
	c.calls = append(c.calls, method)
	return len(args), nil
}

type sums struct{}

func (sums) Add(values ...int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func (sums) Pair() (int, string) {
	return 1, "one"
}

func (sums) Byte(b uint8) uint8 {
	return b
}

func (sums) Half(f float64) float64 {
	return f / 2
}

func (sums) Ptr(p *int) bool {
	return p == nil
}

func TestCapabilitiesTakePrecedence(t *testing.T) {
	ctx := context.Background()
	c := &counter{values: map[string]interface{}{"n": 3}}

	v, err := commands.ReadProperty(ctx, c, "n")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = commands.ReadProperty(ctx, c, "values")
	assert.True(t, elemk.IsMissingMember(err))

	v, err = commands.InvokeMethod(ctx, c, "anything", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, []string{"anything"}, c.calls)
}

func TestInvokeReflection(t *testing.T) {
	ctx := context.Background()

	v, err := commands.InvokeMethod(ctx, sums{}, "add", 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	v, err = commands.InvokeMethod(ctx, sums{}, "Add")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = commands.InvokeMethod(ctx, sums{}, "Pair")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1, "one"}, v)

	v, err = commands.InvokeMethod(ctx, sums{}, "Ptr", nil)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = commands.InvokeMethod(ctx, sums{}, "Add", "1")
	assert.Error(t, err)
}

func TestInvokeNumericConversion(t *testing.T) {
	ctx := context.Background()

	var inputs = []struct {
		method string
		arg    interface{}
		ok     bool
	}{
		{"Add", int64(4), true},
		{"Add", 2.0, true},
		{"Add", 1.7, false},
		{"Byte", 200, true},
		{"Byte", 300, false},
		{"Byte", -1, false},
		{"Byte", -1.0, false},
		{"Half", int64(3), true},
		{"Half", uint8(9), true},
	}

	for _, in := range inputs {
		_, err := commands.InvokeMethod(ctx, sums{}, in.method, in.arg)
		if in.ok && err != nil {
			t.Fatalf("%s(%#v) failed: %s\n", in.method, in.arg, err)
		}
		if !in.ok && err == nil {
			t.Fatalf("%s(%#v) should not convert", in.method, in.arg)
		}
	}

	v, err := commands.InvokeMethod(ctx, sums{}, "Byte", int64(200))
	require.NoError(t, err)
	assert.Equal(t, uint8(200), v)
}

func TestTypedNilSubject(t *testing.T) {
	ctx := context.Background()
	var c *counter

	_, err := commands.ReadProperty(ctx, c, "n")
	assert.True(t, elemk.IsPrecondition(err))

	_, err = commands.InvokeMethod(ctx, c, "anything")
	assert.True(t, elemk.IsPrecondition(err))
}

func TestNilSubject(t *testing.T) {
	ctx := context.Background()

	_, err := commands.ReadProperty(ctx, nil, "x")
	assert.True(t, elemk.IsPrecondition(err))

	_, err = commands.InvokeMethod(ctx, nil, "x")
	assert.True(t, elemk.IsPrecondition(err))
}
