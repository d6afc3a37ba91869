package num

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{in: 3, want: 3, ok: true},
		{in: int8(-2), want: -2, ok: true},
		{in: uint16(7), want: 7, ok: true},
		{in: 1.5, want: 1.5, ok: true},
		{in: float32(0.5), want: 0.5, ok: true},
		{in: json.Number("42"), want: 42, ok: true},
		{in: json.Number("x"), ok: false},
		{in: "42", ok: false},
		{in: nil, ok: false},
	}
	for _, c := range cases {
		got, ok := Float(c.in)
		assert.Equal(t, c.ok, ok, "%#v", c.in)
		if c.ok {
			assert.Equal(t, c.want, got, "%#v", c.in)
		}
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(5, int64(5)))
	assert.True(t, Equal(5, 5.0))
	assert.True(t, Equal(json.Number("5"), 5))
	assert.False(t, Equal(5, 6))
	assert.True(t, Equal(int64(1<<62), 1<<62))
	assert.True(t, Equal("a", "a"))
	assert.False(t, Equal("5", 5))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, 0))
	assert.True(t, Equal([]any{1}, []any{1}))
}

func TestCompare(t *testing.T) {
	c, ok := Compare(1, 2.5)
	assert.True(t, ok)
	assert.Equal(t, -1, c)
	c, ok = Compare(3, 3)
	assert.True(t, ok)
	assert.Equal(t, 0, c)
	_, ok = Compare("a", 1)
	assert.False(t, ok)
	_, ok = Compare(math.NaN(), 1)
	assert.False(t, ok)
	_, ok = Compare(1, math.NaN())
	assert.False(t, ok)
}
