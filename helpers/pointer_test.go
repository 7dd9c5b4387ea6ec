package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPtr(t *testing.T) {
	s := "hello"
	p := Ptr(s)
	require.NotNil(t, p)
	assert.Equal(t, s, *p)
}

func TestValue(t *testing.T) {
	x := 42
	assert.Equal(t, 42, Value(&x))
	assert.Equal(t, 0, Value[int](nil))
	assert.Equal(t, "", Value[string](nil))
}

func TestNonEmptyPtr(t *testing.T) {
	assert.Nil(t, NonEmptyPtr(""))
	require.NotNil(t, NonEmptyPtr("a"))
	assert.Equal(t, "a", *NonEmptyPtr("a"))
}

func TestStrPanic(t *testing.T) {
	assert.PanicsWithValue(t, "name is required", func() { StrPanic("", "name is required") })
	assert.Equal(t, "x", StrPanic("x", "name is required"))
}

func TestPositivePanic(t *testing.T) {
	assert.PanicsWithValue(t, "size must be positive", func() { PositivePanic(0, "size must be positive") })
	assert.PanicsWithValue(t, "size must be positive", func() { PositivePanic(-3, "size must be positive") })
	assert.Equal(t, 7, PositivePanic(7, "size must be positive"))
}

func TestNilPanic(t *testing.T) {
	var nilMap map[string]int
	var nilFunc func()
	var nilPtr *int

	assert.PanicsWithValue(t, "v is required", func() { NilPanic[any](nil, "v is required") })
	assert.PanicsWithValue(t, "v is required", func() { NilPanic(nilMap, "v is required") })
	assert.PanicsWithValue(t, "v is required", func() { NilPanic(nilFunc, "v is required") })
	assert.PanicsWithValue(t, "v is required", func() { NilPanic(nilPtr, "v is required") })

	x := 1
	assert.Equal(t, &x, NilPanic(&x, "v is required"))
	assert.Equal(t, 5, NilPanic(5, "v is required"))
}
