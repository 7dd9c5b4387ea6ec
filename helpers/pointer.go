package helpers

import "reflect"

// Ptr returns a pointer whose value is v.
func Ptr[T any](v T) *T {
	return &v
}

// Value is like *p but it returns the zero value if p is nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NonEmptyPtr returns a pointer to s, or nil when s is empty. Upstream APIs report missing
// fields as empty strings; records keep them as absent.
func NonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StrPanic panics with panicMessage if p is empty; otherwise returns p.
//
// Called from constructors for required names (region prefixes, file paths, key prefixes).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// PositivePanic panics with panicMessage if n is not positive; otherwise returns n.
//
// Called from constructors taking sizes and capacities (window size, cache capacity).
func PositivePanic(n int, panicMessage string) int {
	if n <= 0 {
		panic(panicMessage)
	}
	return n
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan or func);
// otherwise returns v.
//
// Called from service.NewRegionStore, NewFreshnessValidator, NewPageService, handlers.NewHTTPServer and
// the adapters when validating required dependencies.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
