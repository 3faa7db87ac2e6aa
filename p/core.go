package p

import (
	"math"
	"reflect"
	"strings"

	"github.com/bjaus/guard"
	"github.com/google/go-cmp/cmp"
)

func isAny(any) bool { return true }

func isNullish(v any) bool {
	if v == nil || v == guard.Undefined {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func isBoolean(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Bool
}

func isTruthy(v any) bool { return !isFalsy(v) }

func isFalsy(v any) bool {
	if isNullish(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	}
	return false
}

func contains(v any) guard.Predicate {
	lit := guard.Literal(v)
	return func(input any) bool {
		if s, ok := stringOf(input); ok {
			sub, ok := v.(string)
			return ok && strings.Contains(s, sub)
		}
		rv := reflect.ValueOf(input)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := range rv.Len() {
				if guard.Check(lit, rv.Index(i).Interface()) {
					return true
				}
			}
		case reflect.Map:
			if v == nil {
				return false
			}
			key := reflect.ValueOf(v)
			if !key.Comparable() || !key.Type().AssignableTo(rv.Type().Key()) {
				return false
			}
			return rv.MapIndex(key).IsValid()
		}
		return false
	}
}

func tuple(gs ...any) guard.Predicate {
	compiled := make([]guard.Guard, len(gs))
	for i, g := range gs {
		compiled[i] = guard.From(g)
	}
	return func(input any) bool {
		rv, ok := sliceOf(input)
		if !ok || len(compiled) == 0 || rv.Len() != len(compiled) {
			return false
		}
		for i, g := range compiled {
			if !guard.Check(g, rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
}

func union(gs ...any) guard.Predicate { return guard.AnyOf(gs...) }

func intersection(gs ...any) guard.Predicate { return guard.All(gs...) }

func instanceOf(sample any) guard.Predicate {
	t, ok := sample.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(sample)
	}
	if t == nil {
		return func(any) bool { return false }
	}
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface {
		iface := t.Elem()
		return func(input any) bool {
			return input != nil && reflect.TypeOf(input).Implements(iface)
		}
	}
	return func(input any) bool {
		return input != nil && reflect.TypeOf(input) == t
	}
}

func equal(v any) guard.Predicate {
	exportAll := cmp.Exporter(func(reflect.Type) bool { return true })
	return func(input any) bool {
		return cmp.Equal(v, input, exportAll)
	}
}

// sliceOf returns v as a slice or array value. Byte slices and arrays are
// opaque values, not sequences.
func sliceOf(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, rv.Type().Elem().Kind() != reflect.Uint8
	}
	return rv, false
}

// FuncPredicates match functions.
type FuncPredicates struct {
	is guard.Predicate

	// Arity matches functions taking exactly n parameters; a variadic
	// parameter counts as one.
	Arity func(n int) guard.Predicate
}

// Match implements guard.Matcher.
func (f FuncPredicates) Match(v any) bool { return f.is(v) }

func isFunc(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

func arity(n int) guard.Predicate {
	return func(input any) bool {
		return isFunc(input) && reflect.TypeOf(input).NumIn() == n
	}
}

func newFuncPredicates(w wrapper) FuncPredicates {
	return FuncPredicates{
		is:    w(isFunc),
		Arity: lift(w, arity),
	}
}

// ObjectPredicates match values a shape guard can traverse.
type ObjectPredicates struct {
	is guard.Predicate

	// Strict matches objects satisfying shape whose keys are exactly the
	// shape's keys.
	Strict func(shape any) guard.Predicate
}

// Match implements guard.Matcher.
func (o ObjectPredicates) Match(v any) bool { return o.is(v) }

func newObjectPredicates(w wrapper) ObjectPredicates {
	return ObjectPredicates{
		is:     w(guard.IsObject),
		Strict: lift(w, guard.ValidateStrict),
	}
}
