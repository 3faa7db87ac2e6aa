package p

import (
	"reflect"

	"github.com/bjaus/guard"
)

// ArrayPredicates match slices and arrays other than byte slices, which
// are treated as opaque values everywhere else in the engine.
type ArrayPredicates struct {
	is guard.Predicate

	// Of matches non-empty slices whose every element satisfies g.
	Of func(g any) guard.Predicate
	// Includes matches slices with at least one element satisfying g.
	Includes func(g any) guard.Predicate

	Len func(n int) guard.Predicate
	// LenRange is inclusive; a negative max leaves the range open.
	LenRange func(min, max int) guard.Predicate
}

// Match implements guard.Matcher.
func (a ArrayPredicates) Match(v any) bool { return a.is(v) }

func newArrayPredicates(w wrapper) ArrayPredicates {
	return ArrayPredicates{
		is: w(isArray),

		Of:       lift(w, arrayOf),
		Includes: lift(w, arrayIncludes),
		Len:      lift(w, arrayLen),
		LenRange: lift2(w, arrayLenRange),
	}
}

func isArray(v any) bool {
	_, ok := sliceOf(v)
	return ok
}

func elements(v any) ([]any, bool) {
	if !isArray(v) {
		return nil, false
	}
	rv, _ := sliceOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func arrayOf(g any) guard.Predicate {
	compiled := guard.From(g)
	return func(input any) bool {
		items, ok := elements(input)
		if !ok || len(items) == 0 {
			return false
		}
		for _, item := range items {
			if !guard.Check(compiled, item) {
				return false
			}
		}
		return true
	}
}

func arrayIncludes(g any) guard.Predicate {
	compiled := guard.From(g)
	return func(input any) bool {
		items, _ := elements(input)
		for _, item := range items {
			if guard.Check(compiled, item) {
				return true
			}
		}
		return false
	}
}

func arrayLen(n int) guard.Predicate {
	return arrayLenRange(n, n)
}

func arrayLenRange(min, max int) guard.Predicate {
	return func(input any) bool {
		if !isArray(input) {
			return false
		}
		n := reflect.ValueOf(input).Len()
		return n >= min && (max < 0 || n <= max)
	}
}
