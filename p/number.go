package p

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"

	"github.com/bjaus/guard"
)

// NumberPredicates match Go numbers of any width and json.Number. Bounds
// are compared as float64.
type NumberPredicates struct {
	is guard.Predicate

	Gt  func(n float64) guard.Predicate
	Gte func(n float64) guard.Predicate
	Lt  func(n float64) guard.Predicate
	Lte func(n float64) guard.Predicate
	// Between is inclusive on both ends.
	Between func(min, max float64) guard.Predicate

	Positive guard.Predicate
	Negative guard.Predicate
	// Finite excludes NaN and the infinities.
	Finite guard.Predicate
	// Int matches numbers without a fractional part.
	Int guard.Predicate
}

// Match implements guard.Matcher.
func (n NumberPredicates) Match(v any) bool { return n.is(v) }

func newNumberPredicates(w wrapper) NumberPredicates {
	return NumberPredicates{
		is: w(isNumber),

		Gt:      lift(w, numberTest(func(x, n float64) bool { return x > n })),
		Gte:     lift(w, numberTest(func(x, n float64) bool { return x >= n })),
		Lt:      lift(w, numberTest(func(x, n float64) bool { return x < n })),
		Lte:     lift(w, numberTest(func(x, n float64) bool { return x <= n })),
		Between: lift2(w, numberBetween),

		Positive: w(numberIs(func(x float64) bool { return x > 0 })),
		Negative: w(numberIs(func(x float64) bool { return x < 0 })),
		Finite:   w(numberIs(func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) })),
		Int:      w(numberIs(func(x float64) bool { return x == math.Trunc(x) && !math.IsInf(x, 0) })),
	}
}

// toFloat converts a number to float64. Booleans are not numbers.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

func numberIs(fn func(x float64) bool) guard.Predicate {
	return func(input any) bool {
		x, ok := toFloat(input)
		return ok && fn(x)
	}
}

func numberTest(fn func(x, n float64) bool) func(float64) guard.Predicate {
	return func(n float64) guard.Predicate {
		return numberIs(func(x float64) bool { return fn(x, n) })
	}
}

func numberBetween(min, max float64) guard.Predicate {
	return numberIs(func(x float64) bool { return x >= min && x <= max })
}

// BigIntPredicates match non-nil *big.Int values.
type BigIntPredicates struct {
	is guard.Predicate

	Gt      func(n *big.Int) guard.Predicate
	Gte     func(n *big.Int) guard.Predicate
	Lt      func(n *big.Int) guard.Predicate
	Lte     func(n *big.Int) guard.Predicate
	Between func(min, max *big.Int) guard.Predicate

	Positive guard.Predicate
	Negative guard.Predicate
}

// Match implements guard.Matcher.
func (b BigIntPredicates) Match(v any) bool { return b.is(v) }

func newBigIntPredicates(w wrapper) BigIntPredicates {
	return BigIntPredicates{
		is: w(isBigInt),

		Gt:      lift(w, bigTest(func(c int) bool { return c > 0 })),
		Gte:     lift(w, bigTest(func(c int) bool { return c >= 0 })),
		Lt:      lift(w, bigTest(func(c int) bool { return c < 0 })),
		Lte:     lift(w, bigTest(func(c int) bool { return c <= 0 })),
		Between: lift2(w, bigBetween),

		Positive: w(bigIs(func(x *big.Int) bool { return x.Sign() > 0 })),
		Negative: w(bigIs(func(x *big.Int) bool { return x.Sign() < 0 })),
	}
}

func bigOf(v any) (*big.Int, bool) {
	x, ok := v.(*big.Int)
	return x, ok && x != nil
}

func isBigInt(v any) bool {
	_, ok := bigOf(v)
	return ok
}

func bigIs(fn func(x *big.Int) bool) guard.Predicate {
	return func(input any) bool {
		x, ok := bigOf(input)
		return ok && fn(x)
	}
}

// bigTest builds a factory comparing the subject to n; cmp receives
// subject.Cmp(n). A nil bound never matches.
func bigTest(cmp func(c int) bool) func(*big.Int) guard.Predicate {
	return func(n *big.Int) guard.Predicate {
		return bigIs(func(x *big.Int) bool { return n != nil && cmp(x.Cmp(n)) })
	}
}

func bigBetween(min, max *big.Int) guard.Predicate {
	return bigIs(func(x *big.Int) bool {
		return min != nil && max != nil && x.Cmp(min) >= 0 && x.Cmp(max) <= 0
	})
}
