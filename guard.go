package guard

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
)

// Kind identifies which variant a Guard holds.
type Kind uint8

const (
	// KindMalformed marks a value that cannot act as a guard. The sync
	// evaluator treats it as no-match; the async evaluator reports
	// ErrMalformedGuard.
	KindMalformed Kind = iota
	KindLiteral
	KindPredicate
	KindAsync
	KindAlternation
	KindShape
	KindPending
)

var kindNames = [...]string{
	KindMalformed:   "malformed",
	KindLiteral:     "literal",
	KindPredicate:   "predicate",
	KindAsync:       "async",
	KindAlternation: "alternation",
	KindShape:       "shape",
	KindPending:     "pending",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Shape declares a partial object match: every key must be satisfied by
// the subject, extra subject keys are ignored. Values are converted with
// From, so they may themselves be literals, predicates, slices or shapes.
type Shape map[string]any

// Guard is a compiled match condition. The zero value is malformed; build
// guards with From or one of the explicit constructors.
type Guard struct {
	kind    Kind
	value   any
	pred    Predicate
	async   AsyncPredicate
	alts    []Guard
	fields  []field
	pending *Pending
}

type field struct {
	key   string
	guard Guard
}

// Kind reports the variant held by g.
func (g Guard) Kind() Kind { return g.kind }

// From converts an arbitrary value into a Guard:
//
//   - nil and plain values become literals compared by equality
//   - Predicate, func(any) bool and Matcher become predicates
//   - AsyncPredicate, func(context.Context, any) (bool, error) and
//     AsyncMatcher become async predicates
//   - *Pending becomes a pending guard
//   - slices and arrays (other than byte slices) become alternations
//   - Shape and other string-keyed maps become partial shapes
//   - any other function, channel or unsafe pointer is malformed
func From(v any) Guard {
	switch t := v.(type) {
	case nil:
		return Literal(nil)
	case Guard:
		return t
	case *Pending:
		return Await(t)
	case Predicate:
		return Func(t)
	case func(any) bool:
		return Func(t)
	case AsyncPredicate:
		return Async(t)
	case func(context.Context, any) (bool, error):
		return Async(t)
	case Matcher:
		return Guard{kind: KindPredicate, value: v, pred: t.Match}
	case AsyncMatcher:
		return Guard{kind: KindAsync, value: v, async: t.MatchAsync}
	case Shape:
		return shapeOf(v, t)
	case map[string]any:
		return shapeOf(v, t)
	case []Guard:
		return Guard{kind: KindAlternation, value: v, alts: t}
	case []any:
		return Or(t...)
	case []byte, json.RawMessage:
		return Literal(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Literal(v)
		}
		alts := make([]Guard, rv.Len())
		for i := range alts {
			alts[i] = From(rv.Index(i).Interface())
		}
		return Guard{kind: KindAlternation, value: v, alts: alts}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Literal(v)
		}
		fields := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = iter.Value().Interface()
		}
		return shapeOf(v, fields)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return Guard{kind: KindMalformed, value: v}
	}
	return Literal(v)
}

// Literal returns a guard that matches subjects equal to v.
func Literal(v any) Guard {
	return Guard{kind: KindLiteral, value: v}
}

// Func returns a guard that invokes fn with the subject.
func Func(fn Predicate) Guard {
	if fn == nil {
		return Guard{kind: KindMalformed, value: fn}
	}
	return Guard{kind: KindPredicate, value: fn, pred: fn}
}

// Async returns a guard backed by a predicate that may block or fail.
func Async(fn AsyncPredicate) Guard {
	if fn == nil {
		return Guard{kind: KindMalformed, value: fn}
	}
	return Guard{kind: KindAsync, value: fn, async: fn}
}

// Await returns a guard whose outcome is the resolved value of p.
func Await(p *Pending) Guard {
	if p == nil {
		return Guard{kind: KindMalformed, value: p}
	}
	return Guard{kind: KindPending, value: p, pending: p}
}

// Or returns an alternation: it matches when any of gs matches.
func Or(gs ...any) Guard {
	alts := make([]Guard, len(gs))
	for i, g := range gs {
		alts[i] = From(g)
	}
	return Guard{kind: KindAlternation, value: gs, alts: alts}
}

// ShapeOf returns a partial shape guard over fields.
func ShapeOf(fields Shape) Guard {
	return shapeOf(fields, fields)
}

func shapeOf(src any, m map[string]any) Guard {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fields := make([]field, len(keys))
	for i, k := range keys {
		fields[i] = field{key: k, guard: From(m[k])}
	}
	return Guard{kind: KindShape, value: src, fields: fields}
}

func (g Guard) hasField(key string) bool {
	_, found := slices.BinarySearchFunc(g.fields, key, func(f field, k string) int {
		switch {
		case f.key < k:
			return -1
		case f.key > k:
			return 1
		}
		return 0
	})
	return found
}

// same is the identity test applied before any other rule: equal values of
// the same dynamic type, equal numbers of any numeric kind, or the same
// underlying map, slice or pointer.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return sameNumber(ra, rb)
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Pointer, reflect.UnsafePointer:
		return ra.UnsafePointer() == rb.UnsafePointer()
	case reflect.Slice:
		return ra.UnsafePointer() == rb.UnsafePointer() && ra.Len() == rb.Len()
	case reflect.Func:
		return false
	}
	if !ra.Comparable() {
		return false
	}
	return a == b
}

// sameNumber compares two values of integer or floating-point kind by
// value. JSON numbers decode to float64, so 2 and float64(2) are equal.
func sameNumber(a, b reflect.Value) bool {
	ka, kb := numberKind(a.Kind()), numberKind(b.Kind())
	if ka == 0 || kb == 0 {
		return false
	}
	switch {
	case ka == kb && ka == reflect.Int:
		return a.Int() == b.Int()
	case ka == kb && ka == reflect.Uint:
		return a.Uint() == b.Uint()
	case ka == reflect.Int && kb == reflect.Uint:
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	case ka == reflect.Uint && kb == reflect.Int:
		return b.Int() >= 0 && a.Uint() == uint64(b.Int())
	}
	return asFloat(a) == asFloat(b)
}

// numberKind groups numeric kinds into Int, Uint and Float64; 0 otherwise.
func numberKind(k reflect.Kind) reflect.Kind {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return reflect.Uint
	case reflect.Float32, reflect.Float64:
		return reflect.Float64
	}
	return 0
}

func asFloat(v reflect.Value) float64 {
	switch numberKind(v.Kind()) {
	case reflect.Int:
		return float64(v.Int())
	case reflect.Uint:
		return float64(v.Uint())
	}
	return v.Float()
}
