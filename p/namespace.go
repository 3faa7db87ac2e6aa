package p

import "github.com/bjaus/guard"

// Namespace is the tree of named predicates. The package-level variables
// expose the plain namespace; Not and Optional are the same tree with every
// leaf, and every predicate a factory returns, negated or made optional.
type Namespace struct {
	// Any matches every value.
	Any guard.Predicate
	// Nullish matches nil, guard.Undefined and nil pointers, maps, slices,
	// interfaces, funcs and channels.
	Nullish guard.Predicate
	Boolean guard.Predicate
	// Truthy and Falsy follow the usual rules: nullish values, false,
	// numeric zero, NaN and "" are falsy.
	Truthy guard.Predicate
	Falsy  guard.Predicate

	String StringPredicates
	Number NumberPredicates
	BigInt BigIntPredicates
	Func   FuncPredicates
	Object ObjectPredicates
	Date   DatePredicates
	Array  ArrayPredicates
	JSON   JSONPredicates

	// Contains matches slices holding v, sets (maps) keyed by v, and
	// strings containing v when v is a string.
	Contains func(v any) guard.Predicate
	// Tuple matches slices with exactly one element per guard, each
	// satisfying the guard at the same position.
	Tuple        func(gs ...any) guard.Predicate
	Union        func(gs ...any) guard.Predicate
	Intersection func(gs ...any) guard.Predicate
	// InstanceOf matches values of sample's dynamic type. A nil pointer to
	// an interface, such as (*error)(nil), matches implementations of it.
	InstanceOf func(sample any) guard.Predicate
	// Equal matches values deeply equal to v, unexported fields included.
	Equal func(v any) guard.Predicate
}

// wrapper is applied to every predicate registered in a namespace.
type wrapper func(guard.Predicate) guard.Predicate

func plain(p guard.Predicate) guard.Predicate { return p }

func negate(p guard.Predicate) guard.Predicate {
	return func(v any) bool { return !p(v) }
}

func optionalize(p guard.Predicate) guard.Predicate {
	return func(v any) bool { return v == guard.Undefined || p(v) }
}

func lift[A any](w wrapper, f func(A) guard.Predicate) func(A) guard.Predicate {
	return func(a A) guard.Predicate { return w(f(a)) }
}

func lift2[A, B any](w wrapper, f func(A, B) guard.Predicate) func(A, B) guard.Predicate {
	return func(a A, b B) guard.Predicate { return w(f(a, b)) }
}

func liftN[A any](w wrapper, f func(...A) guard.Predicate) func(...A) guard.Predicate {
	return func(as ...A) guard.Predicate { return w(f(as...)) }
}

func newNamespace(w wrapper) Namespace {
	return Namespace{
		Any:     w(isAny),
		Nullish: w(isNullish),
		Boolean: w(isBoolean),
		Truthy:  w(isTruthy),
		Falsy:   w(isFalsy),

		String: newStringPredicates(w),
		Number: newNumberPredicates(w),
		BigInt: newBigIntPredicates(w),
		Func:   newFuncPredicates(w),
		Object: newObjectPredicates(w),
		Date:   newDatePredicates(w),
		Array:  newArrayPredicates(w),
		JSON:   newJSONPredicates(w),

		Contains:     lift(w, contains),
		Tuple:        liftN(w, tuple),
		Union:        liftN(w, union),
		Intersection: liftN(w, intersection),
		InstanceOf:   lift(w, instanceOf),
		Equal:        lift(w, equal),
	}
}

var std = newNamespace(plain)

var (
	// Not is the namespace with every predicate negated:
	// p.Not.Number.Between(0, 1) matches anything outside [0, 1].
	Not = newNamespace(negate)

	// Optional is the namespace with every predicate also matching
	// guard.Undefined, so a shape field using it may be absent.
	Optional = newNamespace(optionalize)
)

var (
	Any          = std.Any
	Nullish      = std.Nullish
	Boolean      = std.Boolean
	Truthy       = std.Truthy
	Falsy        = std.Falsy
	String       = std.String
	Number       = std.Number
	BigInt       = std.BigInt
	Func         = std.Func
	Object       = std.Object
	Date         = std.Date
	Array        = std.Array
	JSON         = std.JSON
	Contains     = std.Contains
	Tuple        = std.Tuple
	Union        = std.Union
	Intersection = std.Intersection
	InstanceOf   = std.InstanceOf
	Equal        = std.Equal
)

// Identity returns v. It is handy as a match outcome that yields the
// subject itself.
func Identity[T any](v T) T { return v }
