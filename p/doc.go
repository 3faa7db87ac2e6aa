// Package p is the predicate namespace for guard.
//
// Every member is a guard.Predicate or a factory returning one, so it can
// be used anywhere a guard is accepted:
//
//	guard.Shape{
//	    "id":    p.String.UUID,
//	    "age":   p.Number.Between(18, 130),
//	    "email": p.Optional.String.Includes("@"),
//	    "tags":  p.Array.Of(p.String),
//	}
//
// Sub-namespaces such as p.String and p.Number also match on their own:
// p.String matches any string, p.Number any number.
//
// # Views
//
// Not and Optional have the same layout as the package-level members. In
// Not every predicate is negated, including those returned by factories,
// so p.Not.Number.Between(0, 1) matches everything outside [0, 1] and
// p.Not.String matches every non-string. In Optional every predicate also
// matches guard.Undefined, the value a shape field sees when its key is
// absent.
package p
