package guard

import "context"

// Validate compiles g once and returns a reusable predicate.
func Validate(g any) Predicate {
	compiled := From(g)
	return func(subject any) bool {
		return check(compiled, subject)
	}
}

// ValidateAsync compiles g once and returns a reusable async predicate.
func ValidateAsync(g any) AsyncPredicate {
	compiled := From(g)
	return func(ctx context.Context, subject any) (bool, error) {
		return evaluator{}.check(ctx, compiled, subject)
	}
}

// ValidateStrict is Validate for objects whose key set must equal the
// shape's declared keys exactly. Non-object subjects never match.
//
// Only a top-level shape declares keys. For any other guard, such as an
// alternation of shapes, the declared set is empty, so only empty objects
// can match.
func ValidateStrict(g any) Predicate {
	compiled := From(g)
	return func(subject any) bool {
		obj, ok := asObject(subject)
		if !ok || !check(compiled, subject) {
			return false
		}
		keys := obj.keys()
		if len(keys) != len(compiled.fields) {
			return false
		}
		for _, k := range keys {
			if !compiled.hasField(k) {
				return false
			}
		}
		return true
	}
}
