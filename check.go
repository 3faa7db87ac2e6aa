package guard

// Check reports whether subject satisfies g. The rules apply in order:
//
//  1. a guard identical to the subject matches
//  2. a predicate decides by itself
//  3. an alternation matches when any member matches
//  4. a shape matches an object subject when every declared key matches
//  5. anything else does not match
//
// Async predicates, pending values and malformed guards never match here;
// use CheckAsync for those.
func Check(g, subject any) bool {
	return check(From(g), subject)
}

func check(g Guard, subject any) bool {
	if same(g.value, subject) {
		return true
	}
	switch g.kind {
	case KindPredicate:
		return g.pred(subject)
	case KindAlternation:
		for _, alt := range g.alts {
			if check(alt, subject) {
				return true
			}
		}
		return false
	case KindShape:
		// An empty shape matches only by identity, handled above.
		if len(g.fields) == 0 {
			return false
		}
		obj, ok := asObject(subject)
		if !ok {
			return false
		}
		for _, f := range g.fields {
			if !check(f.guard, fieldValue(obj, f.key)) {
				return false
			}
		}
		return true
	}
	return false
}
