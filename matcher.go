package guard

import "context"

// Predicate decides whether a subject matches.
type Predicate func(v any) bool

// Match implements Matcher.
func (p Predicate) Match(v any) bool { return p(v) }

// AsyncPredicate decides whether a subject matches and may block or fail.
// Errors propagate unchanged to the caller of the dispatch that invoked it.
type AsyncPredicate func(ctx context.Context, v any) (bool, error)

// MatchAsync implements AsyncMatcher.
func (p AsyncPredicate) MatchAsync(ctx context.Context, v any) (bool, error) { return p(ctx, v) }

// Matcher is implemented by values that can decide a match themselves.
// Predicate namespaces implement it so that a namespace such as p.String is
// usable directly as a guard.
type Matcher interface {
	Match(v any) bool
}

// AsyncMatcher is the blocking counterpart of Matcher.
type AsyncMatcher interface {
	MatchAsync(ctx context.Context, v any) (bool, error)
}

// All returns a predicate that matches when every guard matches.
func All(gs ...any) Predicate {
	compiled := compile(gs)
	return func(v any) bool {
		for _, g := range compiled {
			if !check(g, v) {
				return false
			}
		}
		return true
	}
}

// AnyOf returns a predicate that matches when any guard matches.
func AnyOf(gs ...any) Predicate {
	compiled := compile(gs)
	return func(v any) bool {
		for _, g := range compiled {
			if check(g, v) {
				return true
			}
		}
		return false
	}
}

func compile(gs []any) []Guard {
	out := make([]Guard, len(gs))
	for i, g := range gs {
		out[i] = From(g)
	}
	return out
}
