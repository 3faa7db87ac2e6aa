package guard

// Branch pairs a guard with the outcome of a match expression.
type Branch[Out any] struct {
	guard Guard
	out   func(v any) Out
}

// Case returns a branch producing out when g matches.
func Case[Out any](g any, out Out) Branch[Out] {
	return Branch[Out]{guard: From(g), out: func(any) Out { return out }}
}

// CaseFunc returns a branch producing fn(subject) when g matches.
func CaseFunc[In, Out any](g any, fn func(In) Out) Branch[Out] {
	return Branch[Out]{guard: From(g), out: func(v any) Out { return fn(as[In](v)) }}
}

// Select returns the outcome of the first branch whose guard matches value,
// or def when none does.
//
//	label := guard.Select(code, "unknown",
//	    guard.Case(200, "ok"),
//	    guard.Case([]int{301, 302}, "redirect"),
//	    guard.Case(p.Number.Gte(500), "server error"),
//	)
func Select[Out any](value any, def Out, branches ...Branch[Out]) Out {
	var h hooks
	if out, ok := first(&h, ModeExecute, branches, value); ok {
		return out
	}
	return def
}

// Expression is a match expression built by chaining With calls.
//
// Expression is safe for concurrent use after configuration. Do not call
// With or WithFunc while it is being executed.
type Expression[In, Out any] struct {
	value    In
	branches []Branch[Out]
	hooks    hooks
}

// Match starts a match expression over value. The outcome type is given
// explicitly, the input type is inferred:
//
//	size, _ := guard.Match[string](n).
//	    With(0, "empty").
//	    With(p.Number.Lt(10), "small").
//	    Execute()
func Match[Out, In any](value In, opts ...Option) *Expression[In, Out] {
	return &Expression[In, Out]{value: value, hooks: newHooks(opts)}
}

// Prepare returns an expression with no bound value, meant to be built
// once and run many times with ExecuteOn.
func Prepare[In, Out any](opts ...Option) *Expression[In, Out] {
	return &Expression[In, Out]{hooks: newHooks(opts)}
}

// With appends a branch producing out when g matches.
func (e *Expression[In, Out]) With(g any, out Out) *Expression[In, Out] {
	e.branches = append(e.branches, Case(g, out))
	return e
}

// WithFunc appends a branch producing fn(subject) when g matches.
func (e *Expression[In, Out]) WithFunc(g any, fn func(In) Out) *Expression[In, Out] {
	e.branches = append(e.branches, CaseFunc(g, fn))
	return e
}

// Execute evaluates the branches against the bound value in declaration
// order and returns the first outcome. The boolean reports whether any
// branch matched; when none did the outcome is the zero value.
func (e *Expression[In, Out]) Execute() (Out, bool) {
	return first(&e.hooks, ModeExecute, e.branches, e.value)
}

// ExecuteOn is Execute against v instead of the bound value.
func (e *Expression[In, Out]) ExecuteOn(v In) (Out, bool) {
	return first(&e.hooks, ModeExecute, e.branches, v)
}

// Otherwise executes the expression and returns fallback when no branch
// matched.
func (e *Expression[In, Out]) Otherwise(fallback Out) Out {
	if out, ok := first(&e.hooks, ModeOtherwise, e.branches, e.value); ok {
		return out
	}
	return fallback
}

// OtherwiseFunc executes the expression and returns fn(value) when no
// branch matched.
func (e *Expression[In, Out]) OtherwiseFunc(fn func(In) Out) Out {
	if out, ok := first(&e.hooks, ModeOtherwise, e.branches, e.value); ok {
		return out
	}
	return fn(e.value)
}

func first[Out any](h *hooks, mode Mode, branches []Branch[Out], v any) (Out, bool) {
	for i, b := range branches {
		if check(b.guard, v) {
			h.match(mode, i, v)
			return b.out(v), true
		}
	}
	h.noMatch(mode, v)
	var zero Out
	return zero, false
}

// as converts a subject back to the caller's input type. A nil subject
// yields the zero value.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
