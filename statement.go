package guard

// Action pairs a guard with a side effect of a when statement. A nil
// effect is allowed; the branch still counts as matched.
type Action struct {
	guard Guard
	act   func(v any)
}

// On returns an action running fn when g matches.
func On[In any](g any, fn func(In)) Action {
	a := Action{guard: From(g)}
	if fn != nil {
		a.act = func(v any) { fn(as[In](v)) }
	}
	return a
}

// Dispatch runs the actions whose guards match value. With ModeLazy it stops
// after the first match; any other mode runs every matching action in
// declaration order. It reports whether anything matched.
func Dispatch(value any, mode Mode, actions ...Action) bool {
	var h hooks
	if mode != ModeLazy {
		mode = ModeExhaustive
	}
	return run(&h, mode, actions, value)
}

// Statement is a when statement built by chaining Is calls.
type Statement[In any] struct {
	value   In
	actions []Action
	hooks   hooks
}

// When starts a when statement over value.
func When[In any](value In, opts ...Option) *Statement[In] {
	return &Statement[In]{value: value, hooks: newHooks(opts)}
}

// PrepareWhen returns a statement with no bound value.
func PrepareWhen[In any](opts ...Option) *Statement[In] {
	return &Statement[In]{hooks: newHooks(opts)}
}

// Is appends a branch running act when g matches. act may be nil.
func (s *Statement[In]) Is(g any, act func(In)) *Statement[In] {
	s.actions = append(s.actions, On(g, act))
	return s
}

// Lazy runs the action of the first matching branch only.
func (s *Statement[In]) Lazy() bool {
	return run(&s.hooks, ModeLazy, s.actions, s.value)
}

// LazyOn is Lazy against v.
func (s *Statement[In]) LazyOn(v In) bool {
	return run(&s.hooks, ModeLazy, s.actions, v)
}

// Exhaustive runs the action of every matching branch in declaration order.
func (s *Statement[In]) Exhaustive() bool {
	return run(&s.hooks, ModeExhaustive, s.actions, s.value)
}

// ExhaustiveOn is Exhaustive against v.
func (s *Statement[In]) ExhaustiveOn(v In) bool {
	return run(&s.hooks, ModeExhaustive, s.actions, v)
}

// Otherwise runs exhaustively and calls act when no branch matched.
func (s *Statement[In]) Otherwise(act func(In)) {
	if !run(&s.hooks, ModeOtherwise, s.actions, s.value) && act != nil {
		act(s.value)
	}
}

func run(h *hooks, mode Mode, actions []Action, v any) bool {
	matched := false
	for i, a := range actions {
		if !check(a.guard, v) {
			continue
		}
		matched = true
		h.match(mode, i, v)
		if a.act != nil {
			a.act(v)
		}
		if mode == ModeLazy {
			break
		}
	}
	if !matched {
		h.noMatch(mode, v)
	}
	return matched
}
