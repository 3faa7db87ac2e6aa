package guard

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AsyncAction pairs a guard with a side effect that may block or fail.
type AsyncAction struct {
	guard Guard
	act   func(ctx context.Context, v any) error
}

// OnAsync returns an async action running fn when g matches. fn may be nil.
func OnAsync[In any](g any, fn func(context.Context, In) error) AsyncAction {
	a := AsyncAction{guard: From(g)}
	if fn != nil {
		a.act = func(ctx context.Context, v any) error { return fn(ctx, as[In](v)) }
	}
	return a
}

// DispatchAsync runs the actions whose guards match value using ModeLazy,
// ModeConcurrent, or (for any other mode) ModeExhaustive.
func DispatchAsync(ctx context.Context, value any, mode Mode, actions ...AsyncAction) (bool, error) {
	var h hooks
	if mode == ModeConcurrent {
		return runConcurrent(ctx, &h, actions, value)
	}
	if mode != ModeLazy {
		mode = ModeExhaustive
	}
	return runAsync(ctx, &h, mode, actions, value)
}

// AsyncStatement is the async counterpart of Statement.
type AsyncStatement[In any] struct {
	value   In
	actions []AsyncAction
	hooks   hooks
}

// WhenAsync starts an async when statement over value.
func WhenAsync[In any](value In, opts ...Option) *AsyncStatement[In] {
	return &AsyncStatement[In]{value: value, hooks: newHooks(opts)}
}

// PrepareWhenAsync returns an async statement with no bound value.
func PrepareWhenAsync[In any](opts ...Option) *AsyncStatement[In] {
	return &AsyncStatement[In]{hooks: newHooks(opts)}
}

// Is appends a branch running act when g matches. act may be nil.
func (s *AsyncStatement[In]) Is(g any, act func(context.Context, In) error) *AsyncStatement[In] {
	s.actions = append(s.actions, OnAsync(g, act))
	return s
}

// Lazy awaits each guard in turn and runs the first matching action only.
func (s *AsyncStatement[In]) Lazy(ctx context.Context) (bool, error) {
	return runAsync(ctx, &s.hooks, ModeLazy, s.actions, s.value)
}

// LazyOn is Lazy against v.
func (s *AsyncStatement[In]) LazyOn(ctx context.Context, v In) (bool, error) {
	return runAsync(ctx, &s.hooks, ModeLazy, s.actions, v)
}

// Exhaustive awaits each guard in turn and runs every matching action,
// awaiting each before testing the next branch.
func (s *AsyncStatement[In]) Exhaustive(ctx context.Context) (bool, error) {
	return runAsync(ctx, &s.hooks, ModeExhaustive, s.actions, s.value)
}

// ExhaustiveOn is Exhaustive against v.
func (s *AsyncStatement[In]) ExhaustiveOn(ctx context.Context, v In) (bool, error) {
	return runAsync(ctx, &s.hooks, ModeExhaustive, s.actions, v)
}

// Concurrent starts every guard at once and runs each matching action as
// soon as its guard resolves. Actions have no ordering guarantee between
// them. It returns once every guard and action has settled.
func (s *AsyncStatement[In]) Concurrent(ctx context.Context) (bool, error) {
	return runConcurrent(ctx, &s.hooks, s.actions, s.value)
}

// ConcurrentOn is Concurrent against v.
func (s *AsyncStatement[In]) ConcurrentOn(ctx context.Context, v In) (bool, error) {
	return runConcurrent(ctx, &s.hooks, s.actions, v)
}

// Otherwise runs exhaustively and calls act when no branch matched.
func (s *AsyncStatement[In]) Otherwise(ctx context.Context, act func(context.Context, In) error) error {
	matched, err := runAsync(ctx, &s.hooks, ModeOtherwise, s.actions, s.value)
	if err != nil || matched || act == nil {
		return err
	}
	return act(ctx, s.value)
}

func runAsync(ctx context.Context, h *hooks, mode Mode, actions []AsyncAction, v any) (bool, error) {
	matched := false
	for i, a := range actions {
		ok, err := evaluator{}.check(ctx, a.guard, v)
		if err != nil {
			return matched, h.fail(mode, err)
		}
		if !ok {
			continue
		}
		matched = true
		h.match(mode, i, v)
		if a.act != nil {
			if err := a.act(ctx, v); err != nil {
				return matched, h.fail(mode, err)
			}
		}
		if mode == ModeLazy {
			break
		}
	}
	if !matched {
		h.noMatch(mode, v)
	}
	return matched, nil
}

func runConcurrent(ctx context.Context, h *hooks, actions []AsyncAction, v any) (bool, error) {
	var (
		ev      = evaluator{concurrent: true}
		matched = make([]bool, len(actions))
		eg      errgroup.Group
	)
	for i, a := range actions {
		eg.Go(func() error {
			ok, err := ev.check(ctx, a.guard, v)
			if err != nil || !ok {
				return err
			}
			matched[i] = true
			if a.act == nil {
				return nil
			}
			return a.act(ctx, v)
		})
	}
	err := eg.Wait()

	found := false
	for i, ok := range matched {
		if ok {
			found = true
			h.match(ModeConcurrent, i, v)
		}
	}
	if err != nil {
		return found, h.fail(ModeConcurrent, err)
	}
	if !found {
		h.noMatch(ModeConcurrent, v)
	}
	return found, nil
}
