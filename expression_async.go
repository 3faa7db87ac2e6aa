package guard

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AsyncBranch pairs a guard with the outcome of an async match expression.
type AsyncBranch[Out any] struct {
	guard Guard
	out   func(ctx context.Context, v any) (Out, error)
}

// CaseAsync returns an async branch producing out when g matches.
func CaseAsync[Out any](g any, out Out) AsyncBranch[Out] {
	return AsyncBranch[Out]{
		guard: From(g),
		out:   func(context.Context, any) (Out, error) { return out, nil },
	}
}

// CaseAsyncFunc returns an async branch producing fn(ctx, subject) when g
// matches.
func CaseAsyncFunc[In, Out any](g any, fn func(context.Context, In) (Out, error)) AsyncBranch[Out] {
	return AsyncBranch[Out]{
		guard: From(g),
		out: func(ctx context.Context, v any) (Out, error) {
			return fn(ctx, as[In](v))
		},
	}
}

// SelectAsync is Select with async guards and outcomes. Branches are tested
// one at a time: a later guard does not start until the earlier one has
// resolved.
func SelectAsync[Out any](ctx context.Context, value any, def Out, branches ...AsyncBranch[Out]) (Out, error) {
	var h hooks
	out, ok, err := firstAsync(ctx, &h, ModeExecute, branches, value)
	if err != nil || ok {
		return out, err
	}
	return def, nil
}

// AsyncExpression is the async counterpart of Expression.
type AsyncExpression[In, Out any] struct {
	value    In
	branches []AsyncBranch[Out]
	hooks    hooks
}

// MatchAsync starts an async match expression over value.
func MatchAsync[Out, In any](value In, opts ...Option) *AsyncExpression[In, Out] {
	return &AsyncExpression[In, Out]{value: value, hooks: newHooks(opts)}
}

// PrepareAsync returns an async expression with no bound value.
func PrepareAsync[In, Out any](opts ...Option) *AsyncExpression[In, Out] {
	return &AsyncExpression[In, Out]{hooks: newHooks(opts)}
}

// With appends a branch producing out when g matches.
func (e *AsyncExpression[In, Out]) With(g any, out Out) *AsyncExpression[In, Out] {
	e.branches = append(e.branches, CaseAsync(g, out))
	return e
}

// WithFunc appends a branch producing fn(ctx, subject) when g matches.
func (e *AsyncExpression[In, Out]) WithFunc(g any, fn func(context.Context, In) (Out, error)) *AsyncExpression[In, Out] {
	e.branches = append(e.branches, CaseAsyncFunc(g, fn))
	return e
}

// Execute tests the branches sequentially against the bound value and
// returns the first outcome.
func (e *AsyncExpression[In, Out]) Execute(ctx context.Context) (Out, bool, error) {
	return firstAsync(ctx, &e.hooks, ModeExecute, e.branches, e.value)
}

// ExecuteOn is Execute against v.
func (e *AsyncExpression[In, Out]) ExecuteOn(ctx context.Context, v In) (Out, bool, error) {
	return firstAsync(ctx, &e.hooks, ModeExecute, e.branches, v)
}

// Concurrent starts every branch guard at once and waits for all of them.
// The result is the outcome of the earliest-declared matching branch,
// regardless of completion order. Outcome functions of every matching
// branch run; only the first one's value is returned.
func (e *AsyncExpression[In, Out]) Concurrent(ctx context.Context) (Out, bool, error) {
	return concurrentFirst(ctx, &e.hooks, e.branches, e.value)
}

// ConcurrentOn is Concurrent against v.
func (e *AsyncExpression[In, Out]) ConcurrentOn(ctx context.Context, v In) (Out, bool, error) {
	return concurrentFirst(ctx, &e.hooks, e.branches, v)
}

// Otherwise executes the expression and returns fallback when no branch
// matched.
func (e *AsyncExpression[In, Out]) Otherwise(ctx context.Context, fallback Out) (Out, error) {
	out, ok, err := firstAsync(ctx, &e.hooks, ModeOtherwise, e.branches, e.value)
	if err != nil || ok {
		return out, err
	}
	return fallback, nil
}

// OtherwiseFunc executes the expression and returns fn(ctx, value) when no
// branch matched.
func (e *AsyncExpression[In, Out]) OtherwiseFunc(ctx context.Context, fn func(context.Context, In) (Out, error)) (Out, error) {
	out, ok, err := firstAsync(ctx, &e.hooks, ModeOtherwise, e.branches, e.value)
	if err != nil || ok {
		return out, err
	}
	return fn(ctx, e.value)
}

func firstAsync[Out any](ctx context.Context, h *hooks, mode Mode, branches []AsyncBranch[Out], v any) (Out, bool, error) {
	var zero Out
	for i, b := range branches {
		ok, err := evaluator{}.check(ctx, b.guard, v)
		if err != nil {
			return zero, false, h.fail(mode, err)
		}
		if !ok {
			continue
		}
		h.match(mode, i, v)
		out, err := b.out(ctx, v)
		if err != nil {
			return zero, true, h.fail(mode, err)
		}
		return out, true, nil
	}
	h.noMatch(mode, v)
	return zero, false, nil
}

func concurrentFirst[Out any](ctx context.Context, h *hooks, branches []AsyncBranch[Out], v any) (Out, bool, error) {
	type result struct {
		matched bool
		out     Out
	}
	var (
		zero    Out
		results = make([]result, len(branches))
		ev      = evaluator{concurrent: true}
		eg      errgroup.Group
	)
	for i, b := range branches {
		eg.Go(func() error {
			ok, err := ev.check(ctx, b.guard, v)
			if err != nil || !ok {
				return err
			}
			out, err := b.out(ctx, v)
			if err != nil {
				return err
			}
			results[i] = result{matched: true, out: out}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return zero, false, h.fail(ModeConcurrent, err)
	}
	for i, r := range results {
		if r.matched {
			h.match(ModeConcurrent, i, v)
			return r.out, true, nil
		}
	}
	h.noMatch(ModeConcurrent, v)
	return zero, false, nil
}
