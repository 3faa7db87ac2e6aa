package guard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// CheckAsync reports whether subject satisfies g, awaiting async predicates
// and pending values. Shape fields are checked one after another in key
// order. Predicate errors are returned as-is; a malformed guard yields a
// *MalformedGuardError.
func CheckAsync(ctx context.Context, g, subject any) (bool, error) {
	return evaluator{}.check(ctx, From(g), subject)
}

// evaluator carries the scheduling mode of one async evaluation. In
// concurrent mode all field checks of a shape start together and the shape
// is decided once every one of them has settled.
type evaluator struct {
	concurrent bool
}

func (e evaluator) check(ctx context.Context, g Guard, subject any) (bool, error) {
	if g.kind != KindMalformed && same(g.value, subject) {
		return true, nil
	}
	switch g.kind {
	case KindLiteral:
		return false, nil
	case KindPredicate:
		return g.pred(subject), nil
	case KindAsync:
		return g.async(ctx, subject)
	case KindPending:
		return g.pending.Await(ctx)
	case KindAlternation:
		for _, alt := range g.alts {
			ok, err := e.check(ctx, alt, subject)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	case KindShape:
		return e.shape(ctx, g, subject)
	}
	return false, &MalformedGuardError{Type: fmt.Sprintf("%T", g.value)}
}

func (e evaluator) shape(ctx context.Context, g Guard, subject any) (bool, error) {
	if len(g.fields) == 0 {
		return false, nil
	}
	obj, ok := asObject(subject)
	if !ok {
		return false, nil
	}

	if !e.concurrent {
		for _, f := range g.fields {
			ok, err := e.check(ctx, f.guard, fieldValue(obj, f.key))
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}

	results := make([]bool, len(g.fields))
	var eg errgroup.Group
	for i, f := range g.fields {
		eg.Go(func() error {
			ok, err := e.check(ctx, f.guard, fieldValue(obj, f.key))
			results[i] = ok
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return false, err
	}
	for _, ok := range results {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
