package guard

import "context"

// Pending is a boolean that is already being computed. Used as a guard it
// matches when it resolves to true. Once settled its result never changes,
// so one Pending may guard any number of executions.
type Pending struct {
	done chan struct{}
	ok   bool
	err  error
}

// Resolve starts fn in a new goroutine and returns its pending result.
func Resolve(fn func() (bool, error)) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.ok, p.err = fn()
	}()
	return p
}

// Resolved returns an already settled Pending.
func Resolved(ok bool) *Pending {
	p := &Pending{done: make(chan struct{}), ok: ok}
	close(p.done)
	return p
}

// Rejected returns a Pending that settled with err.
func Rejected(err error) *Pending {
	p := &Pending{done: make(chan struct{}), err: err}
	close(p.done)
	return p
}

// Await blocks until p settles or ctx is done.
func (p *Pending) Await(ctx context.Context) (bool, error) {
	select {
	case <-p.done:
		return p.ok, p.err
	default:
	}
	select {
	case <-p.done:
		return p.ok, p.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Settled reports whether p has a result without blocking.
func (p *Pending) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
