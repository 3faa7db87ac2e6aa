package guard

import (
	"fmt"
	"log/slog"
)

// Mode names the dispatch operation that triggered a hook.
type Mode string

const (
	ModeExecute    Mode = "execute"
	ModeOtherwise  Mode = "otherwise"
	ModeLazy       Mode = "lazy"
	ModeExhaustive Mode = "exhaustive"
	ModeConcurrent Mode = "concurrent"
)

// OnMatchFunc is called for every branch whose outcome is taken or whose
// action runs. Branch is the zero-based declaration index.
type OnMatchFunc func(mode Mode, branch int, subject any)

// OnNoMatchFunc is called when an execution found no matching branch.
type OnNoMatchFunc func(mode Mode, subject any)

// OnErrorFunc is called when a predicate, outcome or action fails. The
// error is still returned to the caller.
type OnErrorFunc func(mode Mode, err error)

// hooks holds all configured hook functions.
type hooks struct {
	onMatch   []OnMatchFunc
	onNoMatch []OnNoMatchFunc
	onError   []OnErrorFunc
}

// Option configures hook behavior.
type Option func(*hooks)

// WithOnMatch adds a hook called when a branch is selected.
// Multiple hooks are called in order.
//
// Example:
//
//	guard.WithOnMatch(func(mode guard.Mode, branch int, _ any) {
//	    metrics.Incr("guard.match", "branch:"+strconv.Itoa(branch))
//	})
func WithOnMatch(fn OnMatchFunc) Option {
	return func(h *hooks) {
		h.onMatch = append(h.onMatch, fn)
	}
}

// WithOnNoMatch adds a hook called when no branch matched.
// Multiple hooks are called in order.
//
// Example:
//
//	guard.WithOnNoMatch(func(mode guard.Mode, subject any) {
//	    logger.Warn("unhandled event", "type", fmt.Sprintf("%T", subject))
//	})
func WithOnNoMatch(fn OnNoMatchFunc) Option {
	return func(h *hooks) {
		h.onNoMatch = append(h.onNoMatch, fn)
	}
}

// WithOnError adds a hook called when a predicate, outcome or action
// returns an error. Multiple hooks are called in order.
func WithOnError(fn OnErrorFunc) Option {
	return func(h *hooks) {
		h.onError = append(h.onError, fn)
	}
}

// WithLogger logs dispatch decisions at debug level and failures at error
// level. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(h *hooks) {
		if l == nil {
			return
		}
		h.onMatch = append(h.onMatch, func(mode Mode, branch int, subject any) {
			l.Debug("guard matched",
				slog.String("mode", string(mode)),
				slog.Int("branch", branch),
				slog.String("subject_type", fmt.Sprintf("%T", subject)),
			)
		})
		h.onNoMatch = append(h.onNoMatch, func(mode Mode, subject any) {
			l.Debug("guard unmatched",
				slog.String("mode", string(mode)),
				slog.String("subject_type", fmt.Sprintf("%T", subject)),
			)
		})
		h.onError = append(h.onError, func(mode Mode, err error) {
			l.Error("guard failed", slog.String("mode", string(mode)), slog.Any("error", err))
		})
	}
}

func newHooks(opts []Option) hooks {
	var h hooks
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

func (h *hooks) match(mode Mode, branch int, subject any) {
	for _, fn := range h.onMatch {
		fn(mode, branch, subject)
	}
}

func (h *hooks) noMatch(mode Mode, subject any) {
	for _, fn := range h.onNoMatch {
		fn(mode, subject)
	}
}

// fail calls the error hooks and returns err unchanged.
func (h *hooks) fail(mode Mode, err error) error {
	for _, fn := range h.onError {
		fn(mode, err)
	}
	return err
}
