package p

import (
	"time"

	"github.com/bjaus/guard"
)

// dateLayouts are tried in order when a bound is given as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DatePredicates match time.Time and non-nil *time.Time values.
//
// Bounds may be a time.Time, a string in RFC 3339 or "2006-01-02" form, or
// an int or int64 holding Unix milliseconds. A bound that cannot be read
// as a time never matches.
type DatePredicates struct {
	is guard.Predicate

	Before     func(bound any) guard.Predicate
	AtOrBefore func(bound any) guard.Predicate
	After      func(bound any) guard.Predicate
	AtOrAfter  func(bound any) guard.Predicate
}

// Match implements guard.Matcher.
func (d DatePredicates) Match(v any) bool { return d.is(v) }

func newDatePredicates(w wrapper) DatePredicates {
	return DatePredicates{
		is: w(isDate),

		Before:     lift(w, dateTest(func(t, b time.Time) bool { return t.Before(b) })),
		AtOrBefore: lift(w, dateTest(func(t, b time.Time) bool { return !t.After(b) })),
		After:      lift(w, dateTest(func(t, b time.Time) bool { return t.After(b) })),
		AtOrAfter:  lift(w, dateTest(func(t, b time.Time) bool { return !t.Before(b) })),
	}
}

func timeOf(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}

func isDate(v any) bool {
	_, ok := timeOf(v)
	return ok
}

func parseBound(bound any) (time.Time, bool) {
	if t, ok := timeOf(bound); ok {
		return t, true
	}
	switch b := bound.(type) {
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, b); err == nil {
				return t, true
			}
		}
	case int:
		return time.UnixMilli(int64(b)), true
	case int64:
		return time.UnixMilli(b), true
	}
	return time.Time{}, false
}

func dateTest(fn func(t, bound time.Time) bool) func(any) guard.Predicate {
	return func(bound any) guard.Predicate {
		b, valid := parseBound(bound)
		return func(input any) bool {
			t, ok := timeOf(input)
			return valid && ok && fn(t, b)
		}
	}
}
