package p

import (
	"encoding/json"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bjaus/guard"
	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
)

var (
	reUppercase    = regexp.MustCompile(`^[A-Z]*$`)
	reLowercase    = regexp.MustCompile(`^[a-z]*$`)
	reNumeric      = regexp.MustCompile(`^[0-9]*$`)
	reAlphabetic   = regexp.MustCompile(`^[a-zA-Z]*$`)
	reAlphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
)

// StringPredicates match strings, including named string types. Every
// refinement fails for non-strings.
type StringPredicates struct {
	is guard.Predicate

	Includes   func(sub string) guard.Predicate
	StartsWith func(prefix string) guard.Predicate
	EndsWith   func(suffix string) guard.Predicate

	// The character classes are ASCII only and match the empty string.
	Uppercase    guard.Predicate
	Lowercase    guard.Predicate
	Alphabetic   guard.Predicate
	Alphanumeric guard.Predicate
	Numeric      guard.Predicate

	// URL matches absolute URLs; LooseURL also accepts them without a
	// scheme, such as "example.com/a".
	URL      guard.Predicate
	LooseURL guard.Predicate
	UUID     guard.Predicate

	Enum  func(values ...string) guard.Predicate
	Regex func(re *regexp.Regexp) guard.Predicate
	// Pattern compiles expr with ECMAScript semantics and panics if it is
	// invalid.
	Pattern func(expr string) guard.Predicate

	// Len and LenRange count runes. A negative max leaves the range open.
	Len      func(n int) guard.Predicate
	LenRange func(min, max int) guard.Predicate
}

// Match implements guard.Matcher.
func (s StringPredicates) Match(v any) bool { return s.is(v) }

func newStringPredicates(w wrapper) StringPredicates {
	return StringPredicates{
		is: w(isString),

		Includes:   lift(w, stringTest(strings.Contains)),
		StartsWith: lift(w, stringTest(strings.HasPrefix)),
		EndsWith:   lift(w, stringTest(strings.HasSuffix)),

		Uppercase:    w(stringRegex(reUppercase)),
		Lowercase:    w(stringRegex(reLowercase)),
		Alphabetic:   w(stringRegex(reAlphabetic)),
		Alphanumeric: w(stringRegex(reAlphanumeric)),
		Numeric:      w(stringRegex(reNumeric)),

		URL:      w(isURL),
		LooseURL: w(isLooseURL),
		UUID:     w(isUUID),

		Enum:    liftN(w, stringEnum),
		Regex:   lift(w, stringRegex),
		Pattern: lift(w, stringPattern),

		Len:      lift(w, stringLen),
		LenRange: lift2(w, stringLenRange),
	}
}

// stringOf extracts the string behind v. json.Number is a number, not a
// string.
func stringOf(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func isString(v any) bool {
	_, ok := stringOf(v)
	return ok
}

func stringTest(fn func(s, arg string) bool) func(string) guard.Predicate {
	return func(arg string) guard.Predicate {
		return func(input any) bool {
			s, ok := stringOf(input)
			return ok && fn(s, arg)
		}
	}
}

func stringRegex(re *regexp.Regexp) guard.Predicate {
	return func(input any) bool {
		s, ok := stringOf(input)
		return ok && re.MatchString(s)
	}
}

func stringPattern(expr string) guard.Predicate {
	re := regexp2.MustCompile(expr, regexp2.ECMAScript)
	return func(input any) bool {
		s, ok := stringOf(input)
		if !ok {
			return false
		}
		matched, err := re.MatchString(s)
		return err == nil && matched
	}
}

func stringEnum(values ...string) guard.Predicate {
	return func(input any) bool {
		s, ok := stringOf(input)
		return ok && slices.Contains(values, s)
	}
}

func stringLen(n int) guard.Predicate {
	return stringLenRange(n, n)
}

func stringLenRange(min, max int) guard.Predicate {
	return func(input any) bool {
		s, ok := stringOf(input)
		if !ok {
			return false
		}
		n := utf8.RuneCountInString(s)
		return n >= min && (max < 0 || n <= max)
	}
}

func parsesAsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

func isURL(input any) bool {
	s, ok := stringOf(input)
	return ok && parsesAsURL(s)
}

func isLooseURL(input any) bool {
	s, ok := stringOf(input)
	return ok && (parsesAsURL(s) || parsesAsURL("http://"+s))
}

func isUUID(input any) bool {
	s, ok := stringOf(input)
	return ok && uuid.Validate(s) == nil
}
