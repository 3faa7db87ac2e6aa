package p

import (
	"encoding/json"

	"github.com/bjaus/guard"
	"github.com/tidwall/gjson"
)

// JSONPredicates match JSON text: a guard.Document, or a []byte,
// json.RawMessage or string holding valid JSON. Paths use gjson syntax,
// e.g. "detail.items.#" or "tags.0".
type JSONPredicates struct {
	is guard.Predicate

	// Has matches documents in which every path exists.
	Has func(paths ...string) guard.Predicate
	// Equals matches documents whose value at path, rendered as a string,
	// equals value. Numbers render without quotes: Equals("n", "42").
	Equals func(path, value string) guard.Predicate
	// Path checks the decoded value at path against g. An absent path is
	// seen as guard.Undefined, so Path(path, p.Optional.String) accepts
	// both a missing and a string value.
	Path func(path string, g any) guard.Predicate
}

// Match implements guard.Matcher.
func (j JSONPredicates) Match(v any) bool { return j.is(v) }

func newJSONPredicates(w wrapper) JSONPredicates {
	return JSONPredicates{
		is: w(isJSON),

		Has:    liftN(w, jsonHas),
		Equals: lift2(w, jsonEquals),
		Path:   lift2(w, jsonPath),
	}
}

// documentOf returns v as a parsed document.
func documentOf(v any) (guard.Document, bool) {
	var raw []byte
	switch t := v.(type) {
	case guard.Document:
		return t, t.Raw() != ""
	case json.RawMessage:
		raw = t
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		return guard.Document{}, false
	}
	doc, err := guard.ParseJSON(raw)
	return doc, err == nil
}

func isJSON(v any) bool {
	_, ok := documentOf(v)
	return ok
}

func jsonHas(paths ...string) guard.Predicate {
	return func(input any) bool {
		doc, ok := documentOf(input)
		if !ok {
			return false
		}
		for _, path := range paths {
			if !doc.Has(path) {
				return false
			}
		}
		return true
	}
}

func jsonEquals(path, value string) guard.Predicate {
	return func(input any) bool {
		doc, ok := documentOf(input)
		if !ok {
			return false
		}
		r := gjson.Get(doc.Raw(), path)
		return r.Exists() && r.String() == value
	}
}

func jsonPath(path string, g any) guard.Predicate {
	compiled := guard.From(g)
	return func(input any) bool {
		doc, ok := documentOf(input)
		if !ok {
			return false
		}
		v, found := doc.Get(path)
		if !found {
			v = guard.Undefined
		}
		return guard.Check(compiled, v)
	}
}
