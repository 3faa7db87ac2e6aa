package guard

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when the input is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// Document is a JSON value backed by gjson. Objects are traversed lazily by
// shape guards, so a large payload can be matched without decoding it.
type Document struct {
	res gjson.Result
}

// ParseJSON validates raw and wraps it as a Document.
func ParseJSON(raw []byte) (Document, error) {
	if !gjson.ValidBytes(raw) {
		return Document{}, ErrInvalidJSON
	}
	return Document{res: gjson.ParseBytes(raw)}, nil
}

// IsObject reports whether the document is a JSON object.
func (d Document) IsObject() bool { return d.res.IsObject() }

// Raw returns the document's JSON text.
func (d Document) Raw() string { return d.res.Raw }

// Value decodes the document: objects stay Documents, arrays become []any,
// numbers float64, and null nil.
func (d Document) Value() any { return decode(d.res) }

// Get returns the decoded value at a gjson path such as "detail.userId".
func (d Document) Get(path string) (any, bool) {
	r := d.res.Get(path)
	if !r.Exists() {
		return nil, false
	}
	return decode(r), true
}

// Sub returns the value at path as a Document without decoding it.
func (d Document) Sub(path string) (Document, bool) {
	r := d.res.Get(path)
	if !r.Exists() {
		return Document{}, false
	}
	return Document{res: r}, true
}

// Has reports whether the path exists.
func (d Document) Has(path string) bool {
	return d.res.Get(path).Exists()
}

// Lookup implements Fields. Keys are matched literally, without path syntax.
func (d Document) Lookup(key string) (any, bool) {
	var (
		found gjson.Result
		ok    bool
	)
	d.res.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found, ok = v, true
			return false
		}
		return true
	})
	if !ok {
		return nil, false
	}
	return decode(found), true
}

// Keys implements Fields. Duplicate keys are reported once.
func (d Document) Keys() []string {
	if !d.res.IsObject() {
		return nil
	}
	var keys []string
	seen := make(map[string]struct{})
	d.res.ForEach(func(k, _ gjson.Result) bool {
		if _, dup := seen[k.Str]; !dup {
			seen[k.Str] = struct{}{}
			keys = append(keys, k.Str)
		}
		return true
	})
	return keys
}

// MarshalJSON returns the raw JSON text.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.res.Raw == "" {
		return []byte("null"), nil
	}
	return []byte(d.res.Raw), nil
}

func (d Document) String() string { return d.res.Raw }

func decode(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num
	case gjson.String:
		return r.Str
	}
	if r.IsObject() {
		return Document{res: r}
	}
	if r.IsArray() {
		items := r.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = decode(item)
		}
		return out
	}
	return nil
}
