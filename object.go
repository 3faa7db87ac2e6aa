package guard

import (
	"reflect"
	"strings"
	"sync"
)

// Undefined is the value a shape field guard sees when the subject has no
// such key. A literal Undefined field guard therefore matches absent keys.
var Undefined = undefined{}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Fields is implemented by subjects that expose keyed fields to shape
// guards. Lookup reports false for absent keys.
type Fields interface {
	Lookup(key string) (any, bool)
	Keys() []string
}

type object interface {
	lookup(key string) (any, bool)
	keys() []string
}

// asObject reports whether v can be traversed by a shape guard: a
// string-keyed map, a struct or non-nil pointer to one, a JSON object
// Document, or a Fields implementation.
func asObject(v any) (object, bool) {
	switch v.(type) {
	case nil, undefined:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	if d, ok := v.(*Document); ok {
		v = *d
	}

	switch t := v.(type) {
	case Document:
		if !t.IsObject() {
			return nil, false
		}
		return fieldsObject{t}, true
	case Fields:
		return fieldsObject{t}, true
	}

	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		return mapObject{rv}, true
	case reflect.Struct:
		return structObject{rv, fieldsOf(rv.Type())}, true
	}
	return nil, false
}

// IsObject reports whether v can be traversed by a shape guard.
func IsObject(v any) bool {
	_, ok := asObject(v)
	return ok
}

// fieldValue returns the subject's value at key, or Undefined.
func fieldValue(obj object, key string) any {
	if v, ok := obj.lookup(key); ok {
		return v
	}
	return Undefined
}

type fieldsObject struct{ f Fields }

func (o fieldsObject) lookup(key string) (any, bool) { return o.f.Lookup(key) }
func (o fieldsObject) keys() []string                { return o.f.Keys() }

type mapObject struct{ rv reflect.Value }

func (o mapObject) lookup(key string) (any, bool) {
	v := o.rv.MapIndex(reflect.ValueOf(key).Convert(o.rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

func (o mapObject) keys() []string {
	keys := make([]string, 0, o.rv.Len())
	iter := o.rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	return keys
}

type structObject struct {
	rv     reflect.Value
	fields []structField
}

// structField maps a key to an exported field. The key is the json tag
// name when one is set, otherwise the Go field name. Fields of untagged
// embedded structs are promoted, and a shallower field hides a deeper one
// with the same key.
type structField struct {
	key   string
	index []int
}

var structFields sync.Map // reflect.Type -> []structField

func fieldsOf(t reflect.Type) []structField {
	if cached, ok := structFields.Load(t); ok {
		return cached.([]structField)
	}
	fields := typeFields(t, make(map[reflect.Type]bool))
	structFields.Store(t, fields)
	return fields
}

func typeFields(t reflect.Type, visiting map[reflect.Type]bool) []structField {
	visiting[t] = true
	defer delete(visiting, t)
	var (
		fields   []structField
		embedded []structField
		seen     = make(map[string]bool)
	)
	for i := range t.NumField() {
		f := t.Field(i)
		name, tagged := jsonName(f)
		if name == "-" {
			continue
		}
		if f.Anonymous && !tagged {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				if !f.IsExported() {
					continue
				}
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if visiting[et] {
					continue
				}
				for _, ef := range typeFields(et, visiting) {
					embedded = append(embedded, structField{
						key:   ef.key,
						index: append([]int{i}, ef.index...),
					})
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if !tagged {
			name = f.Name
		}
		seen[name] = true
		fields = append(fields, structField{key: name, index: []int{i}})
	}
	for _, ef := range embedded {
		if !seen[ef.key] {
			seen[ef.key] = true
			fields = append(fields, ef)
		}
	}
	return fields
}

// jsonName returns the name from f's json tag and whether the tag sets one.
func jsonName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, name != ""
}

func (o structObject) lookup(key string) (any, bool) {
	for _, f := range o.fields {
		if f.key == key {
			fv, err := o.rv.FieldByIndexErr(f.index)
			if err != nil {
				return nil, false
			}
			return fv.Interface(), true
		}
	}
	return nil, false
}

// keys omits fields promoted through a nil embedded pointer.
func (o structObject) keys() []string {
	keys := make([]string, 0, len(o.fields))
	for _, f := range o.fields {
		if _, err := o.rv.FieldByIndexErr(f.index); err == nil {
			keys = append(keys, f.key)
		}
	}
	return keys
}
