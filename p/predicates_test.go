package p

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"math/big"
	"regexp"
	"testing"
	"time"

	"github.com/bjaus/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

func check(t *testing.T, pred guard.Predicate, match []any, reject []any) {
	t.Helper()
	for _, v := range match {
		assert.True(t, pred(v), "expected match for %#v", v)
	}
	for _, v := range reject {
		assert.False(t, pred(v), "expected no match for %#v", v)
	}
}

func TestPrimitives(t *testing.T) {
	t.Run("any", func(t *testing.T) {
		check(t, Any, []any{nil, guard.Undefined, 0, "", []int{}}, nil)
	})

	t.Run("nullish", func(t *testing.T) {
		check(t, Nullish,
			[]any{nil, guard.Undefined, (*int)(nil), map[string]any(nil), []int(nil), error(nil)},
			[]any{0, "", false, []int{}, map[string]any{}})
	})

	t.Run("boolean", func(t *testing.T) {
		check(t, Boolean, []any{true, false}, []any{0, "true", nil})
	})

	t.Run("truthy and falsy", func(t *testing.T) {
		falsy := []any{nil, guard.Undefined, false, 0, 0.0, uint8(0), "", math.NaN()}
		truthy := []any{true, 1, -1, 0.1, "0", []int{}, map[string]any{}, struct{}{}}
		check(t, Falsy, falsy, truthy)
		check(t, Truthy, truthy, falsy)
	})
}

func TestString(t *testing.T) {
	t.Run("type", func(t *testing.T) {
		check(t, String.Match, []any{"", "a", status("paid")}, []any{1, nil, []byte("a"), json.Number("1")})
	})

	t.Run("includes, starts and ends with", func(t *testing.T) {
		check(t, String.Includes("ell"), []any{"hello", status("bell")}, []any{"help", 1})
		check(t, String.StartsWith("he"), []any{"hello"}, []any{"ohe"})
		check(t, String.EndsWith("lo"), []any{"hello"}, []any{"lol"})
	})

	t.Run("character classes", func(t *testing.T) {
		check(t, String.Uppercase, []any{"ABC", ""}, []any{"AbC", "A1"})
		check(t, String.Lowercase, []any{"abc"}, []any{"aBc"})
		check(t, String.Alphabetic, []any{"aBc"}, []any{"ab1", "a b"})
		check(t, String.Alphanumeric, []any{"aB1"}, []any{"a-1"})
		check(t, String.Numeric, []any{"0123"}, []any{"1.5", "-1", "１２"})
	})

	t.Run("urls", func(t *testing.T) {
		check(t, String.URL,
			[]any{"https://example.com/a?b=c", "mailto:ada@example.com"},
			[]any{"example.com/a", "", "://bad"})
		check(t, String.LooseURL,
			[]any{"https://example.com", "example.com/a"},
			[]any{"", 42})
	})

	t.Run("uuid", func(t *testing.T) {
		check(t, String.UUID,
			[]any{"3b241101-e2bb-4255-8caf-4136c566a962", "3B241101-E2BB-4255-8CAF-4136C566A962"},
			[]any{"3b241101", "not-a-uuid", 1})
	})

	t.Run("enum", func(t *testing.T) {
		check(t, String.Enum("paid", "open"), []any{"paid", status("open")}, []any{"closed", ""})
		check(t, String.Enum(), nil, []any{""})
	})

	t.Run("regex", func(t *testing.T) {
		check(t, String.Regex(regexp.MustCompile(`^v\d+$`)), []any{"v12"}, []any{"v", "x12"})
	})

	t.Run("ecmascript pattern", func(t *testing.T) {
		// Lookahead is not available in RE2.
		strong := String.Pattern(`^(?=.*\d)(?=.*[A-Z]).{8,}$`)
		check(t, strong, []any{"Passw0rdX"}, []any{"password1", "Sh0rt"})
	})

	t.Run("invalid pattern panics", func(t *testing.T) {
		assert.Panics(t, func() { String.Pattern(`(`) })
	})

	t.Run("length counts runes", func(t *testing.T) {
		check(t, String.Len(2), []any{"ab", "日本"}, []any{"a", "abc"})
		check(t, String.LenRange(1, 3), []any{"a", "abc"}, []any{"", "abcd"})
		check(t, String.LenRange(2, -1), []any{"ab", "abcdefgh"}, []any{"a"})
	})
}

func TestNumber(t *testing.T) {
	t.Run("type", func(t *testing.T) {
		check(t, Number.Match,
			[]any{0, int8(1), uint64(2), float32(1.5), 2.5, json.Number("12")},
			[]any{"1", true, nil, json.Number("x"), big.NewInt(1)})
	})

	t.Run("comparisons", func(t *testing.T) {
		check(t, Number.Gt(1), []any{2, 1.5}, []any{1, 0, "2"})
		check(t, Number.Gte(1), []any{1, uint(2)}, []any{0.9})
		check(t, Number.Lt(1), []any{0, -3}, []any{1})
		check(t, Number.Lte(1), []any{1, int64(-1)}, []any{1.01})
		check(t, Number.Between(0, 1), []any{0, 0.5, 1}, []any{-0.1, 1.1, math.NaN()})
	})

	t.Run("sign and class", func(t *testing.T) {
		check(t, Number.Positive, []any{1, 0.1}, []any{0, -1})
		check(t, Number.Negative, []any{-1}, []any{0, 1})
		check(t, Number.Finite, []any{0, 1e300}, []any{math.Inf(1), math.Inf(-1), math.NaN()})
		check(t, Number.Int, []any{1, 2.0, int64(-4), json.Number("7")}, []any{1.5, math.Inf(1), math.NaN()})
	})
}

func TestBigInt(t *testing.T) {
	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	check(t, BigInt.Match, []any{big.NewInt(0), huge}, []any{0, (*big.Int)(nil), "1"})
	check(t, BigInt.Gt(big.NewInt(1)), []any{huge}, []any{big.NewInt(1)})
	check(t, BigInt.Gte(big.NewInt(1)), []any{big.NewInt(1)}, []any{big.NewInt(0)})
	check(t, BigInt.Lt(big.NewInt(0)), []any{big.NewInt(-1)}, []any{big.NewInt(0)})
	check(t, BigInt.Lte(big.NewInt(0)), []any{big.NewInt(0)}, []any{huge})
	check(t, BigInt.Between(big.NewInt(0), huge), []any{big.NewInt(5), huge}, []any{big.NewInt(-5)})
	check(t, BigInt.Positive, []any{huge}, []any{big.NewInt(0)})
	check(t, BigInt.Negative, []any{big.NewInt(-1)}, []any{big.NewInt(0)})
	check(t, BigInt.Gt(nil), nil, []any{huge})
}

func TestFunc(t *testing.T) {
	check(t, Func.Match, []any{func() {}, TestFunc}, []any{(func())(nil), 1})
	check(t, Func.Arity(2), []any{func(a, b int) {}, func(string, ...int) {}}, []any{func(int) {}})
}

func TestObject(t *testing.T) {
	check(t, Object.Match,
		[]any{map[string]any{}, struct{ A int }{}, &struct{ A int }{}},
		[]any{nil, 1, "a", []any{}, map[int]int{}, (*struct{})(nil), guard.Undefined})

	strict := Object.Strict(guard.Shape{"a": 1})
	check(t, strict, []any{map[string]any{"a": 1}}, []any{map[string]any{"a": 1, "b": 2}, map[string]any{}})
}

func TestDate(t *testing.T) {
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	before, after := ref.Add(-time.Hour), ref.Add(time.Hour)

	check(t, Date.Match, []any{ref, &ref}, []any{"2024-06-01", (*time.Time)(nil), ref.Unix()})

	check(t, Date.Before(ref), []any{before}, []any{ref, after})
	check(t, Date.AtOrBefore(ref), []any{before, ref}, []any{after})
	check(t, Date.After(ref), []any{after, &after}, []any{ref, before})
	check(t, Date.AtOrAfter(ref), []any{ref, after}, []any{before})

	t.Run("bounds from strings and unix milliseconds", func(t *testing.T) {
		check(t, Date.After("2024-06-01T11:00:00Z"), []any{ref}, []any{before})
		check(t, Date.After("2024-06-01T11:00:00"), []any{ref}, []any{before})
		check(t, Date.Before("2024-06-02"), []any{ref}, []any{ref.AddDate(0, 0, 1)})
		check(t, Date.AtOrAfter(ref.UnixMilli()), []any{ref}, []any{before})
		check(t, Date.AtOrAfter(int(ref.UnixMilli())), []any{ref}, []any{before})
	})

	t.Run("invalid bounds never match", func(t *testing.T) {
		check(t, Date.Before("yesterday"), nil, []any{before, after})
		check(t, Date.After(3.5), nil, []any{before, after})
	})
}

func TestArray(t *testing.T) {
	check(t, Array.Match, []any{[]int{}, []any{1}, [2]string{}}, []any{[]byte("ab"), "ab", nil})

	check(t, Array.Of(String), []any{[]string{"a"}, []any{"a", "b"}}, []any{[]any{}, []any{"a", 1}, "a"})
	check(t, Array.Of(guard.Shape{"id": Number}),
		[]any{[]map[string]any{{"id": 1}, {"id": 2}}},
		[]any{[]map[string]any{{"id": "1"}}})

	check(t, Array.Includes(2), []any{[]int{1, 2}, []int64{2}, []any{2.0}}, []any{[]int{1}, []int{}, []string{"2"}})
	check(t, Array.Len(2), []any{[]int{1, 2}}, []any{[]int{1}})
	check(t, Array.LenRange(1, 2), []any{[]int{1}, []int{1, 2}}, []any{[]int{}, []int{1, 2, 3}})
	check(t, Array.LenRange(1, -1), []any{[]int{1, 2, 3}}, []any{[]int{}})
}

func TestJSON(t *testing.T) {
	doc, err := guard.ParseJSON([]byte(`{"user":{"id":"u1","age":36},"tags":["a","b"]}`))
	require.NoError(t, err)
	raw := doc.Raw()

	check(t, JSON.Match,
		[]any{doc, raw, []byte(raw), json.RawMessage(raw), "1", `"s"`},
		[]any{"{", []byte(nil), guard.Document{}, 1})

	check(t, JSON.Has("user.id", "tags.1"), []any{doc, raw}, []any{`{"user":{}}`})
	check(t, JSON.Has(), []any{doc}, []any{"nope"})

	check(t, JSON.Equals("user.id", "u1"), []any{doc, []byte(raw)}, []any{`{"user":{"id":"u2"}}`})
	check(t, JSON.Equals("user.age", "36"), []any{doc}, nil)
	check(t, JSON.Equals("missing", ""), nil, []any{doc})

	check(t, JSON.Path("user.age", Number.Gte(18)), []any{doc}, []any{`{"user":{"age":3}}`})
	check(t, JSON.Path("tags", Array.Of(String)), []any{doc}, nil)
	check(t, JSON.Path("user", guard.Shape{"id": "u1"}), []any{doc}, nil)
	check(t, JSON.Path("user.email", Optional.String), []any{doc}, []any{`{"user":{"email":1}}`})
}

func TestContains(t *testing.T) {
	check(t, Contains("ell"), []any{"hello", status("bell")}, []any{"help"})
	check(t, Contains(2), []any{[]int{1, 2}, [2]int{2, 3}, []any{2}, map[int]bool{2: true}}, []any{[]int{1}, map[int]bool{}, 2})
	check(t, Contains("a"), []any{map[string]int{"a": 1}}, []any{map[int]int{1: 1}})
	check(t, Contains([]int{1}), nil, []any{map[any]bool{1: true}})
	check(t, Contains(1), nil, []any{"1"})
}

func TestTuple(t *testing.T) {
	pair := Tuple(String, Number)
	check(t, pair, []any{[]any{"a", 1}, [2]any{"b", 2.5}}, []any{[]any{"a"}, []any{1, "a"}, []any{"a", 1, 2}})
	check(t, Tuple(), nil, []any{[]any{}})
	check(t, Tuple(byte(1), byte(2)), []any{[]any{byte(1), byte(2)}}, []any{[]byte{1, 2}, [2]byte{1, 2}})
}

func TestUnionIntersection(t *testing.T) {
	check(t, Union(String, Number.Positive), []any{"a", 1}, []any{-1, nil})
	check(t, Intersection(Number, Number.Int, Number.Positive), []any{3}, []any{3.5, -3, "3"})
}

func TestInstanceOf(t *testing.T) {
	type point struct{ X, Y int }

	check(t, InstanceOf(point{}), []any{point{1, 2}}, []any{&point{}, struct{ X, Y int }{}})
	check(t, InstanceOf(&point{}), []any{&point{}}, []any{point{}})
	check(t, InstanceOf((*error)(nil)), []any{errors.New("x"), io.EOF}, []any{"x", nil})
	check(t, InstanceOf(nil), nil, []any{nil, 1})
}

func TestEqual(t *testing.T) {
	type inner struct {
		tags []string
	}
	type outer struct {
		Name  string
		inner inner
	}

	check(t, Equal(map[string]any{"a": []int{1, 2}}),
		[]any{map[string]any{"a": []int{1, 2}}},
		[]any{map[string]any{"a": []int{2, 1}}, nil})
	check(t, Equal(outer{"x", inner{[]string{"a"}}}),
		[]any{outer{"x", inner{[]string{"a"}}}},
		[]any{outer{"x", inner{[]string{"b"}}}})
}
