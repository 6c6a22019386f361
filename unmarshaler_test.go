package dwalk

import (
	"testing"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/stretchr/testify/require"
)

func unmarshal(t *testing.T, r *Registry, src string) Value {
	t.Helper()
	var out Value
	err := json.Unmarshal([]byte(src), &out, json.WithUnmarshalers(Unmarshalers(r)))
	require.NoError(t, err)
	return out
}

func assertD(t *testing.T, v Value) D {
	t.Helper()
	require.Equal(t, KindDocument, v.Kind(), "expected document, got %s", v.Kind())
	return v.Document()
}

func assertA(t *testing.T, v Value) A {
	t.Helper()
	require.Equal(t, KindArray, v.Kind(), "expected array, got %s", v.Kind())
	return v.Array()
}

func TestUnmarshaler(t *testing.T) {
	t.Run("empty object -> empty D", func(t *testing.T) {
		r := newRegistry()
		d := assertD(t, unmarshal(t, r, `{}`))
		require.Len(t, d, 0)
	})

	t.Run("empty array -> empty A", func(t *testing.T) {
		r := newRegistry()
		a := assertA(t, unmarshal(t, r, `[]`))
		require.Len(t, a, 0)
	})

	t.Run("regular object ordering preserved", func(t *testing.T) {
		r := newRegistry()
		d := assertD(t, unmarshal(t, r, `{"a":1,"b":2}`))
		require.Equal(t, []E{{Key: "a", Value: Int32(1)}, {Key: "b", Value: Int32(2)}}, []E(d))
	})

	t.Run("nested array wraps objects", func(t *testing.T) {
		r := newRegistry()
		a := assertA(t, unmarshal(t, r, `[1,{"x":2}]`))
		require.Len(t, a, 2)
		require.True(t, a[0].Equal(Int32(1)))
		d := assertD(t, a[1])
		require.Equal(t, "x", d[0].Key)
	})

	t.Run("directive object dispatch + skip extra", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register("val", intDirective))
		v := unmarshal(t, r, `{"$val": 42, "ignored": true}`)
		require.True(t, v.Equal(Int32(42)))
	})

	t.Run("primitive values decode directly", func(t *testing.T) {
		r := newRegistry()
		require.True(t, unmarshal(t, r, `123`).Equal(Int32(123)))
		require.True(t, unmarshal(t, r, `"hi"`).Equal(Str("hi")))
		require.True(t, unmarshal(t, r, `true`).Equal(Bool(true)))
		require.True(t, unmarshal(t, r, `null`).Equal(Null()))
	})

	t.Run("number literals pick the narrowest kind", func(t *testing.T) {
		r := newRegistry()
		cases := []struct {
			src  string
			want Value
		}{
			{`1`, Int32(1)},
			{`-2147483648`, Int32(-2147483648)},
			{`2147483648`, Int64(2147483648)},
			{`-2147483649`, Int64(-2147483649)},
			{`4398046511104`, Int64(1 << 42)},
			{`1.5`, Double(1.5)},
			{`1e2`, Double(100)},
			{`9223372036854775808`, Double(9223372036854775808)},
		}
		for _, tc := range cases {
			got := unmarshal(t, r, tc.src)
			require.True(t, got.Equal(tc.want), "src %s: got %s, want %s", tc.src, got, tc.want)
		}
	})
}

func TestDocumentUnmarshaler(t *testing.T) {
	t.Run("empty object -> *D empty", func(t *testing.T) {
		var d D
		err := json.Unmarshal([]byte(`{}`), &d, json.WithUnmarshalers(documentUnmarshaler(newRegistry())))
		require.NoError(t, err)
		require.Len(t, d, 0)
	})

	t.Run("ordering preserved + no directive dispatch when target is *D", func(t *testing.T) {
		r := newRegistry()
		called := false
		require.NoError(t, r.Register("val", func(dec *jsontext.Decoder) (Value, error) {
			called = true
			return intDirective(dec)
		}))

		// Use full Unmarshalers (includes directive logic) but target *D so the
		// directive must NOT trigger.
		var d D
		err := json.Unmarshal([]byte(`{"$val":42,"b":2}`), &d, json.WithUnmarshalers(Unmarshalers(r)))
		require.NoError(t, err)
		require.False(t, called, "directive should not be dispatched when decoding into *D")
		require.Equal(t, []E{{Key: "$val", Value: Int32(42)}, {Key: "b", Value: Int32(2)}}, []E(d))
	})

	t.Run("nested directive inside *D dispatched", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register("val", intDirective))
		var d D
		err := json.Unmarshal([]byte(`{"outer":{"$val":7}}`), &d, json.WithUnmarshalers(Unmarshalers(r)))
		require.NoError(t, err)
		require.Len(t, d, 1)
		require.Equal(t, "outer", d[0].Key)
		require.True(t, d[0].Value.Equal(Int32(7)), "expected directive dispatch inside nested object, got %s", d[0].Value)
	})
}

func TestCollectionUnmarshaler(t *testing.T) {
	t.Run("empty array -> *A empty", func(t *testing.T) {
		var a A
		err := json.Unmarshal([]byte(`[]`), &a, json.WithUnmarshalers(collectionUnmarshaler(newRegistry())))
		require.NoError(t, err)
		require.Len(t, a, 0)
	})

	t.Run("array with regular object element -> element decoded as document", func(t *testing.T) {
		var a A
		err := json.Unmarshal([]byte(`[{"a":1}]`), &a, json.WithUnmarshalers(Unmarshalers(newRegistry())))
		require.NoError(t, err)
		require.Len(t, a, 1)
		d := assertD(t, a[0])
		require.Equal(t, []E{{Key: "a", Value: Int32(1)}}, []E(d))
	})

	t.Run("array with directive object element -> directive dispatched", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register("val", intDirective))
		var a A
		err := json.Unmarshal([]byte(`[1,{"$val":5}]`), &a, json.WithUnmarshalers(Unmarshalers(r)))
		require.NoError(t, err)
		require.True(t, a[0].Equal(Int32(1)))
		require.True(t, a[1].Equal(Int32(5)))
	})
}

func TestParse(t *testing.T) {
	t.Run("nil registry uses the canonical directives", func(t *testing.T) {
		v, err := Parse([]byte(`{"when":{"$date":"2023-10-05T12:30:00Z"}}`), nil)
		require.NoError(t, err)
		d := assertD(t, v)
		require.Len(t, d, 1)
		require.Equal(t, KindDateTime, d[0].Value.Kind())
	})

	t.Run("unregistered directive fails", func(t *testing.T) {
		r := newRegistry()
		_, err := Parse([]byte(`{"$nope":1}`), r)
		require.Error(t, err)
		require.Contains(t, err.Error(), "$nope")
	})

	t.Run("malformed input fails", func(t *testing.T) {
		_, err := Parse([]byte(`{"a":`), nil)
		require.Error(t, err)
	})
}
