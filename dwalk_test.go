package dwalk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestD(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		var d D
		require.Len(t, d, 0)
		require.Nil(t, d) // zero value of D is nil slice
	})

	t.Run("initialized document is not nil", func(t *testing.T) {
		d := D{}
		require.Len(t, d, 0)
		require.NotNil(t, d) // D{} creates a non-nil empty slice
	})

	t.Run("single entry document", func(t *testing.T) {
		d := D{{Key: "key", Value: Str("value")}}
		require.Len(t, d, 1)
		require.Equal(t, "key", d[0].Key)
		require.Equal(t, "value", d[0].Value.Str())
	})

	t.Run("multiple entry document preserves order", func(t *testing.T) {
		d := D{
			{Key: "first", Value: Int32(1)},
			{Key: "second", Value: Int32(2)},
			{Key: "third", Value: Int32(3)},
		}
		require.Len(t, d, 3)
		require.Equal(t, "first", d[0].Key)
		require.Equal(t, "second", d[1].Key)
		require.Equal(t, "third", d[2].Key)
	})

	t.Run("document can contain every value kind", func(t *testing.T) {
		nested := Doc(E{Key: "nested", Value: Str("value")})
		arr := Arr(Int32(1), Int32(2), Int32(3))
		d := D{
			{Key: "string", Value: Str("text")},
			{Key: "number", Value: Int32(42)},
			{Key: "boolean", Value: Bool(true)},
			{Key: "null", Value: Null()},
			{Key: "document", Value: nested},
			{Key: "array", Value: arr},
		}
		require.Len(t, d, 6)
		require.Equal(t, "text", d[0].Value.Str())
		require.Equal(t, int32(42), d[1].Value.Int32())
		require.Equal(t, true, d[2].Value.Bool())
		require.Equal(t, KindNull, d[3].Value.Kind())
		require.True(t, d[4].Value.Equal(nested))
		require.True(t, d[5].Value.Equal(arr))
	})

	t.Run("lookup finds first match", func(t *testing.T) {
		d := D{
			{Key: "a", Value: Int32(1)},
			{Key: "b", Value: Int32(2)},
			{Key: "a", Value: Int32(3)},
		}
		v, ok := d.Lookup("a")
		require.True(t, ok)
		require.Equal(t, int32(1), v.Int32())
	})

	t.Run("lookup misses", func(t *testing.T) {
		d := D{{Key: "a", Value: Int32(1)}}
		_, ok := d.Lookup("z")
		require.False(t, ok)
	})
}

func TestA(t *testing.T) {
	t.Run("empty array", func(t *testing.T) {
		var a A
		require.Len(t, a, 0)
		require.Nil(t, a) // zero value of A is nil slice
	})

	t.Run("initialized array is not nil", func(t *testing.T) {
		a := A{}
		require.Len(t, a, 0)
		require.NotNil(t, a) // A{} creates a non-nil empty slice
	})

	t.Run("multiple element array preserves order", func(t *testing.T) {
		a := A{Str("first"), Str("second"), Str("third")}
		require.Len(t, a, 3)
		require.Equal(t, "first", a[0].Str())
		require.Equal(t, "second", a[1].Str())
		require.Equal(t, "third", a[2].Str())
	})

	t.Run("array can contain mixed kinds", func(t *testing.T) {
		a := A{
			Str("string"),
			Int32(42),
			Bool(true),
			Null(),
			Doc(E{Key: "key", Value: Str("value")}),
			Arr(Int32(1), Int32(2)),
		}
		require.Len(t, a, 6)
		require.Equal(t, KindString, a[0].Kind())
		require.Equal(t, KindInt32, a[1].Kind())
		require.Equal(t, KindBool, a[2].Kind())
		require.Equal(t, KindNull, a[3].Kind())
		require.Equal(t, KindDocument, a[4].Kind())
		require.Equal(t, KindArray, a[5].Kind())
	})
}

func TestE(t *testing.T) {
	t.Run("entry with string value", func(t *testing.T) {
		e := E{Key: "name", Value: Str("John")}
		require.Equal(t, "name", e.Key)
		require.Equal(t, "John", e.Value.Str())
	})

	t.Run("entry with document value", func(t *testing.T) {
		complexValue := Doc(E{Key: "nested", Value: Int32(42)})
		e := E{Key: "complex", Value: complexValue}
		require.Equal(t, "complex", e.Key)
		require.True(t, e.Value.Equal(complexValue))
	})

	t.Run("zero entry value is null", func(t *testing.T) {
		e := E{Key: "null_field"}
		require.Equal(t, "null_field", e.Key)
		require.Equal(t, KindNull, e.Value.Kind())
	})

	t.Run("empty key is allowed", func(t *testing.T) {
		e := E{Key: "", Value: Str("value")}
		require.Equal(t, "", e.Key)
		require.Equal(t, "value", e.Value.Str())
	})
}
