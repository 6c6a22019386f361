package dwalk

import (
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// DecodeBool reconstructs a boolean.
func DecodeBool(d Decoder) (bool, error) {
	var out bool
	err := d.Decode(&Visitor{
		Want: "a boolean",
		Bool: func(b bool) error { out = b; return nil },
	})
	return out, err
}

// DecodeString reconstructs a string.
func DecodeString(d Decoder) (string, error) {
	var out string
	err := d.Decode(&Visitor{
		Want: "a string",
		Str:  func(s string) error { out = s; return nil },
	})
	return out, err
}

// DecodeInt32 reconstructs a 32-bit integer. 64-bit source values are
// accepted when they fit.
func DecodeInt32(d Decoder) (int32, error) {
	var out int32
	err := d.Decode(&Visitor{
		Want:  "a 32-bit integer",
		Int32: func(n int32) error { out = n; return nil },
		Int64: func(n int64) error {
			if n < math.MinInt32 || n > math.MaxInt32 {
				return &SyntaxError{Msg: fmt.Sprintf("integer %d overflows int32", n)}
			}
			out = int32(n)
			return nil
		},
	})
	return out, err
}

// DecodeInt64 reconstructs a 64-bit integer from either integer width.
func DecodeInt64(d Decoder) (int64, error) {
	var out int64
	err := d.Decode(&Visitor{
		Want:  "a 64-bit integer",
		Int32: func(n int32) error { out = int64(n); return nil },
		Int64: func(n int64) error { out = n; return nil },
	})
	return out, err
}

// DecodeDouble reconstructs a float from a double or either integer width.
func DecodeDouble(d Decoder) (float64, error) {
	var out float64
	err := d.Decode(&Visitor{
		Want:   "a double",
		Double: func(f float64) error { out = f; return nil },
		Int32:  func(n int32) error { out = float64(n); return nil },
		Int64:  func(n int64) error { out = float64(n); return nil },
	})
	return out, err
}

// DecodeUnit accepts only the unit shape. It is the target for variants and
// placeholder fields that carry no data.
func DecodeUnit(d Decoder) (struct{}, error) {
	err := d.Decode(&Visitor{
		Want: "a unit value",
		Null: func() error { return nil },
	})
	return struct{}{}, err
}

// DecodeValue rebuilds the value itself, whatever its shape. Documents in a
// canonical extended form come back as their extended kind, so a tree that
// passed through the generic document fallback re-materializes losslessly.
func DecodeValue(d Decoder) (Value, error) {
	var out Value
	err := d.Decode(&Visitor{
		Want:   "any value",
		Null:   func() error { out = Null(); return nil },
		Bool:   func(b bool) error { out = Bool(b); return nil },
		Int32:  func(n int32) error { out = Int32(n); return nil },
		Int64:  func(n int64) error { out = Int64(n); return nil },
		Double: func(f float64) error { out = Double(f); return nil },
		Str:    func(s string) error { out = Str(s); return nil },
		Seq: func(s *SeqCursor) error {
			elems := make(A, 0, s.Len())
			for {
				elem, ok, err := NextElement(s, DecodeValue)
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				elems = append(elems, elem)
			}
			if err := s.Finish(); err != nil {
				return err
			}
			out = Arr(elems...)
			return nil
		},
		Map: func(m *MapCursor) error {
			doc, err := collectDoc(m)
			if err != nil {
				return err
			}
			if ext, ok := fromExtendedDoc(doc); ok {
				out = ext
				return nil
			}
			out = Doc(doc...)
			return nil
		},
	})
	return out, err
}

// DecodeDoc reconstructs an ordered document, keeping extended forms inside
// it materialized as their extended kinds.
func DecodeDoc(d Decoder) (D, error) {
	var out D
	err := d.Decode(&Visitor{
		Want: "a document",
		Map: func(m *MapCursor) error {
			var err error
			out, err = collectDoc(m)
			return err
		},
	})
	return out, err
}

func collectDoc(m *MapCursor) (D, error) {
	doc := make(D, 0, m.Len())
	for {
		name, ok, err := NextFieldName(m)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		val, err := FieldValue(m, DecodeValue)
		if err != nil {
			return nil, err
		}
		doc = append(doc, E{Key: name, Value: val})
	}
	return doc, m.Finish()
}

// DecodeID reconstructs an identifier from its document form {"$id": ...}.
func DecodeID(d Decoder) (uuid.UUID, error) {
	var out uuid.UUID
	err := d.Decode(&Visitor{
		Want: "an id document",
		Map: func(m *MapCursor) error {
			s, err := expectField(m, "$id", DecodeString)
			if err != nil {
				return err
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return &SyntaxError{Msg: fmt.Sprintf("invalid id %q: %v", s, err)}
			}
			out = id
			return m.Finish()
		},
	})
	return out, err
}

// DecodeDateTime reconstructs a timestamp from its document form
// {"$date": ...}.
func DecodeDateTime(d Decoder) (time.Time, error) {
	var out time.Time
	err := d.Decode(&Visitor{
		Want: "a datetime document",
		Map: func(m *MapCursor) error {
			s, err := expectField(m, "$date", DecodeString)
			if err != nil {
				return err
			}
			t, err := parseDateTime(s)
			if err != nil {
				return &SyntaxError{Msg: fmt.Sprintf("invalid datetime %q: %v", s, err)}
			}
			out = t
			return m.Finish()
		},
	})
	return out, err
}

// DecodeBinary reconstructs a byte blob from its document form
// {"$binary": ...}.
func DecodeBinary(d Decoder) ([]byte, error) {
	var out []byte
	err := d.Decode(&Visitor{
		Want: "a binary document",
		Map: func(m *MapCursor) error {
			s, err := expectField(m, "$binary", DecodeString)
			if err != nil {
				return err
			}
			b, err := parseBinary(s)
			if err != nil {
				return &SyntaxError{Msg: fmt.Sprintf("invalid binary payload: %v", err)}
			}
			out = b
			return m.Finish()
		},
	})
	return out, err
}

// DecodeDecimal reconstructs an arbitrary-precision decimal from its
// document form {"$decimal": ...}.
func DecodeDecimal(d Decoder) (*apd.Decimal, error) {
	var out *apd.Decimal
	err := d.Decode(&Visitor{
		Want: "a decimal document",
		Map: func(m *MapCursor) error {
			s, err := expectField(m, "$decimal", DecodeString)
			if err != nil {
				return err
			}
			dec, err := parseDecimal(s)
			if err != nil {
				return &SyntaxError{Msg: fmt.Sprintf("invalid decimal %q: %v", s, err)}
			}
			out = dec
			return m.Finish()
		},
	})
	return out, err
}

// expectField scans for exactly one recognized field and reconstructs its
// value. A missing field defaults through the absent-value source, so
// required targets fail with ErrEndOfStream.
func expectField[T any](m *MapCursor, name string, fn DecodeFunc[T]) (T, error) {
	_, ok, err := NextFieldName(m, name)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		return Missing(m, name, fn)
	}
	return FieldValue(m, fn)
}

// Optional adapts fn to an optional target: null reconstructs as nil.
func Optional[T any](fn DecodeFunc[T]) DecodeFunc[*T] {
	return func(d Decoder) (*T, error) {
		var out *T
		err := d.DecodeOption(&Visitor{
			Want: "an optional value",
			None: func() error { return nil },
			Some: func(inner Decoder) error {
				v, err := fn(inner)
				if err != nil {
					return err
				}
				out = &v
				return nil
			},
		})
		return out, err
	}
}

// SliceOf adapts fn to decode arrays element by element, pre-sizing from the
// cursor's exact length.
func SliceOf[T any](fn DecodeFunc[T]) DecodeFunc[[]T] {
	return func(d Decoder) ([]T, error) {
		var out []T
		err := d.Decode(&Visitor{
			Want: "an array",
			Seq: func(s *SeqCursor) error {
				out = make([]T, 0, s.Len())
				for {
					elem, ok, err := NextElement(s, fn)
					if err != nil {
						return err
					}
					if !ok {
						break
					}
					out = append(out, elem)
				}
				return s.Finish()
			},
		})
		return out, err
	}
}

// MapOf adapts fn to decode documents into a native map, accepting every
// key. Insertion order is lost; use DecodeDoc where order matters.
func MapOf[T any](fn DecodeFunc[T]) DecodeFunc[map[string]T] {
	return func(d Decoder) (map[string]T, error) {
		var out map[string]T
		err := d.Decode(&Visitor{
			Want: "a document",
			Map: func(m *MapCursor) error {
				out = make(map[string]T, m.Len())
				for {
					name, ok, err := NextFieldName(m)
					if err != nil {
						return err
					}
					if !ok {
						break
					}
					val, err := FieldValue(m, fn)
					if err != nil {
						return err
					}
					out[name] = val
				}
				return m.Finish()
			},
		})
		return out, err
	}
}
