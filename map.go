package dwalk

import (
	"errors"
	"slices"
)

// MapCursor iterates a document's entries in insertion order, one key/value
// pair at a time. Between NextKey and NextValue the entry's value sits in a
// one-slot buffer; callers must request it before asking for the next key.
type MapCursor struct {
	rest      D
	remaining int
	buffered  *Value
	depth     int
}

func newMapCursor(doc D, depth int) *MapCursor {
	return &MapCursor{rest: doc, remaining: len(doc), depth: depth}
}

// NextKey pops the next entry, buffers its value for NextValue, and decodes
// the key through v as a string value. It reports false when the document is
// exhausted.
//
// A key decode failing with *UnknownFieldError also reports false: the scan
// ends there and the remaining entries, including their values, are
// unreachable. This is "stop on first unknown key", not "skip this key":
// targets that need fields appearing after keys they do not recognize must
// accept those keys instead of rejecting them. Any other error propagates
// unchanged.
func (m *MapCursor) NextKey(v *Visitor) (bool, error) {
	if m.remaining == 0 {
		return false, nil
	}
	entry := m.rest[0]
	m.rest = m.rest[1:]
	m.remaining--
	m.buffered = &entry.Value
	if err := newValueDecoder(Str(entry.Key), m.depth).Decode(v); err != nil {
		var unknown *UnknownFieldError
		if errors.As(err, &unknown) {
			m.buffered = nil
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NextValue returns a decoder over the value buffered by the preceding
// NextKey. Calling it without that preceding successful NextKey is a
// contract violation and panics.
func (m *MapCursor) NextValue() Decoder {
	if m.buffered == nil {
		panic("dwalk: NextValue without a preceding NextKey")
	}
	d := newValueDecoder(*m.buffered, m.depth)
	m.buffered = nil
	return d
}

// MissingField returns a synthetic decoder for a declared field the key scan
// never yielded: optional targets reconstruct as none and unit targets as
// unit, while anything else fails with ErrEndOfStream, surfacing the field
// as genuinely required and missing.
func (m *MapCursor) MissingField(name string) Decoder {
	return unitDecoder{field: name}
}

// Finish always succeeds: trailing unread entries are ignored, asymmetric
// with SeqCursor.Finish.
func (m *MapCursor) Finish() error { return nil }

// Len reports the exact number of unread entries.
func (m *MapCursor) Len() int { return m.remaining }

// Decode dispatches the cursor itself as a value, answering the map shape.
func (m *MapCursor) Decode(v *Visitor) error { return v.visitMap(m) }

// DecodeOption forwards to Decode; the cursor has no null representation.
func (m *MapCursor) DecodeOption(v *Visitor) error { return m.Decode(v) }

// DecodeNewtype forwards to Decode.
func (m *MapCursor) DecodeNewtype(v *Visitor) error { return m.Decode(v) }

// DecodeEnum forwards to Decode; the mismatch surfaces through the visitor.
func (m *MapCursor) DecodeEnum(_ string, _ []string, v *Visitor) error { return m.Decode(v) }

// NextFieldName yields the next key as a plain string. With a non-empty
// known list, a key outside the list ends the scan the same way an exhausted
// document does (see NextKey's unknown-field policy).
func NextFieldName(m *MapCursor, known ...string) (string, bool, error) {
	var name string
	ok, err := m.NextKey(&Visitor{
		Want: "a field name",
		Str: func(s string) error {
			if len(known) > 0 && !slices.Contains(known, s) {
				return &UnknownFieldError{Name: s}
			}
			name = s
			return nil
		},
	})
	if err != nil || !ok {
		return "", false, err
	}
	return name, true, nil
}

// FieldValue reconstructs the value buffered by the preceding NextKey.
func FieldValue[T any](m *MapCursor, fn DecodeFunc[T]) (T, error) {
	return fn(m.NextValue())
}

// Missing reconstructs a declared field the key scan never yielded from the
// synthetic absent-value source; see MapCursor.MissingField.
func Missing[T any](m *MapCursor, name string, fn DecodeFunc[T]) (T, error) {
	return fn(m.MissingField(name))
}
