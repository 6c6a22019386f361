package dwalk

// SeqCursor iterates an array's elements in order, tracking the remaining
// count. Each element decodes through a fresh pending slot. Cursors are
// single-pass and single-owner; they are created by the decoder and never
// shared.
type SeqCursor struct {
	rest      A
	remaining int
	depth     int
}

func newSeqCursor(elems A, depth int) *SeqCursor {
	return &SeqCursor{rest: elems, remaining: len(elems), depth: depth}
}

// Next returns a decoder over the next element. It reports false when the
// sequence is exhausted.
func (s *SeqCursor) Next() (Decoder, bool) {
	if s.remaining == 0 {
		return nil, false
	}
	elem := s.rest[0]
	s.rest = s.rest[1:]
	s.remaining--
	return newValueDecoder(elem, s.depth), true
}

// Finish verifies the caller consumed every element. It fails with a
// *LengthMismatchError when elements remain, catching targets (fixed-size
// tuples, under-declared structs) that read fewer elements than the source
// array holds.
func (s *SeqCursor) Finish() error {
	if s.remaining != 0 {
		return &LengthMismatchError{Remaining: s.remaining}
	}
	return nil
}

// Len reports the exact number of unread elements, letting target
// collections pre-size their storage.
func (s *SeqCursor) Len() int { return s.remaining }

// Decode dispatches the cursor itself as a value: an empty sequence answers
// the unit shape, anything else the sequence shape. Tuple payloads decode
// through this path, which is what lets an empty array stand in for a unit
// payload.
func (s *SeqCursor) Decode(v *Visitor) error {
	if s.remaining == 0 {
		return v.visitNull()
	}
	return v.visitSeq(s)
}

// DecodeOption forwards to Decode; the cursor has no null representation.
func (s *SeqCursor) DecodeOption(v *Visitor) error { return s.Decode(v) }

// DecodeNewtype forwards to Decode.
func (s *SeqCursor) DecodeNewtype(v *Visitor) error { return s.Decode(v) }

// DecodeEnum forwards to Decode; the mismatch surfaces through the visitor.
func (s *SeqCursor) DecodeEnum(_ string, _ []string, v *Visitor) error { return s.Decode(v) }

// NextElement reconstructs the next element of s using fn. It reports false
// when the sequence is exhausted.
func NextElement[T any](s *SeqCursor, fn DecodeFunc[T]) (T, bool, error) {
	var zero T
	dec, ok := s.Next()
	if !ok {
		return zero, false, nil
	}
	out, err := fn(dec)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}
