package dwalk

// UnionCursor decodes a tagged union encoded as a single-entry document
// {variantName: payload}. The discriminant and the payload are owned,
// single-use slots: each is consumed by at most one request, and requests
// after consumption fail with ErrEndOfStream.
type UnionCursor struct {
	name     string
	variants []string
	variant  *Value
	payload  *Value
	depth    int
}

// Name reports the enum name given to DecodeEnum.
func (u *UnionCursor) Name() string { return u.name }

// Variants reports the advisory variant names given to DecodeEnum. The
// bridge never validates against them; they exist for caller diagnostics.
func (u *UnionCursor) Variants() []string { return u.variants }

// Variant returns a decoder over the discriminant, consuming it. The
// discriminant is the entry's key wrapped as a string value.
func (u *UnionCursor) Variant() Decoder {
	d := &valueDecoder{pending: u.variant, depth: u.depth}
	u.variant = nil
	return d
}

// takePayload moves the payload into a fresh decoder. After the first call
// the decoder starts empty, so reuse surfaces as ErrEndOfStream.
func (u *UnionCursor) takePayload() *valueDecoder {
	d := &valueDecoder{pending: u.payload, depth: u.depth}
	u.payload = nil
	return d
}

// Unit consumes the payload as a unit value. Variants carrying no data are
// encoded with a null payload.
func (u *UnionCursor) Unit() error {
	return u.takePayload().Decode(&Visitor{
		Want: "a unit payload",
		Null: func() error { return nil },
	})
}

// Newtype returns a decoder over the payload, consuming it. Used when the
// variant carries exactly one unnamed value.
func (u *UnionCursor) Newtype() Decoder {
	return u.takePayload()
}

// Tuple consumes the payload as a positional tuple, dispatching the sequence
// shape to v. The payload must be an array; anything else fails with
// ErrExpectedTuple. The arity is advisory: over-declared targets surface
// through the element decodes and under-declared ones through Finish.
func (u *UnionCursor) Tuple(arity int, v *Visitor) error {
	d := u.takePayload()
	val, err := d.take()
	if err != nil {
		return err
	}
	if val.kind != KindArray {
		return ErrExpectedTuple
	}
	depth, err := descend(d.depth)
	if err != nil {
		return err
	}
	return newSeqCursor(val.arr, depth).Decode(v)
}

// Struct consumes the payload as a named-field record, dispatching the map
// shape to v. The payload must be a document; anything else fails with
// ErrExpectedStruct. The field list is advisory, like DecodeEnum's variants.
func (u *UnionCursor) Struct(fields []string, v *Visitor) error {
	d := u.takePayload()
	val, err := d.take()
	if err != nil {
		return err
	}
	if val.kind != KindDocument {
		return ErrExpectedStruct
	}
	depth, err := descend(d.depth)
	if err != nil {
		return err
	}
	return newMapCursor(val.doc, depth).Decode(v)
}

// Discriminant reconstructs the variant name using fn, consuming it.
func Discriminant[T any](u *UnionCursor, fn DecodeFunc[T]) (T, error) {
	return fn(u.Variant())
}

// Payload reconstructs a single-value payload using fn, consuming it.
func Payload[T any](u *UnionCursor, fn DecodeFunc[T]) (T, error) {
	return fn(u.Newtype())
}
