package dwalk

import "fmt"

// Decoder is the shape-request contract of the decoding bridge. A Decoder
// owns at most one pending value; each request consumes it, and a request
// against a decoder whose value is gone fails with ErrEndOfStream. A decoder
// that returned an error must not be reused: its pending value was consumed
// by the failed attempt.
type Decoder interface {
	// Decode dispatches on the pending value's own shape: scalars reach the
	// matching scalar callback, arrays the Seq callback, documents the Map
	// callback, null the Null callback. Extended kinds are converted to
	// their document form first and dispatched as documents.
	Decode(v *Visitor) error

	// DecodeOption distinguishes absent-style values: a pending null
	// dispatches to None, anything else to Some with this same decoder, its
	// value still pending. The value is reused once, not consumed twice.
	DecodeOption(v *Visitor) error

	// DecodeNewtype passes the decoder through to the Newtype callback
	// unchanged: one layer of indirection, zero transformation.
	DecodeNewtype(v *Visitor) error

	// DecodeEnum requires the pending value to be a single-entry document
	// encoding a tagged union as {variantName: payload}, and hands the Enum
	// callback a UnionCursor over that entry. A non-document value fails
	// with ErrExpectedEnum, an empty document with ErrExpectedVariantName,
	// and a multi-entry document with ErrExpectedSingleKeyMap. The variants
	// list is advisory: it is carried for diagnostics, never validated.
	DecodeEnum(name string, variants []string, v *Visitor) error
}

// DecodeFunc reconstructs a T by issuing shape requests against d.
type DecodeFunc[T any] func(d Decoder) (T, error)

// DefaultMaxDepth bounds container nesting when DecodeOptions.MaxDepth is
// unset.
const DefaultMaxDepth = 1000

// DecodeOptions configures a decode pass. Options are passed variadically;
// later values override earlier ones field by field.
type DecodeOptions struct {
	// MaxDepth bounds container nesting. Values nested deeper fail with
	// ErrMaxDepth. Zero applies DefaultMaxDepth.
	MaxDepth int
}

// NewDecoder returns a decoder whose pending value is val.
func NewDecoder(val Value, opts ...DecodeOptions) Decoder {
	depth := DefaultMaxDepth
	for _, o := range opts {
		if o.MaxDepth > 0 {
			depth = o.MaxDepth
		}
	}
	return &valueDecoder{pending: &val, depth: depth}
}

// Decode reconstructs a T from val using fn.
func Decode[T any](val Value, fn DecodeFunc[T], opts ...DecodeOptions) (T, error) {
	return fn(NewDecoder(val, opts...))
}

// valueDecoder is the root dispatcher: exactly one pending-slot field plus
// the remaining depth budget.
type valueDecoder struct {
	pending *Value // nil when consumed
	depth   int
}

func newValueDecoder(val Value, depth int) *valueDecoder {
	return &valueDecoder{pending: &val, depth: depth}
}

// take moves the pending value out. The slot empties; a second take fails
// with ErrEndOfStream.
func (d *valueDecoder) take() (Value, error) {
	if d.pending == nil {
		return Value{}, ErrEndOfStream
	}
	v := *d.pending
	d.pending = nil
	return v, nil
}

// put refills the slot. Refilling a non-empty slot is a contract violation.
func (d *valueDecoder) put(v Value) {
	if d.pending != nil {
		panic("dwalk: pending slot refilled while full")
	}
	d.pending = &v
}

func (d *valueDecoder) Decode(v *Visitor) error {
	val, err := d.take()
	if err != nil {
		return err
	}
	return dispatch(val, d.depth, v)
}

func (d *valueDecoder) DecodeOption(v *Visitor) error {
	val, err := d.take()
	if err != nil {
		return err
	}
	if val.kind == KindNull {
		return v.visitNone()
	}
	d.put(val)
	return v.visitSome(d)
}

func (d *valueDecoder) DecodeNewtype(v *Visitor) error {
	return v.visitNewtype(d)
}

func (d *valueDecoder) DecodeEnum(name string, variants []string, v *Visitor) error {
	val, err := d.take()
	if err != nil {
		return err
	}
	if val.kind != KindDocument {
		return ErrExpectedEnum
	}
	switch {
	case len(val.doc) == 0:
		return ErrExpectedVariantName
	case len(val.doc) > 1:
		return ErrExpectedSingleKeyMap
	}
	depth, err := descend(d.depth)
	if err != nil {
		return err
	}
	entry := val.doc[0]
	variant := Str(entry.Key)
	return v.visitEnum(&UnionCursor{
		name:     name,
		variants: variants,
		variant:  &variant,
		payload:  &entry.Value,
		depth:    depth,
	})
}

// dispatch routes a value to the visitor callback matching its kind. This is
// the single dispatch site over the closed Kind set.
func dispatch(val Value, depth int, v *Visitor) error {
	switch val.kind {
	case KindNull:
		return v.visitNull()
	case KindBool:
		return v.visitBool(val.b)
	case KindInt32:
		return v.visitInt32(int32(val.n))
	case KindInt64:
		return v.visitInt64(val.n)
	case KindDouble:
		return v.visitDouble(val.f)
	case KindString:
		return v.visitStr(val.s)
	case KindArray:
		d, err := descend(depth)
		if err != nil {
			return err
		}
		return v.visitSeq(newSeqCursor(val.arr, d))
	case KindDocument:
		d, err := descend(depth)
		if err != nil {
			return err
		}
		return v.visitMap(newMapCursor(val.doc, d))
	case KindID, KindDateTime, KindBinary, KindDecimal, KindRegex:
		doc, _ := val.ExtendedDoc()
		d, err := descend(depth)
		if err != nil {
			return err
		}
		return v.visitMap(newMapCursor(doc, d))
	default:
		return &SyntaxError{Msg: fmt.Sprintf("unhandled value kind %s", val.kind)}
	}
}

// descend spends one level of the depth budget.
func descend(depth int) (int, error) {
	if depth <= 0 {
		return 0, ErrMaxDepth
	}
	return depth - 1, nil
}

// unitDecoder is the synthetic source behind MapCursor.MissingField: absent
// fields reconstruct as unit or none, and any other shape request fails with
// ErrEndOfStream, surfacing as "required and missing".
type unitDecoder struct {
	field string
}

func (d unitDecoder) fail() error {
	if d.field == "" {
		return ErrEndOfStream
	}
	return fmt.Errorf("missing field %q: %w", d.field, ErrEndOfStream)
}

func (d unitDecoder) Decode(v *Visitor) error {
	if v.Null == nil {
		return d.fail()
	}
	return v.Null()
}

func (d unitDecoder) DecodeOption(v *Visitor) error {
	if v.None == nil {
		return d.fail()
	}
	return v.None()
}

func (d unitDecoder) DecodeNewtype(*Visitor) error {
	return d.fail()
}

func (d unitDecoder) DecodeEnum(string, []string, *Visitor) error {
	return d.fail()
}
