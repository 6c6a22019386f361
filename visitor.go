package dwalk

import "fmt"

// Visitor receives the shape a decoder found. A target type's reconstruction
// sets exactly the callbacks for the shapes it accepts and leaves the rest
// nil; dispatching to a nil callback fails with a *SyntaxError naming the
// received shape and the Want description.
type Visitor struct {
	// Want describes what the visitor accepts, for mismatch errors.
	// For example "a boolean" or "a user document".
	Want string

	Null   func() error
	Bool   func(bool) error
	Int32  func(int32) error
	Int64  func(int64) error
	Double func(float64) error
	Str    func(string) error
	Seq    func(*SeqCursor) error
	Map    func(*MapCursor) error

	// None and Some answer optional-shape requests (Decoder.DecodeOption).
	None func() error
	Some func(Decoder) error

	// Newtype answers transparent-wrapper requests (Decoder.DecodeNewtype).
	Newtype func(Decoder) error

	// Enum answers enum-shape requests (Decoder.DecodeEnum).
	Enum func(*UnionCursor) error
}

func (v *Visitor) reject(got string) error {
	want := v.Want
	if want == "" {
		want = "a supported shape"
	}
	return &SyntaxError{Msg: fmt.Sprintf("invalid shape %s, expected %s", got, want)}
}

func (v *Visitor) visitNull() error {
	if v.Null == nil {
		return v.reject("null")
	}
	return v.Null()
}

func (v *Visitor) visitBool(b bool) error {
	if v.Bool == nil {
		return v.reject("bool")
	}
	return v.Bool(b)
}

func (v *Visitor) visitInt32(n int32) error {
	if v.Int32 == nil {
		return v.reject("int32")
	}
	return v.Int32(n)
}

func (v *Visitor) visitInt64(n int64) error {
	if v.Int64 == nil {
		return v.reject("int64")
	}
	return v.Int64(n)
}

func (v *Visitor) visitDouble(f float64) error {
	if v.Double == nil {
		return v.reject("double")
	}
	return v.Double(f)
}

func (v *Visitor) visitStr(s string) error {
	if v.Str == nil {
		return v.reject("string")
	}
	return v.Str(s)
}

func (v *Visitor) visitSeq(s *SeqCursor) error {
	if v.Seq == nil {
		return v.reject("array")
	}
	return v.Seq(s)
}

func (v *Visitor) visitMap(m *MapCursor) error {
	if v.Map == nil {
		return v.reject("document")
	}
	return v.Map(m)
}

func (v *Visitor) visitNone() error {
	if v.None == nil {
		return v.reject("absent value")
	}
	return v.None()
}

func (v *Visitor) visitSome(d Decoder) error {
	if v.Some == nil {
		return v.reject("optional value")
	}
	return v.Some(d)
}

func (v *Visitor) visitNewtype(d Decoder) error {
	if v.Newtype == nil {
		return v.reject("wrapped value")
	}
	return v.Newtype(d)
}

func (v *Visitor) visitEnum(u *UnionCursor) error {
	if v.Enum == nil {
		return v.reject("enum")
	}
	return v.Enum(u)
}
