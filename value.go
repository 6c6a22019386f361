package dwalk

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// Kind identifies the variant held by a Value. The set is closed: adding a
// kind means adding a constant here, a constructor, and a case in the value
// decoder's dispatch.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindDouble
	KindString
	KindArray
	KindDocument
	KindID
	KindDateTime
	KindBinary
	KindDecimal
	KindRegex
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindDouble:   "double",
	KindString:   "string",
	KindArray:    "array",
	KindDocument: "document",
	KindID:       "id",
	KindDateTime: "datetime",
	KindBinary:   "binary",
	KindDecimal:  "decimal",
	KindRegex:    "regex",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a dynamically shaped document value: one of the scalar, container,
// or extended kinds above. Values are immutable once constructed. The zero
// Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    int64 // Int32 and Int64
	f    float64
	s    string // String; Regex pattern
	opts string // Regex options
	arr  A
	doc  D
	id   uuid.UUID
	t    time.Time
	bin  []byte
	dec  *apd.Decimal
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int32 returns a 32-bit integer value.
func Int32(n int32) Value { return Value{kind: KindInt32, n: int64(n)} }

// Int64 returns a 64-bit integer value.
func Int64(n int64) Value { return Value{kind: KindInt64, n: n} }

// Double returns a 64-bit floating point value.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// Str returns a string value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Arr returns an array value over the given elements.
func Arr(elems ...Value) Value {
	if elems == nil {
		elems = A{}
	}
	return Value{kind: KindArray, arr: elems}
}

// Doc returns a document value over the given entries.
func Doc(entries ...E) Value {
	if entries == nil {
		entries = D{}
	}
	return Value{kind: KindDocument, doc: entries}
}

// ID returns an identifier value.
func ID(id uuid.UUID) Value { return Value{kind: KindID, id: id} }

// DateTime returns a timestamp value.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// Binary returns a byte-blob value. The caller must not mutate b afterwards.
func Binary(b []byte) Value { return Value{kind: KindBinary, bin: b} }

// Decimal returns an arbitrary-precision decimal value. The caller must not
// mutate d afterwards.
func Decimal(d *apd.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// Regex returns a regular expression value. The pattern is carried verbatim;
// it is not compiled or validated here.
func Regex(pattern, options string) Value {
	return Value{kind: KindRegex, s: pattern, opts: options}
}

// Kind reports which variant this value holds.
func (v Value) Kind() Kind { return v.kind }

func (v Value) expect(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("dwalk: %s value accessed as %s", v.kind, k))
	}
}

// Bool returns the boolean payload. It panics if the value is not KindBool.
func (v Value) Bool() bool {
	v.expect(KindBool)
	return v.b
}

// Int32 returns the 32-bit integer payload. It panics if the value is not
// KindInt32.
func (v Value) Int32() int32 {
	v.expect(KindInt32)
	return int32(v.n)
}

// Int64 returns the 64-bit integer payload. It panics if the value is not
// KindInt64.
func (v Value) Int64() int64 {
	v.expect(KindInt64)
	return v.n
}

// Double returns the floating point payload. It panics if the value is not
// KindDouble.
func (v Value) Double() float64 {
	v.expect(KindDouble)
	return v.f
}

// Str returns the string payload. It panics if the value is not KindString.
func (v Value) Str() string {
	v.expect(KindString)
	return v.s
}

// Array returns the array payload. It panics if the value is not KindArray.
func (v Value) Array() A {
	v.expect(KindArray)
	return v.arr
}

// Document returns the document payload. It panics if the value is not
// KindDocument.
func (v Value) Document() D {
	v.expect(KindDocument)
	return v.doc
}

// ID returns the identifier payload. It panics if the value is not KindID.
func (v Value) ID() uuid.UUID {
	v.expect(KindID)
	return v.id
}

// DateTime returns the timestamp payload. It panics if the value is not
// KindDateTime.
func (v Value) DateTime() time.Time {
	v.expect(KindDateTime)
	return v.t
}

// Binary returns the byte-blob payload. It panics if the value is not
// KindBinary.
func (v Value) Binary() []byte {
	v.expect(KindBinary)
	return v.bin
}

// Decimal returns the decimal payload. It panics if the value is not
// KindDecimal.
func (v Value) Decimal() *apd.Decimal {
	v.expect(KindDecimal)
	return v.dec
}

// Regex returns the pattern and options payload. It panics if the value is
// not KindRegex.
func (v Value) Regex() (pattern, options string) {
	v.expect(KindRegex)
	return v.s, v.opts
}

// Equal reports deep equality of two values. Timestamps compare with
// time.Time.Equal and decimals numerically, so equal instants and equal
// quantities match across representations.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt32, KindInt64:
		return v.n == o.n
	case KindDouble:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindDocument:
		if len(v.doc) != len(o.doc) {
			return false
		}
		for i := range v.doc {
			if v.doc[i].Key != o.doc[i].Key || !v.doc[i].Value.Equal(o.doc[i].Value) {
				return false
			}
		}
		return true
	case KindID:
		return v.id == o.id
	case KindDateTime:
		return v.t.Equal(o.t)
	case KindBinary:
		return bytes.Equal(v.bin, o.bin)
	case KindDecimal:
		return v.dec.Cmp(o.dec) == 0
	case KindRegex:
		return v.s == o.s && v.opts == o.opts
	}
	return false
}

// String renders the value for debugging and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt32, KindInt64:
		return strconv.FormatInt(v.n, 10)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindArray:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.String())
		}
		sb.WriteByte(']')
		return sb.String()
	case KindDocument:
		var sb strings.Builder
		sb.WriteByte('{')
		for i, e := range v.doc {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.Key)
			sb.WriteString(": ")
			sb.WriteString(e.Value.String())
		}
		sb.WriteByte('}')
		return sb.String()
	case KindID:
		return "id(" + v.id.String() + ")"
	case KindDateTime:
		return "datetime(" + v.t.Format(time.RFC3339Nano) + ")"
	case KindBinary:
		return fmt.Sprintf("binary(%d bytes)", len(v.bin))
	case KindDecimal:
		return "decimal(" + v.dec.String() + ")"
	case KindRegex:
		return "regex(/" + v.s + "/" + v.opts + ")"
	}
	return v.kind.String()
}
