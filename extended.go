package dwalk

import (
	"encoding/base64"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// ExtendedDoc returns the canonical document form of an extended value and
// reports whether the value has one. Primitive kinds (scalars, arrays,
// documents) have no document form. The forms are:
//
//	id       {"$id": "<uuid>"}
//	datetime {"$date": "<RFC 3339>"}
//	binary   {"$binary": "<base64>"}
//	decimal  {"$decimal": "<text>"}
//	regex    {"$regex": "<pattern>", "$options": "<options>"}
//
// The value decoder applies this conversion whenever an extended value
// reaches its dispatch, so extended kinds decode generically as documents
// unless a specialized reconstruction intercepts the form first.
func (v Value) ExtendedDoc() (D, bool) {
	switch v.kind {
	case KindID:
		return D{{Key: "$id", Value: Str(v.id.String())}}, true
	case KindDateTime:
		return D{{Key: "$date", Value: Str(formatDateTime(v.t))}}, true
	case KindBinary:
		return D{{Key: "$binary", Value: Str(base64.StdEncoding.EncodeToString(v.bin))}}, true
	case KindDecimal:
		return D{{Key: "$decimal", Value: Str(v.dec.String())}}, true
	case KindRegex:
		return D{
			{Key: "$regex", Value: Str(v.s)},
			{Key: "$options", Value: Str(v.opts)},
		}, true
	}
	return nil, false
}

// fromExtendedDoc recognizes the canonical document forms produced by
// ExtendedDoc and rebuilds the extended value. Documents that merely resemble
// a form (wrong value shape, malformed payload text) are left alone.
func fromExtendedDoc(d D) (Value, bool) {
	if len(d) == 1 && d[0].Value.kind == KindString {
		s := d[0].Value.s
		switch d[0].Key {
		case "$id":
			id, err := uuid.Parse(s)
			if err != nil {
				return Value{}, false
			}
			return ID(id), true
		case "$date":
			t, err := parseDateTime(s)
			if err != nil {
				return Value{}, false
			}
			return DateTime(t), true
		case "$binary":
			b, err := parseBinary(s)
			if err != nil {
				return Value{}, false
			}
			return Binary(b), true
		case "$decimal":
			dec, err := parseDecimal(s)
			if err != nil {
				return Value{}, false
			}
			return Decimal(dec), true
		}
		return Value{}, false
	}
	if len(d) == 2 &&
		d[0].Key == "$regex" && d[0].Value.kind == KindString &&
		d[1].Key == "$options" && d[1].Value.kind == KindString {
		return Regex(d[0].Value.s, d[1].Value.s), true
	}
	return Value{}, false
}

func formatDateTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseDateTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func parseBinary(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

func parseDecimal(s string) (*apd.Decimal, error) {
	dec, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return dec, nil
}
