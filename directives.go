package dwalk

import (
	"time"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
)

// NewIDDirective returns a Registration decoding a UUID string into an id
// value under a custom directive name.
func NewIDDirective(name string) Registration {
	return NewDirective(name, unmarshalID)
}

// NewDateTimeDirective returns a Registration decoding either an RFC 3339
// string or an object with value/layout fields into a datetime value under a
// custom directive name. When the object form is used, layout is optional and
// defaults to time.RFC3339.
func NewDateTimeDirective(name string) Registration {
	return NewDirective(name, unmarshalDateTime)
}

// NewBinaryDirective returns a Registration decoding a standard base64 string
// into a binary value under a custom directive name.
func NewBinaryDirective(name string) Registration {
	return NewDirective(name, unmarshalBinary)
}

// NewDecimalDirective returns a Registration decoding decimal text into an
// arbitrary-precision decimal value under a custom directive name.
func NewDecimalDirective(name string) Registration {
	return NewDirective(name, unmarshalDecimal)
}

// NewRegexDirective returns a Registration decoding either a pattern string
// or an object with pattern/options fields into a regex value under a custom
// directive name.
func NewRegexDirective(name string) Registration {
	return NewDirective(name, unmarshalRegex)
}

// Canonical directive registrations for the extended kinds. Wire forms:
//
//	{"$id": "0f8fad5b-d9cb-469f-a165-70867728950e"}
//	{"$date": "2023-10-05T12:30:00Z"}
//	{"$date": {"value": "2023-10-05", "layout": "2006-01-02"}}
//	{"$binary": "aGVsbG8="}
//	{"$decimal": "12.340"}
//	{"$regex": {"pattern": "^a.*z$", "options": "i"}}
//	{"$regex": "^a.*z$"}
var (
	IDDirective       = NewIDDirective("id")
	DateTimeDirective = NewDateTimeDirective("date")
	BinaryDirective   = NewBinaryDirective("binary")
	DecimalDirective  = NewDecimalDirective("decimal")
	RegexDirective    = NewRegexDirective("regex")
)

// Canonical returns the registrations for every canonical directive.
func Canonical() Registration {
	return Group(IDDirective, DateTimeDirective, BinaryDirective, DecimalDirective, RegexDirective)
}

func unmarshalID(dec *jsontext.Decoder) (Value, error) {
	var s string
	if err := json.UnmarshalDecode(dec, &s); err != nil {
		return Value{}, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return Value{}, err
	}
	return ID(id), nil
}

func unmarshalDateTime(dec *jsontext.Decoder) (Value, error) {
	// Support object with value/layout or plain RFC 3339 string.
	if dec.PeekKind() == '{' {
		var aux struct {
			Value  string `json:"value"`
			Layout string `json:"layout"`
		}
		if err := json.UnmarshalDecode(dec, &aux); err != nil {
			return Value{}, err
		}
		layout := aux.Layout
		if layout == "" {
			layout = time.RFC3339
		}
		t, err := time.Parse(layout, aux.Value)
		if err != nil {
			return Value{}, err
		}
		return DateTime(t), nil
	}

	var s string
	if err := json.UnmarshalDecode(dec, &s); err != nil {
		return Value{}, err
	}
	t, err := parseDateTime(s)
	if err != nil {
		return Value{}, err
	}
	return DateTime(t), nil
}

func unmarshalBinary(dec *jsontext.Decoder) (Value, error) {
	var s string
	if err := json.UnmarshalDecode(dec, &s); err != nil {
		return Value{}, err
	}
	b, err := parseBinary(s)
	if err != nil {
		return Value{}, err
	}
	return Binary(b), nil
}

func unmarshalDecimal(dec *jsontext.Decoder) (Value, error) {
	var s string
	if err := json.UnmarshalDecode(dec, &s); err != nil {
		return Value{}, err
	}
	d, err := parseDecimal(s)
	if err != nil {
		return Value{}, err
	}
	return Decimal(d), nil
}

func unmarshalRegex(dec *jsontext.Decoder) (Value, error) {
	// Support object with pattern/options or a bare pattern string.
	if dec.PeekKind() == '{' {
		var aux struct {
			Pattern string `json:"pattern"`
			Options string `json:"options"`
		}
		if err := json.UnmarshalDecode(dec, &aux); err != nil {
			return Value{}, err
		}
		return Regex(aux.Pattern, aux.Options), nil
	}

	var s string
	if err := json.UnmarshalDecode(dec, &s); err != nil {
		return Value{}, err
	}
	return Regex(s, ""), nil
}
