package dwalk

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshalers returns the full set of dwalk unmarshalers allowing decoding
// into:
//   - *Value -> full tree building; directive objects dispatched through r
//   - *D     -> direct ordered object decoding (no top-level dispatch)
//   - *A     -> direct array decoding
func Unmarshalers(r *Registry) *json.Unmarshalers {
	return json.JoinUnmarshalers(
		valueUnmarshaler(r),
		documentUnmarshaler(r),
		collectionUnmarshaler(r),
	)
}

// Parse builds a Value tree from JSON text, dispatching directive objects of
// the form {"$<name>": <value>} through r. A nil r uses DefaultRegistry.
func Parse(data []byte, r *Registry) (Value, error) {
	if r == nil {
		r = DefaultRegistry
	}
	var v Value
	if err := json.Unmarshal(data, &v, json.WithUnmarshalers(Unmarshalers(r))); err != nil {
		return Value{}, err
	}
	return v, nil
}

// valueUnmarshaler decodes any JSON value into a Value:
//   - objects become KindDocument with key order preserved
//   - arrays become KindArray
//   - directive objects {"$<name>": <value>[, ...ignored...]} dispatch to the
//     registered directive; extra fields after the directive key are skipped
//   - integer literals become Int32 when they fit, Int64 otherwise; any other
//     number becomes Double
func valueUnmarshaler(r *Registry) *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Value) error {
		val, err := decodeTree(dec, r)
		if err != nil {
			return err
		}
		*v = val
		return nil
	})
}

// documentUnmarshaler decodes a JSON object into a *D with ordered key
// preservation. Directive objects are NOT interpreted at the top level; that
// only happens when decoding into Value trees. Nested values still dispatch,
// so a directive inside a field decodes to its extended kind.
func documentUnmarshaler(r *Registry) *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *D) error {
		if dec.PeekKind() != '{' {
			return json.SkipFunc
		}
		val, err := decodeObjectValue(dec, r, false)
		if err != nil {
			return err
		}
		*v = val.Document()
		return nil
	})
}

// collectionUnmarshaler decodes a JSON array into an *A.
func collectionUnmarshaler(r *Registry) *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *A) error {
		if dec.PeekKind() != '[' {
			return json.SkipFunc
		}
		val, err := decodeArrayValue(dec, r)
		if err != nil {
			return err
		}
		*v = val.Array()
		return nil
	})
}

// decodeTree decodes the next JSON value of any kind.
func decodeTree(dec *jsontext.Decoder, r *Registry) (Value, error) {
	switch dec.PeekKind() {
	case '{':
		return decodeObjectValue(dec, r, true)
	case '[':
		return decodeArrayValue(dec, r)
	case 'n':
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, fmt.Errorf("read null: %w", err)
		}
		return Null(), nil
	case 't', 'f':
		tok, err := dec.ReadToken()
		if err != nil {
			return Value{}, fmt.Errorf("read bool: %w", err)
		}
		return Bool(tok.Bool()), nil
	case '"':
		tok, err := dec.ReadToken()
		if err != nil {
			return Value{}, fmt.Errorf("read string: %w", err)
		}
		return Str(tok.String()), nil
	case '0':
		raw, err := dec.ReadValue()
		if err != nil {
			return Value{}, fmt.Errorf("read number: %w", err)
		}
		return numberValue(raw), nil
	default:
		return Value{}, fmt.Errorf("unexpected token kind %q", dec.PeekKind().String())
	}
}

// numberValue picks the narrowest numeric kind for a JSON number literal:
// integer literals land in Int32 or Int64, everything else in Double.
func numberValue(raw jsontext.Value) Value {
	s := string(raw)
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			if n >= math.MinInt32 && n <= math.MaxInt32 {
				return Int32(int32(n))
			}
			return Int64(n)
		}
	}
	f, _ := strconv.ParseFloat(s, 64)
	return Double(f)
}

// decodeObjectValue decodes a JSON object. If directives is true and the
// first key starts with '$', the corresponding directive builds the value and
// any extra fields are skipped. Otherwise the object becomes an ordered
// document.
func decodeObjectValue(dec *jsontext.Decoder, r *Registry, directives bool) (Value, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return Value{}, fmt.Errorf("read object open: %w", err)
	}
	if dec.PeekKind() == '}' { // empty
		if _, err := dec.ReadToken(); err != nil { // '}'
			return Value{}, fmt.Errorf("read object close: %w", err)
		}
		return Doc(), nil
	}

	// read first key
	var firstKey string
	if err := json.UnmarshalDecode(dec, &firstKey); err != nil {
		return Value{}, fmt.Errorf("read object first key: %w", err)
	}
	if directives && r != nil && len(firstKey) > 0 && firstKey[0] == '$' {
		val, err := r.Exec(firstKey[1:], dec)
		if err != nil {
			return Value{}, fmt.Errorf("directive %q: %w", firstKey, err)
		}
		// skip any extra fields so the decoder stays valid; a directive that
		// wants trailing fields must consume them itself
		for dec.PeekKind() != '}' {
			if err := dec.SkipValue(); err != nil {
				return Value{}, fmt.Errorf("directive %q skip extra field: %w", firstKey, err)
			}
		}
		if _, err := dec.ReadToken(); err != nil { // '}'
			return Value{}, fmt.Errorf("directive %q read object close: %w", firstKey, err)
		}
		return val, nil
	}

	// regular object path
	firstVal, err := decodeTree(dec, r)
	if err != nil {
		return Value{}, fmt.Errorf("read object value for key %q: %w", firstKey, err)
	}
	doc := D{{Key: firstKey, Value: firstVal}}
	for dec.PeekKind() != '}' {
		var k string
		if err := json.UnmarshalDecode(dec, &k); err != nil {
			return Value{}, fmt.Errorf("read object key: %w", err)
		}
		vv, err := decodeTree(dec, r)
		if err != nil {
			return Value{}, fmt.Errorf("read object value for key %q: %w", k, err)
		}
		doc = append(doc, E{Key: k, Value: vv})
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return Value{}, fmt.Errorf("read object close: %w", err)
	}
	return Doc(doc...), nil
}

// decodeArrayValue decodes a JSON array.
func decodeArrayValue(dec *jsontext.Decoder, r *Registry) (Value, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return Value{}, fmt.Errorf("read array open: %w", err)
	}
	if dec.PeekKind() == ']' { // empty
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, fmt.Errorf("read array close: %w", err)
		}
		return Arr(), nil
	}
	elems := make(A, 0)
	for dec.PeekKind() != ']' {
		elem, err := decodeTree(dec, r)
		if err != nil {
			return Value{}, fmt.Errorf("read array element: %w", err)
		}
		elems = append(elems, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return Value{}, fmt.Errorf("read array close: %w", err)
	}
	return Arr(elems...), nil
}
