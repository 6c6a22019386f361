package dwalk

// D represents a document, defined as an ordered collection of key-value
// pairs. Each entry in the document is represented by an E. Insertion order
// is preserved and semantically meaningful: single-entry documents double as
// tagged-union encodings (see Decoder.DecodeEnum).
type D []E

// A represents an array, defined as a slice of values.
type A []Value

// E represents a single entry in a document. It consists of a string key and
// an associated Value.
type E struct {
	Key   string
	Value Value
}

// Lookup returns the value of the first entry with the given key.
func (d D) Lookup(key string) (Value, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}
