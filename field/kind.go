package field

// ValueKind identifies the concrete representation of a field's values.
//
// The numeric values double as wire tags (see MarshalBinary); do not reorder.
type ValueKind uint8

const (
	// KindBytes is a byte-string (keyword-like) value.
	KindBytes ValueKind = iota
	// KindLong is a 64-bit integer value.
	KindLong
)

// String returns the string representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindLong:
		return "long"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the known value kinds.
func (k ValueKind) Valid() bool {
	return k == KindBytes || k == KindLong
}

// Value is a single extracted item value, tagged by kind.
//
// For KindBytes the Bytes slice is an owned copy, independent of any store
// buffer; holders may retain it indefinitely.
type Value struct {
	Kind  ValueKind
	Bytes []byte
	Long  int64
}

// BytesValue wraps an owned byte slice. The caller must not hand over a
// slice that aliases a transient store buffer.
func BytesValue(b []byte) Value {
	return Value{Kind: KindBytes, Bytes: b}
}

// LongValue wraps a 64-bit integer.
func LongValue(v int64) Value {
	return Value{Kind: KindLong, Long: v}
}
