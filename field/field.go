package field

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedValueKind signals a construction defect: a value kind with
// no matching formatter variant. Unreachable when fields are built through
// New with a valid kind.
var ErrUnsupportedValueKind = errors.New("unsupported value kind")

// Field is the immutable identity and format record for one configured
// field.
//
// The id is unique per request and serves as a stable sort/merge key when
// partial results from independent execution units are combined.
type Field struct {
	name   string
	id     uint32
	format Format
	kind   ValueKind
}

// New creates a Field. The format must not be nil.
func New(name string, id uint32, format Format, kind ValueKind) Field {
	return Field{name: name, id: id, format: format, kind: kind}
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// ID returns the per-request field id.
func (f Field) ID() uint32 { return f.id }

// Format returns the display format bound to the field.
func (f Field) Format() Format { return f.format }

// Kind returns the field's value kind.
func (f Field) Kind() ValueKind { return f.kind }

// formatters is a closed dispatch table keyed by ValueKind. Both variants
// are total over their kind; an out-of-range kind is a construction defect.
var formatters = [...]func(Format, Value) string{
	KindBytes: func(ft Format, v Value) string { return ft.FormatBytes(v.Bytes) },
	KindLong:  func(ft Format, v Value) string { return ft.FormatLong(v.Long) },
}

// FormatValue converts a raw extracted value into its display value using
// the field's format.
func (f Field) FormatValue(v Value) (string, error) {
	if int(f.kind) >= len(formatters) {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedValueKind, f.kind)
	}
	return formatters[f.kind](f.format, v), nil
}

// Equal reports whether two fields are identical under merge semantics:
// same id, kind, name and format.
func (f Field) Equal(other Field) bool {
	return f.id == other.id &&
		f.kind == other.kind &&
		f.name == other.name &&
		formatEqual(f.format, other.format)
}

// HashKey returns a stable string key for use in maps. Two fields share a
// key iff they are Equal.
func (f Field) HashKey() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(f.id), 10))
	sb.WriteByte(0)
	sb.WriteByte(byte(f.kind))
	sb.WriteByte(0)
	sb.WriteString(f.name)
	sb.WriteByte(0)
	if f.format != nil {
		sb.WriteString(f.format.Name())
		if payload, err := formatPayload(f.format); err == nil {
			sb.Write(payload)
		}
	}
	return sb.String()
}

// String returns a human-readable representation for logging.
func (f Field) String() string {
	return fmt.Sprintf("%s#%d(%s)", f.name, f.id, f.kind)
}
