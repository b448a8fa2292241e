package field

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// binaryVersion is the wire version of the field encoding. Bump on any
// layout change; decoders reject versions they do not know.
const binaryVersion = 1

var (
	// ErrShortBuffer is returned when a field encoding is truncated.
	ErrShortBuffer = errors.New("field: short buffer")
	// ErrBadVersion is returned for an unknown encoding version.
	ErrBadVersion = errors.New("field: unsupported encoding version")
)

// AppendBinary appends the wire encoding of f to buf and returns the
// extended buffer.
//
// Layout: version byte, length-prefixed name, uvarint id, length-prefixed
// format name, length-prefixed format payload, single kind tag byte.
func (f Field) AppendBinary(buf []byte) ([]byte, error) {
	if f.format == nil {
		return nil, errors.New("field: nil format")
	}
	payload, err := formatPayload(f.format)
	if err != nil {
		return nil, fmt.Errorf("field: marshal format %q: %w", f.format.Name(), err)
	}

	buf = append(buf, binaryVersion)
	buf = appendString(buf, f.name)
	buf = binary.AppendUvarint(buf, uint64(f.id))
	buf = appendString(buf, f.format.Name())
	buf = binary.AppendUvarint(buf, uint64(len(payload)))
	buf = append(buf, payload...)
	buf = append(buf, byte(f.kind))
	return buf, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (f Field) MarshalBinary() ([]byte, error) {
	return f.AppendBinary(make([]byte, 0, 16+len(f.name)))
}

// DecodeField decodes one field from the front of data and returns it along
// with the number of bytes consumed, so that callers can decode a
// concatenated sequence of fields.
//
// An unknown version, format name or kind tag fails decoding; nothing is
// silently defaulted.
func DecodeField(data []byte) (Field, int, error) {
	rest := data

	if len(rest) < 1 {
		return Field{}, 0, ErrShortBuffer
	}
	if rest[0] != binaryVersion {
		return Field{}, 0, fmt.Errorf("%w: %d", ErrBadVersion, rest[0])
	}
	rest = rest[1:]

	name, rest, err := readString(rest)
	if err != nil {
		return Field{}, 0, fmt.Errorf("field: decode name: %w", err)
	}

	id, n := binary.Uvarint(rest)
	if n <= 0 {
		return Field{}, 0, fmt.Errorf("field: decode id: %w", ErrShortBuffer)
	}
	if id > uint64(^uint32(0)) {
		return Field{}, 0, fmt.Errorf("field: id %d out of range", id)
	}
	rest = rest[n:]

	formatName, rest, err := readString(rest)
	if err != nil {
		return Field{}, 0, fmt.Errorf("field: decode format name: %w", err)
	}

	payloadLen, n := binary.Uvarint(rest)
	if n <= 0 {
		return Field{}, 0, fmt.Errorf("field: decode format payload: %w", ErrShortBuffer)
	}
	rest = rest[n:]
	if uint64(len(rest)) < payloadLen {
		return Field{}, 0, fmt.Errorf("field: decode format payload: %w", ErrShortBuffer)
	}
	payload := rest[:payloadLen]
	rest = rest[payloadLen:]

	format, err := loadFormat(formatName, payload)
	if err != nil {
		return Field{}, 0, err
	}

	if len(rest) < 1 {
		return Field{}, 0, ErrShortBuffer
	}
	kind := ValueKind(rest[0])
	if !kind.Valid() {
		return Field{}, 0, fmt.Errorf("%w: tag %d", ErrUnsupportedValueKind, rest[0])
	}
	rest = rest[1:]

	return New(name, uint32(id), format, kind), len(data) - len(rest), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Trailing bytes are
// rejected; use DecodeField for concatenated sequences.
func (f *Field) UnmarshalBinary(data []byte) error {
	decoded, n, err := DecodeField(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("field: %d trailing bytes", len(data)-n)
	}
	*f = decoded
	return nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func readString(data []byte) (string, []byte, error) {
	l, n := binary.Uvarint(data)
	if n <= 0 {
		return "", nil, ErrShortBuffer
	}
	data = data[n:]
	if uint64(len(data)) < l {
		return "", nil, ErrShortBuffer
	}
	return string(data[:l]), data[l:], nil
}
