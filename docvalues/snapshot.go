package docvalues

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the codec applied to a snapshot's column payload.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = iota
	// CompressionLZ4 applies LZ4 framing (fast, moderate ratio).
	CompressionLZ4
	// CompressionZstd applies zstd framing (slower, better ratio).
	CompressionZstd
)

// snapshotMagic identifies a segment column snapshot stream ("FQDV").
const snapshotMagic = 0x46514456

// snapshotVersion is the snapshot layout version; readers reject versions
// they do not know.
const snapshotVersion = 1

var (
	// ErrBadSnapshot is returned for streams that are not snapshots or are
	// structurally corrupt.
	ErrBadSnapshot = errors.New("docvalues: malformed snapshot")
	// ErrBadCompression is returned for an unknown compression codec byte.
	ErrBadCompression = errors.New("docvalues: unknown compression codec")
)

// WriteSnapshot serializes a MemSegment to w.
//
// Layout: magic uint32, version byte, codec byte, then the codec-framed
// column payload. Snapshots let a populated segment be shipped to another
// execution unit or parked in a blob store.
func WriteSnapshot(w io.Writer, s *MemSegment, codec Compression) error {
	var header [6]byte
	binary.BigEndian.PutUint32(header[0:4], snapshotMagic)
	header[4] = snapshotVersion
	header[5] = byte(codec)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	cw, err := compressWriter(w, codec)
	if err != nil {
		return err
	}
	if _, err := cw.Write(encodeColumns(s)); err != nil {
		return fmt.Errorf("write snapshot payload: %w", err)
	}
	return cw.Close()
}

// ReadSnapshot deserializes a MemSegment from r.
func ReadSnapshot(r io.Reader) (*MemSegment, error) {
	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if binary.BigEndian.Uint32(header[0:4]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrBadSnapshot)
	}
	if header[4] != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, header[4])
	}

	cr, err := compressReader(r, Compression(header[5]))
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	payload, err := io.ReadAll(cr)
	if err != nil {
		return nil, fmt.Errorf("read snapshot payload: %w", err)
	}
	return decodeColumns(payload)
}

func compressWriter(w io.Writer, codec Compression) (io.WriteCloser, error) {
	switch codec {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionZstd:
		return zstd.NewWriter(w)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadCompression, codec)
	}
}

func compressReader(r io.Reader, codec Compression) (io.ReadCloser, error) {
	switch codec {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadCompression, codec)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// encodeColumns writes the uncompressed column payload: segment id, maxDoc,
// then the bytes columns and long columns, each with per-document value
// runs. All integers are varint-encoded.
func encodeColumns(s *MemSegment) []byte {
	buf := make([]byte, 0, 1024)
	buf = binary.AppendUvarint(buf, s.id)
	buf = binary.AppendUvarint(buf, uint64(s.maxDoc))

	buf = binary.AppendUvarint(buf, uint64(len(s.bytesCols)))
	for _, name := range slices.Sorted(maps.Keys(s.bytesCols)) {
		col := s.bytesCols[name]
		buf = binary.AppendUvarint(buf, uint64(len(name)))
		buf = append(buf, name...)
		buf = binary.AppendUvarint(buf, col.docs.GetCardinality())

		it := col.docs.Iterator()
		for it.HasNext() {
			doc := it.Next()
			vals := col.values[doc]
			buf = binary.AppendUvarint(buf, uint64(doc))
			buf = binary.AppendUvarint(buf, uint64(len(vals)))
			for _, v := range vals {
				buf = binary.AppendUvarint(buf, uint64(len(v)))
				buf = append(buf, v...)
			}
		}
	}

	buf = binary.AppendUvarint(buf, uint64(len(s.longCols)))
	for _, name := range slices.Sorted(maps.Keys(s.longCols)) {
		col := s.longCols[name]
		buf = binary.AppendUvarint(buf, uint64(len(name)))
		buf = append(buf, name...)
		buf = binary.AppendUvarint(buf, col.docs.GetCardinality())

		it := col.docs.Iterator()
		for it.HasNext() {
			doc := it.Next()
			vals := col.values[doc]
			buf = binary.AppendUvarint(buf, uint64(doc))
			buf = binary.AppendUvarint(buf, uint64(len(vals)))
			for _, v := range vals {
				buf = binary.AppendVarint(buf, v)
			}
		}
	}

	return buf
}

func decodeColumns(data []byte) (*MemSegment, error) {
	d := &payloadDecoder{data: data}

	id := d.uvarint()
	maxDoc := d.uvarint()
	if maxDoc > uint64(^uint32(0)) {
		return nil, fmt.Errorf("%w: maxDoc %d out of range", ErrBadSnapshot, maxDoc)
	}
	s := NewMemSegment(id, uint32(maxDoc))

	for range d.uvarint() {
		name := d.str()
		for range d.uvarint() {
			doc := d.uvarint()
			n := d.uvarint()
			vals := make([][]byte, 0, n)
			for range n {
				vals = append(vals, d.bytes())
			}
			if d.err != nil {
				return nil, d.err
			}
			if doc >= maxDoc {
				return nil, fmt.Errorf("%w: doc %d out of range", ErrBadSnapshot, doc)
			}
			if err := s.AddBytes(name, uint32(doc), vals...); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
			}
		}
	}

	for range d.uvarint() {
		name := d.str()
		for range d.uvarint() {
			doc := d.uvarint()
			n := d.uvarint()
			vals := make([]int64, 0, n)
			for range n {
				vals = append(vals, d.varint())
			}
			if d.err != nil {
				return nil, d.err
			}
			if doc >= maxDoc {
				return nil, fmt.Errorf("%w: doc %d out of range", ErrBadSnapshot, doc)
			}
			if err := s.AddLongs(name, uint32(doc), vals...); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
			}
		}
	}

	if d.err != nil {
		return nil, d.err
	}
	if len(d.data) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrBadSnapshot, len(d.data))
	}
	return s, nil
}

// payloadDecoder is a cursor over the column payload. The first decode error
// sticks; subsequent reads return zero values so callers can defer the error
// check to natural boundaries.
type payloadDecoder struct {
	data []byte
	err  error
}

func (d *payloadDecoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.data)
	if n <= 0 {
		d.err = fmt.Errorf("%w: truncated uvarint", ErrBadSnapshot)
		return 0
	}
	d.data = d.data[n:]
	return v
}

func (d *payloadDecoder) varint() int64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Varint(d.data)
	if n <= 0 {
		d.err = fmt.Errorf("%w: truncated varint", ErrBadSnapshot)
		return 0
	}
	d.data = d.data[n:]
	return v
}

func (d *payloadDecoder) bytes() []byte {
	l := d.uvarint()
	if d.err != nil {
		return nil
	}
	if uint64(len(d.data)) < l {
		d.err = fmt.Errorf("%w: truncated value", ErrBadSnapshot)
		return nil
	}
	v := d.data[:l]
	d.data = d.data[l:]
	return v
}

func (d *payloadDecoder) str() string {
	return string(d.bytes())
}
