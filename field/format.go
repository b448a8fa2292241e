package field

import (
	"encoding"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Format converts raw values into their display representation.
//
// Formats are named so they can be encoded alongside a Field and resolved on
// a remote execution unit. Parameterized formats additionally implement
// encoding.BinaryMarshaler; their loader receives the marshaled payload.
type Format interface {
	// Name returns the registered format name used on the wire.
	Name() string
	// FormatBytes returns the display value for a raw byte-string value.
	FormatBytes(v []byte) string
	// FormatLong returns the display value for a raw 64-bit integer value.
	FormatLong(v int64) string
}

// FormatLoader reconstructs a Format from its wire name and marshaled
// payload. The payload is empty for formats that do not implement
// encoding.BinaryMarshaler.
type FormatLoader func(name string, payload []byte) (Format, error)

var (
	formatLoaderMu sync.RWMutex
	formatLoaders  = map[string]FormatLoader{}
)

// RegisterFormat registers a loader for a named format.
//
// Format implementations should typically call this from an init() function.
// Registering a name twice panics: the wire name is a cross-version contract
// and silently replacing a loader would break decoding.
func RegisterFormat(name string, loader FormatLoader) {
	formatLoaderMu.Lock()
	defer formatLoaderMu.Unlock()
	if _, ok := formatLoaders[name]; ok {
		panic(fmt.Sprintf("field: format %q already registered", name))
	}
	formatLoaders[name] = loader
}

func loadFormat(name string, payload []byte) (Format, error) {
	formatLoaderMu.RLock()
	loader, ok := formatLoaders[name]
	formatLoaderMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("field: unknown format %q", name)
	}
	return loader(name, payload)
}

func formatPayload(f Format) ([]byte, error) {
	bm, ok := f.(encoding.BinaryMarshaler)
	if !ok {
		return nil, nil
	}
	return bm.MarshalBinary()
}

// formatEqual compares two formats for descriptor equality. Formats are
// compared by wire identity: name plus marshaled payload.
func formatEqual(a, b Format) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name() != b.Name() {
		return false
	}
	pa, err := formatPayload(a)
	if err != nil {
		return false
	}
	pb, err := formatPayload(b)
	if err != nil {
		return false
	}
	return string(pa) == string(pb)
}

const (
	formatNameRaw         = "raw"
	formatNameEpochMillis = "epoch_millis"
)

func init() {
	RegisterFormat(formatNameRaw, func(string, []byte) (Format, error) {
		return RawFormat{}, nil
	})
	RegisterFormat(formatNameEpochMillis, func(string, []byte) (Format, error) {
		return EpochMillisFormat{}, nil
	})
}

// RawFormat renders byte-strings verbatim and integers in decimal.
type RawFormat struct{}

// Name implements Format.
func (RawFormat) Name() string { return formatNameRaw }

// FormatBytes implements Format.
func (RawFormat) FormatBytes(v []byte) string { return string(v) }

// FormatLong implements Format.
func (RawFormat) FormatLong(v int64) string { return strconv.FormatInt(v, 10) }

// EpochMillisFormat renders integer values as UTC timestamps interpreted as
// milliseconds since the Unix epoch. Byte-string values pass through.
type EpochMillisFormat struct{}

// Name implements Format.
func (EpochMillisFormat) Name() string { return formatNameEpochMillis }

// FormatBytes implements Format.
func (EpochMillisFormat) FormatBytes(v []byte) string { return string(v) }

// FormatLong implements Format.
func (EpochMillisFormat) FormatLong(v int64) string {
	return time.UnixMilli(v).UTC().Format(time.RFC3339Nano)
}
