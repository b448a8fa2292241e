package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldAccessors(t *testing.T) {
	f := New("category", 3, RawFormat{}, KindBytes)

	assert.Equal(t, "category", f.Name())
	assert.Equal(t, uint32(3), f.ID())
	assert.Equal(t, KindBytes, f.Kind())
	assert.Equal(t, "raw", f.Format().Name())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value Value
		want  string
	}{
		{
			name:  "bytes raw",
			field: New("tag", 0, RawFormat{}, KindBytes),
			value: BytesValue([]byte("apple")),
			want:  "apple",
		},
		{
			name:  "long raw",
			field: New("count", 1, RawFormat{}, KindLong),
			value: LongValue(-42),
			want:  "-42",
		},
		{
			name:  "long epoch millis",
			field: New("ts", 2, EpochMillisFormat{}, KindLong),
			value: LongValue(0),
			want:  "1970-01-01T00:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.FormatValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatValueUnsupportedKind(t *testing.T) {
	f := New("broken", 0, RawFormat{}, ValueKind(99))

	_, err := f.FormatValue(LongValue(1))
	require.ErrorIs(t, err, ErrUnsupportedValueKind)
}

func TestFieldEqual(t *testing.T) {
	base := New("category", 7, RawFormat{}, KindBytes)

	tests := []struct {
		name  string
		other Field
		want  bool
	}{
		{"identical", New("category", 7, RawFormat{}, KindBytes), true},
		{"different id", New("category", 8, RawFormat{}, KindBytes), false},
		{"different name", New("label", 7, RawFormat{}, KindBytes), false},
		{"different kind", New("category", 7, RawFormat{}, KindLong), false},
		{"different format", New("category", 7, EpochMillisFormat{}, KindBytes), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
			assert.Equal(t, tt.want, tt.other.Equal(base))
			assert.Equal(t, tt.want, base.HashKey() == tt.other.HashKey())
		})
	}
}

func TestHashKeyAsMapKey(t *testing.T) {
	a := New("category", 1, RawFormat{}, KindBytes)
	b := New("category", 1, RawFormat{}, KindBytes)
	c := New("category", 2, RawFormat{}, KindBytes)

	counts := map[string]int{}
	counts[a.HashKey()]++
	counts[b.HashKey()]++
	counts[c.HashKey()]++

	assert.Equal(t, 2, counts[a.HashKey()])
	assert.Equal(t, 1, counts[c.HashKey()])
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "bytes", KindBytes.String())
	assert.Equal(t, "long", KindLong.String())
	assert.Equal(t, "unknown", ValueKind(42).String())
}
