package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name    string
		ft      FieldType
		in      any
		want    any
		wantErr bool
	}{
		{name: "string passthrough", ft: FieldString, in: "Light", want: "Light"},
		{name: "string from number", ft: FieldString, in: float64(5), want: "5"},
		{name: "int from json number", ft: FieldInt, in: float64(42), want: int64(42)},
		{name: "int from string", ft: FieldInt, in: "42", want: int64(42)},
		{name: "float from int", ft: FieldFloat, in: 3, want: float64(3)},
		{name: "bool from string", ft: FieldBool, in: "true", want: true},
		{name: "duration from string", ft: FieldDuration, in: "300ms", want: 300 * time.Millisecond},
		{name: "duration from ns number", ft: FieldDuration, in: float64(time.Second), want: time.Second},
		{name: "string slice from json array", ft: FieldStringSlice, in: []any{"a", "b"}, want: []string{"a", "b"}},
		{name: "nil stays nil", ft: FieldString, in: nil, want: nil},
		{name: "secure value refuses even as string", ft: FieldString, in: SecureValueFromEncrypted([]byte{0x11, 0x01}), wantErr: true},
		{name: "unconvertible int", ft: FieldInt, in: "not a number", wantErr: true},
		{name: "unconvertible bool", ft: FieldBool, in: "maybe", wantErr: true},
		{name: "unconvertible duration", ft: FieldDuration, in: "forever", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeValue(tt.ft, tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValueNotConvertible)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZeroValue(t *testing.T) {
	assert.Equal(t, "", ZeroValue(FieldString))
	assert.Equal(t, int64(0), ZeroValue(FieldInt))
	assert.Equal(t, float64(0), ZeroValue(FieldFloat))
	assert.Equal(t, false, ZeroValue(FieldBool))
	assert.Equal(t, time.Duration(0), ZeroValue(FieldDuration))
	assert.Equal(t, []string{}, ZeroValue(FieldStringSlice))
}

func TestEncodeValue(t *testing.T) {
	assert.Equal(t, "5m0s", EncodeValue(FieldDuration, 5*time.Minute), "durations persist as strings")
	assert.Equal(t, int64(7), EncodeValue(FieldInt, "7"), "encoding normalizes first")
	assert.Nil(t, EncodeValue(FieldString, nil))

	sealed := SecureValueFromEncrypted([]byte{0x11, 0x01, 0x02})
	assert.Equal(t, sealed, EncodeValue(FieldString, sealed), "unconvertible values pass through")
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name string
		ft   FieldType
		a    any
		b    any
		want bool
	}{
		{name: "same string", ft: FieldString, a: "Light", b: "Light", want: true},
		{name: "different string", ft: FieldString, a: "Light", b: "Dark", want: false},
		{name: "int vs json float", ft: FieldInt, a: int64(5), b: float64(5), want: true},
		{name: "duration string vs value", ft: FieldDuration, a: "1s", b: time.Second, want: true},
		{name: "slice order matters", ft: FieldStringSlice, a: []string{"a", "b"}, b: []string{"b", "a"}, want: false},
		{name: "equal slices", ft: FieldStringSlice, a: []any{"a"}, b: []string{"a"}, want: true},
		{
			name: "distinct ciphertexts never equal",
			ft:   FieldString,
			a:    SecureValueFromEncrypted([]byte{1, 2, 3}),
			b:    SecureValueFromEncrypted([]byte{4, 5, 6}),
			want: false,
		},
		{
			name: "identical ciphertexts equal",
			ft:   FieldString,
			a:    SecureValueFromEncrypted([]byte{1, 2, 3}),
			b:    SecureValueFromEncrypted([]byte{1, 2, 3}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValuesEqual(tt.ft, tt.a, tt.b))
		})
	}
}
