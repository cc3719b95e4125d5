package models

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// ErrValueNotConvertible is returned by [NormalizeValue] when a value cannot
// be coerced to the canonical Go type declared by its [FieldType]. Match
// with [errors.Is].
var ErrValueNotConvertible = errors.New("value not convertible to declared type")

// NormalizeValue coerces v to the canonical Go type of ft: string, int64,
// float64, bool, time.Duration or []string. JSON-decoded values (float64
// numbers, []any slices) and human-entered forms (duration strings, "true")
// are all accepted. A [SecureValue] never normalizes regardless of ft;
// ciphertext moves only through the secure paths.
//
// A nil input stays nil. An unconvertible input returns an error wrapping
// [ErrValueNotConvertible]; the caller decides whether to surface it or to
// fall back to the type's zero default.
func NormalizeValue(ft FieldType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	// Ciphertext never converts; cast would otherwise stringify it through
	// the redacting Stringer.
	if _, ok := v.(SecureValue); ok {
		return nil, fmt.Errorf("%w: secure value as %v", ErrValueNotConvertible, ft)
	}

	var (
		normalized any
		err        error
	)

	switch ft {
	case FieldString:
		normalized, err = cast.ToStringE(v)
	case FieldInt:
		normalized, err = cast.ToInt64E(v)
	case FieldFloat:
		normalized, err = cast.ToFloat64E(v)
	case FieldBool:
		normalized, err = cast.ToBoolE(v)
	case FieldDuration:
		normalized, err = cast.ToDurationE(v)
	case FieldStringSlice:
		normalized, err = cast.ToStringSliceE(v)
	default:
		err = fmt.Errorf("unknown field type %v", ft)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %T as %v: %v", ErrValueNotConvertible, v, ft, err)
	}

	return normalized, nil
}

// ZeroValue returns the canonical zero value for ft: "", 0, 0.0, false,
// time.Duration(0) or an empty []string. Reads of unconvertible stored
// values fall back to this in lenient mode.
func ZeroValue(ft FieldType) any {
	switch ft {
	case FieldString:
		return ""
	case FieldInt:
		return int64(0)
	case FieldFloat:
		return float64(0)
	case FieldBool:
		return false
	case FieldDuration:
		return time.Duration(0)
	case FieldStringSlice:
		return []string{}
	default:
		return nil
	}
}

// EncodeValue converts a canonical value into its JSON document form.
// Durations become duration strings so that settings files stay readable;
// every other type already has a natural JSON representation. Values that do
// not normalize (for example a [SecureValue]) pass through unchanged and
// rely on their own JSON marshaling.
func EncodeValue(ft FieldType, v any) any {
	if v == nil {
		return nil
	}

	normalized, err := NormalizeValue(ft, v)
	if err != nil || normalized == nil {
		return v
	}

	if ft == FieldDuration {
		return normalized.(time.Duration).String()
	}

	return normalized
}

// ValuesEqual reports whether a and b represent the same value under the
// declared field type. Both sides are normalized first, so int 5, float64 5
// and "5" compare equal for a [FieldInt] field. Values that cannot be
// normalized (encrypted blobs among them) fall back to deep equality, which
// means two independently encrypted copies of the same secret never compare
// equal.
func ValuesEqual(ft FieldType, a, b any) bool {
	na, errA := NormalizeValue(ft, a)
	nb, errB := NormalizeValue(ft, b)

	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}

	return reflect.DeepEqual(na, nb)
}
