package models

import (
	"errors"
	"fmt"
)

// ErrInvalidSchema is returned by [ConfigSchema.Validate] when a schema
// cannot be registered. Match with [errors.Is].
var ErrInvalidSchema = errors.New("invalid configuration schema")

// FieldType enumerates the value types a configuration field may declare.
// The declared type drives canonical coercion: every value read from disk or
// written by a caller is normalized to the Go type listed below before it is
// compared or returned.
type FieldType uint8

const (
	// FieldString normalizes to string.
	FieldString FieldType = iota + 1
	// FieldInt normalizes to int64.
	FieldInt
	// FieldFloat normalizes to float64.
	FieldFloat
	// FieldBool normalizes to bool.
	FieldBool
	// FieldDuration normalizes to time.Duration and persists as a duration
	// string such as "300ms".
	FieldDuration
	// FieldStringSlice normalizes to []string.
	FieldStringSlice
)

// String returns the lower-case name of the field type.
func (ft FieldType) String() string {
	switch ft {
	case FieldString:
		return "string"
	case FieldInt:
		return "int"
	case FieldFloat:
		return "float"
	case FieldBool:
		return "bool"
	case FieldDuration:
		return "duration"
	case FieldStringSlice:
		return "string_slice"
	default:
		return fmt.Sprintf("field_type(%d)", uint8(ft))
	}
}

func (ft FieldType) known() bool {
	return ft >= FieldString && ft <= FieldStringSlice
}

// FieldSpec declares a single configuration field: its name, value type,
// default value, and access flags.
//
// The zero value of the flag fields means "fully accessible": a plain
// FieldSpec{Name: "Theme", Type: FieldString} is both readable and writable.
type FieldSpec struct {
	// Name is the key under which the field appears in settings files and
	// in every accessor call.
	Name string

	// Type is the declared value type of the field.
	Type FieldType

	// Default is the value the field carries when no user override exists.
	// It is normalized to the canonical Go type of Type at registration.
	Default any

	// Secure marks the field as encrypted at rest. Secure fields are stored
	// and returned as [SecureValue]; requesting one as a plain type fails.
	Secure bool

	// ReadOnly forbids mutation of the field through any accessor.
	ReadOnly bool

	// WriteOnly forbids reading the field back once written. Useful for
	// credentials that may be set but never retrieved.
	WriteOnly bool
}

// ConfigSchema is the explicit descriptor of a configuration type: the type
// name used for registry lookups and file naming, plus the complete list of
// fields. Schemas are plain data; nothing is discovered through reflection.
type ConfigSchema struct {
	TypeName string
	Fields   []FieldSpec
}

// Field returns the field spec with the given name and whether it exists.
func (s ConfigSchema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return FieldSpec{}, false
}

// Validate checks the schema invariants: a non-empty type name, at least one
// field, unique non-empty field names, a known type on every field, and no
// field that is both read-only and write-only.
//
// All violations wrap [ErrInvalidSchema].
func (s ConfigSchema) Validate() error {
	if s.TypeName == "" {
		return fmt.Errorf("%w: empty type name", ErrInvalidSchema)
	}

	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: type %q declares no fields", ErrInvalidSchema, s.TypeName)
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: type %q has a field with an empty name", ErrInvalidSchema, s.TypeName)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: type %q declares field %q twice", ErrInvalidSchema, s.TypeName, f.Name)
		}
		seen[f.Name] = struct{}{}

		if !f.Type.known() {
			return fmt.Errorf("%w: field %q has unknown type %v", ErrInvalidSchema, f.Name, f.Type)
		}

		if f.ReadOnly && f.WriteOnly {
			return fmt.Errorf("%w: field %q is both read-only and write-only", ErrInvalidSchema, f.Name)
		}
	}

	return nil
}
