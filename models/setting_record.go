package models

// SettingRecord is one row of a provider's settings table: the declared
// type, the default value, the optional user override, and the per-field
// access flags derived from the schema.
//
// Invariant: UserValue, when non-nil, differs from DefaultValue under
// canonical equality. Writing a value equal to the default clears the
// override instead of storing it, so the table never carries a redundant
// override.
type SettingRecord struct {
	// Type is the declared field type driving coercion and encoding.
	Type FieldType

	// DefaultValue is the value from the default layer (or the schema
	// declaration when the default file does not mention the field).
	DefaultValue any

	// UserValue is the user-layer override. nil means no override.
	UserValue any

	// ReadAllowed permits reads of the field.
	ReadAllowed bool

	// WriteAllowed permits mutation of the field.
	WriteAllowed bool
}

// HasOverride reports whether a user override is present.
func (r *SettingRecord) HasOverride() bool {
	return r.UserValue != nil
}

// EffectiveValue returns the override when present, the default otherwise.
func (r *SettingRecord) EffectiveValue() any {
	if r.UserValue != nil {
		return r.UserValue
	}

	return r.DefaultValue
}
