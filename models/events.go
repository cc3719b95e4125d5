// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Operation names the save path that produced a [SaveErrorEvent].
type Operation string

const (
	// OpSaveValues is the per-type settings save.
	OpSaveValues Operation = "save_values"
	// OpSaveInstance is the whole-instance save.
	OpSaveInstance Operation = "save_instance"
	// OpSaveContents is the raw default-file contents save.
	OpSaveContents Operation = "save_contents"
)

// Event is the closed set of notifications the configuration service
// delivers to subscribed observers. Consumers type-switch on the concrete
// event structs below.
type Event interface {
	event()
}

// SettingChangedEvent reports a single setting mutation. OldValue is the
// effective value before the write, NewValue the effective value after it.
type SettingChangedEvent struct {
	ConfigType string
	Key        string
	OldValue   any
	NewValue   any
}

// ConfigReloadedEvent reports that a type's settings table was rebuilt from
// its files, either after a detected file change or after its default file
// contents were replaced wholesale.
type ConfigReloadedEvent struct {
	ConfigType string
}

// SaveCompletedEvent reports a successful persistence pass for a type.
type SaveCompletedEvent struct {
	ConfigType string
}

// SaveErrorEvent reports a failed persistence pass. For fire-and-forget
// saves this event is the only place the failure surfaces.
type SaveErrorEvent struct {
	ConfigType string
	Operation  Operation
	Err        error
}

func (SettingChangedEvent) event() {}
func (ConfigReloadedEvent) event() {}
func (SaveCompletedEvent) event() {}
func (SaveErrorEvent) event() {}
