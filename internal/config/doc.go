// Package config provides loading, merging, and validation of the
// subsystem's own options.
//
// Options are assembled from multiple sources; for every field the first
// source that supplies a non-zero value wins:
//  1. Programmatic overrides passed by the host application
//  2. Environment variables (KEEPER_* names)
//  3. An optional JSON options file (path from KEEPER_CONFIG)
//  4. Built-in defaults
//
// The main entry point is [GetOptions].
package config
