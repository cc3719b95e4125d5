package service

import "errors"

// Registry errors. Type-level conditions (not registered, already
// registered) reuse the provider sentinels, so callers match one error
// taxonomy regardless of which layer rejected the call.
var (
	// ErrNoProviderForKind is returned by RegisterConfig when no provider
	// serves the requested registration kind.
	ErrNoProviderForKind = errors.New("no provider for registration kind")
	// ErrTypeNotAccessible is returned by [MultiAccessor.For] when the
	// requested type is not on the accessor's allow-list.
	ErrTypeNotAccessible = errors.New("configuration type not accessible")
	// ErrNoAccessorForKind is returned when a provider declares an
	// accessor kind the service has no factory for.
	ErrNoAccessorForKind = errors.New("no accessor factory for kind")
	// ErrServiceClosed is returned by operations on a closed service.
	ErrServiceClosed = errors.New("configuration service closed")
)
