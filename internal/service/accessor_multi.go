package service

import (
	"fmt"
	"sort"

	"github.com/MKhiriev/go-config-keeper/models"
)

// MultiAccessor fronts several configuration types with one token set.
// Components that legitimately read a handful of types hold one of these
// instead of a bag of single-type accessors; everything outside the
// allow-list stays invisible to them.
type MultiAccessor struct {
	service *Service
	tokens  models.TokenSet
	allowed map[string]struct{}
}

// For returns the accessor for typeName. Types outside the allow-list
// fail with [ErrTypeNotAccessible] whether or not they are registered.
func (m *MultiAccessor) For(typeName string) (Accessor, error) {
	if _, ok := m.allowed[typeName]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotAccessible, typeName)
	}
	return m.service.Accessor(typeName, m.tokens)
}

// Types returns the allow-list in stable order.
func (m *MultiAccessor) Types() []string {
	names := make([]string, 0, len(m.allowed))
	for name := range m.allowed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
