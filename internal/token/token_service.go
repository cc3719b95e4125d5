// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/models"
)

// tokenService is the private implementation of [TokenService].
type tokenService struct {
	logger *logger.Logger
}

// NewTokenService constructs a [TokenService].
func NewTokenService(log *logger.Logger) TokenService {
	if log == nil {
		log = logger.Nop()
	}
	return &tokenService{logger: log}
}

// CreateToken returns a fresh random token drawn from crypto/rand.
func (s *tokenService) CreateToken() (models.Token, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		s.logger.Err(err).Str("func", "tokenService.CreateToken").Msg("failed to draw randomness for token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}

	return models.Token(id), nil
}

// CreateTokenSet delegates to the pure resolution rules in models.
func (s *tokenService) CreateTokenSet(owner, read, write models.Token) models.TokenSet {
	return models.ResolveTokenSet(owner, read, write)
}

// AllowAccess evaluates the permission algorithm:
//
//  1. Owner bypass: the resource owner is set and equals the accessor owner.
//     Overrides Blocked.
//  2. Blocked resource permission denies everyone else.
//  3. Public resource permission grants everyone.
//  4. Otherwise grant only on an exact permission match.
//
// An unset resource permission denies: a registration that never resolved
// its tokens grants nothing by accident.
func (s *tokenService) AllowAccess(resourceOwner, resourcePermission, accessorOwner, accessorPermission models.Token) bool {
	if !resourceOwner.IsZero() && resourceOwner == accessorOwner {
		return true
	}

	if resourcePermission.IsZero() || resourcePermission == models.BlockedToken {
		return false
	}

	if resourcePermission == models.PublicToken {
		return true
	}

	return resourcePermission == accessorPermission
}

// RequireAccess is [tokenService.AllowAccess] with an error result for call
// sites that propagate denial instead of branching on it.
func (s *tokenService) RequireAccess(resourceOwner, resourcePermission, accessorOwner, accessorPermission models.Token) error {
	if s.AllowAccess(resourceOwner, resourcePermission, accessorOwner, accessorPermission) {
		return nil
	}

	return ErrNotAuthorized
}

// AllowAny grants when the accessor set passes the resource's Read check or
// its Write check.
func (s *tokenService) AllowAny(resource, accessor models.TokenSet) bool {
	if s.AllowAccess(resource.Owner, resource.Read, accessor.Owner, accessor.Read) {
		return true
	}

	return s.AllowAccess(resource.Owner, resource.Write, accessor.Owner, accessor.Write)
}
