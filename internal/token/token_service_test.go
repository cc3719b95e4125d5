package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/models"
)

func newTestService(t *testing.T) TokenService {
	t.Helper()
	return NewTokenService(logger.Nop())
}

func mustCreateToken(t *testing.T, svc TokenService) models.Token {
	t.Helper()

	token, err := svc.CreateToken()
	require.NoError(t, err)
	require.False(t, token.IsZero())

	return token
}

func TestCreateToken_FreshAndDistinct(t *testing.T) {
	svc := newTestService(t)

	first := mustCreateToken(t, svc)
	second := mustCreateToken(t, svc)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, models.PublicToken, first)
	assert.NotEqual(t, models.BlockedToken, first)
}

func TestCreateTokenSet_AppliesDefaulting(t *testing.T) {
	svc := newTestService(t)
	owner := mustCreateToken(t, svc)

	set := svc.CreateTokenSet(owner, models.Token{}, models.Token{})

	assert.Equal(t, owner, set.Owner)
	assert.Equal(t, models.PublicToken, set.Read)
	assert.Equal(t, models.BlockedToken, set.Write)
}

func TestAllowAccess(t *testing.T) {
	svc := newTestService(t)

	owner := mustCreateToken(t, svc)
	stranger := mustCreateToken(t, svc)
	permission := mustCreateToken(t, svc)
	otherPermission := mustCreateToken(t, svc)

	tests := []struct {
		name               string
		resourceOwner      models.Token
		resourcePermission models.Token
		accessorOwner      models.Token
		accessorPermission models.Token
		want               bool
	}{
		{
			name:               "owner bypasses blocked",
			resourceOwner:      owner,
			resourcePermission: models.BlockedToken,
			accessorOwner:      owner,
			want:               true,
		},
		{
			name:               "blocked denies non-owner with matching permission",
			resourceOwner:      owner,
			resourcePermission: models.BlockedToken,
			accessorOwner:      stranger,
			accessorPermission: models.BlockedToken,
			want:               false,
		},
		{
			name:               "public grants anyone",
			resourcePermission: models.PublicToken,
			accessorOwner:      stranger,
			want:               true,
		},
		{
			name:               "exact match grants",
			resourcePermission: permission,
			accessorPermission: permission,
			want:               true,
		},
		{
			name:               "mismatch denies",
			resourcePermission: permission,
			accessorPermission: otherPermission,
			want:               false,
		},
		{
			name:               "unset accessor permission denies against specific permission",
			resourcePermission: permission,
			want:               false,
		},
		{
			name:          "unset resource permission denies even on both-zero match",
			resourceOwner: owner,
			accessorOwner: stranger,
			want:          false,
		},
		{
			name:               "unset resource owner disables the bypass",
			resourcePermission: models.BlockedToken,
			accessorOwner:      stranger,
			want:               false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.AllowAccess(tt.resourceOwner, tt.resourcePermission, tt.accessorOwner, tt.accessorPermission)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireAccess(t *testing.T) {
	svc := newTestService(t)
	permission := mustCreateToken(t, svc)

	require.NoError(t, svc.RequireAccess(models.Token{}, permission, models.Token{}, permission))

	err := svc.RequireAccess(models.Token{}, models.BlockedToken, models.Token{}, permission)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAllowAny(t *testing.T) {
	svc := newTestService(t)

	owner := mustCreateToken(t, svc)
	read := mustCreateToken(t, svc)
	write := mustCreateToken(t, svc)
	resource := svc.CreateTokenSet(owner, read, write)

	tests := []struct {
		name     string
		accessor models.TokenSet
		want     bool
	}{
		{name: "read capability suffices", accessor: models.TokenSet{Read: read}, want: true},
		{name: "write capability suffices", accessor: models.TokenSet{Write: write}, want: true},
		{name: "owner suffices", accessor: models.TokenSet{Owner: owner}, want: true},
		{name: "no capability denies", accessor: models.TokenSet{}, want: false},
		{
			name:     "swapped capabilities deny",
			accessor: models.TokenSet{Read: write, Write: read},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.AllowAny(resource, tt.accessor))
		})
	}
}
