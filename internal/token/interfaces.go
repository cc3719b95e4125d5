package token

//go:generate mockgen -source=interfaces.go -destination=../mock/token_service_mock.go -package=mock

import "github.com/MKhiriev/go-config-keeper/models"

// TokenService issues capability tokens and evaluates every access decision
// in the subsystem. It knows nothing about providers, files or encryption;
// its single concern is token identity and the permission algorithm.
//
// Access model:
//
//	grant = ownerBypass || (permission != Blocked && (permission == Public || permission == accessorPermission))
//
// where ownerBypass holds when the resource owner token is set and equals
// the accessor's owner token. The owner bypass overrides [models.BlockedToken].
type TokenService interface {
	// CreateToken returns a fresh random capability token. The value space
	// is 128 bits, so collisions with existing tokens or with the reserved
	// sentinels are not a practical concern.
	CreateToken() (models.Token, error)

	// CreateTokenSet applies the defaulting rules to a possibly partial
	// triple and returns the effective set: Read falls back to Write when
	// only Write was given and to Public when neither was; Write falls
	// back to Blocked. Pass the zero [models.Token] for "unspecified".
	CreateTokenSet(owner, read, write models.Token) models.TokenSet

	// AllowAccess evaluates the permission algorithm and reports the
	// decision. An unset resourcePermission always denies.
	AllowAccess(resourceOwner, resourcePermission, accessorOwner, accessorPermission models.Token) bool

	// RequireAccess is AllowAccess returning ErrNotAuthorized on denial.
	RequireAccess(resourceOwner, resourcePermission, accessorOwner, accessorPermission models.Token) error

	// AllowAny reports whether accessor holds at least one of the Read and
	// Write capabilities of resource (owner bypass included).
	AllowAny(resource, accessor models.TokenSet) bool
}
