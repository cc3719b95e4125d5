package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Token is an opaque 128-bit capability identifier.
//
// A Token carries no claims and no internal structure: holding the right
// token value IS the permission. Tokens are compared by value only, so the
// type is a plain array and supports the == operator directly.
//
// The zero value means "unspecified". Two reserved sentinel values exist:
// [PublicToken] grants the guarded operation to every caller and
// [BlockedToken] denies it to everyone except the resource owner.
type Token uuid.UUID

// Reserved sentinel tokens. They live in the UUID space that random
// generation can never produce, so a freshly created token cannot collide
// with either of them.
var (
	// PublicToken is the wildcard permission: any accessor passes a check
	// guarded by it.
	PublicToken = Token(uuid.MustParse("00000000-0000-0000-0000-000000000001"))

	// BlockedToken denies every accessor except the resource owner.
	BlockedToken = Token(uuid.MustParse("00000000-0000-0000-0000-000000000002"))
)

// IsZero reports whether the token is unspecified.
func (t Token) IsZero() bool {
	return t == Token{}
}

// String renders a redacted form of the token: the first four bytes in hex
// followed by "...". Capability tokens are secrets, so the full value must
// never reach log output. Use [Token.Reveal] when the complete value is
// genuinely required.
func (t Token) String() string {
	if t.IsZero() {
		return "token(unset)"
	}

	return fmt.Sprintf("token(%x...)", t[:4])
}

// Reveal returns the full canonical UUID form of the token.
//
// Intended for operational tooling that hands a token to the party meant to
// hold it. Never log the revealed form.
func (t Token) Reveal() string {
	return uuid.UUID(t).String()
}

// ParseToken converts the canonical UUID form produced by [Token.Reveal]
// back into a Token.
func ParseToken(s string) (Token, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Token{}, fmt.Errorf("parsing token: %w", err)
	}

	return Token(id), nil
}
