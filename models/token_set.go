package models

// TokenSet groups the three capability tokens attached to a registered
// configuration type.
//
// Owner identifies the registrant and bypasses every permission check,
// including [BlockedToken]. Read guards value reads, Write guards value
// mutation and persistence. Any member may be left unspecified; use
// [ResolveTokenSet] to apply the defaulting rules before storing a set.
type TokenSet struct {
	// Owner is the registrant's identity token. Optional.
	Owner Token

	// Read guards read operations on the configuration type.
	Read Token

	// Write guards write and save operations on the configuration type.
	Write Token
}

// ResolveTokenSet applies the defaulting rules to a possibly partial set of
// tokens and returns the effective TokenSet:
//
//   - Read unspecified: inherits Write when Write was given, otherwise
//     falls back to [PublicToken] (world-readable).
//   - Write unspecified: defaults to [BlockedToken] (nobody but the owner
//     may mutate).
//
// The function is pure: it never generates token values and always returns
// the same output for the same input.
func ResolveTokenSet(owner, read, write Token) TokenSet {
	resolved := TokenSet{Owner: owner, Read: read, Write: write}

	if resolved.Read.IsZero() {
		if !write.IsZero() {
			resolved.Read = write
		} else {
			resolved.Read = PublicToken
		}
	}

	if resolved.Write.IsZero() {
		resolved.Write = BlockedToken
	}

	return resolved
}
