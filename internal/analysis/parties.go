package analysis

import (
	"dagdraft/internal/types"
)

// Missing-locality field names, exactly as surfaced to the caller.
const (
	FieldClaimantLocality  = "woonplaats eiser"
	FieldDefendantLocality = "woonplaats gedaagde"
)

// ResolvedParties carries party display data after fallback resolution.
// Empty fields mean "unresolvable from any source".
type ResolvedParties struct {
	ClaimantName      string
	ClaimantLocality  string
	DefendantName     string
	DefendantLocality string
}

// ResolveParties resolves party names and localities through the fixed
// fallback precedence: explicit per-case override first, then the value
// embedded in the parsed analysis, then empty.
func ResolveParties(c *types.Case, a *Analysis) ResolvedParties {
	r := ResolvedParties{}
	if c != nil {
		r.ClaimantName = c.ClaimantName
		r.ClaimantLocality = c.ClaimantLocality
		r.DefendantName = c.DefendantName
		r.DefendantLocality = c.DefendantLocality
	}
	if a == nil {
		return r
	}
	if r.ClaimantName == "" {
		r.ClaimantName = a.Parties.ClaimantName
	}
	if r.ClaimantLocality == "" {
		r.ClaimantLocality = a.Parties.ClaimantLocality
	}
	if r.DefendantName == "" {
		r.DefendantName = a.Parties.DefendantName
	}
	if r.DefendantLocality == "" {
		r.DefendantLocality = a.Parties.DefendantLocality
	}
	return r
}

// MissingLocalityFields returns the locality fields a jurisdiction section
// cannot be generated without, claimant first. Empty means all present.
func (r ResolvedParties) MissingLocalityFields() []string {
	var missing []string
	if r.ClaimantLocality == "" {
		missing = append(missing, FieldClaimantLocality)
	}
	if r.DefendantLocality == "" {
		missing = append(missing, FieldDefendantLocality)
	}
	return missing
}
