// Package analysis parses a case's stored analysis blob into the canonical
// shape the context assembler grounds generation on. Parsing is tolerant:
// the blob comes from an upstream extraction pipeline whose output drifts,
// so missing arrays become empty and loosely-typed values are coerced
// instead of failing the whole generate call.
package analysis

import (
	"encoding/json"
	"fmt"

	"dagdraft/internal/types"
)

// LegalBasisEntry is one legal ground identified by the case analysis.
type LegalBasisEntry struct {
	Article     string `json:"article"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

// Parties holds the party block embedded in the analysis.
type Parties struct {
	ClaimantName      string `json:"claimant_name"`
	ClaimantLocality  string `json:"claimant_locality"`
	DefendantName     string `json:"defendant_name"`
	DefendantLocality string `json:"defendant_locality"`
}

// Analysis is the canonical parsed shape of a completed case analysis.
type Analysis struct {
	FactsKnown    []string
	FactsDisputed []string
	FactsUnclear  []string
	LegalBasis    []LegalBasisEntry
	// SimplifiedProcedure flags eligibility for the simplified (kanton)
	// procedure.
	SimplifiedProcedure bool
	Parties             Parties
}

// Parse decodes a raw analysis blob into the canonical shape. A nil or
// empty blob yields an empty Analysis, not an error; generation guards on
// the case's analysis *status*, not on blob contents.
func Parse(raw []byte) (*Analysis, error) {
	a := &Analysis{}
	if len(raw) == 0 {
		return a, nil
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("analysis blob is not valid JSON: %w", err)
	}

	// The extraction pipeline has produced both flat and nested fact
	// blocks over time; accept either.
	if facts, ok := m["facts"].(map[string]interface{}); ok {
		a.FactsKnown = stringList(facts["known"])
		a.FactsDisputed = stringList(facts["disputed"])
		a.FactsUnclear = stringList(facts["unclear"])
	} else {
		a.FactsKnown = stringList(m["known_facts"])
		a.FactsDisputed = stringList(m["disputed_facts"])
		a.FactsUnclear = stringList(m["unclear_facts"])
	}

	if entries, ok := m["legal_basis"].([]interface{}); ok {
		for _, e := range entries {
			em, ok := e.(map[string]interface{})
			if !ok {
				continue
			}
			a.LegalBasis = append(a.LegalBasis, LegalBasisEntry{
				Article:     str(em["article"]),
				Title:       str(em["title"]),
				Explanation: str(em["explanation"]),
			})
		}
	}

	a.SimplifiedProcedure = boolean(m["simplified_procedure"])

	if p, ok := m["parties"].(map[string]interface{}); ok {
		a.Parties = Parties{
			ClaimantName:      str(p["claimant_name"]),
			ClaimantLocality:  str(p["claimant_locality"]),
			DefendantName:     str(p["defendant_name"]),
			DefendantLocality: str(p["defendant_locality"]),
		}
	}

	return a, nil
}

// ParseCase parses the analysis attached to a case.
func ParseCase(c *types.Case) (*Analysis, error) {
	return Parse(c.AnalysisJSON)
}

// str coerces a loosely-typed JSON value to a string.
func str(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// boolean coerces a loosely-typed JSON value to a bool. The pipeline has
// emitted true, "true", "ja", and 1 for the same flag.
func boolean(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "ja" || t == "yes" || t == "1"
	case float64:
		return t != 0
	}
	return false
}

// stringList coerces a loosely-typed JSON value to a string slice. A bare
// string becomes a one-element list; non-string elements are stringified.
func stringList(v interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := str(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}
