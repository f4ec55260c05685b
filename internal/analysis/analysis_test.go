package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dagdraft/internal/types"
)

func TestParse_Canonical(t *testing.T) {
	raw := []byte(`{
		"facts": {
			"known": ["Overeenkomst gesloten op 1 maart 2024", "Factuur onbetaald"],
			"disputed": ["Hoogte van de schade"],
			"unclear": []
		},
		"legal_basis": [
			{"article": "6:74 BW", "title": "Tekortkoming", "explanation": "Niet-nakoming van de betalingsverplichting."}
		],
		"simplified_procedure": true,
		"parties": {
			"claimant_name": "Jansen B.V.",
			"claimant_locality": "Utrecht",
			"defendant_name": "De Vries",
			"defendant_locality": "Amersfoort"
		}
	}`)

	a, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := &Analysis{
		FactsKnown:    []string{"Overeenkomst gesloten op 1 maart 2024", "Factuur onbetaald"},
		FactsDisputed: []string{"Hoogte van de schade"},
		LegalBasis: []LegalBasisEntry{
			{Article: "6:74 BW", Title: "Tekortkoming", Explanation: "Niet-nakoming van de betalingsverplichting."},
		},
		SimplifiedProcedure: true,
		Parties: Parties{
			ClaimantName:      "Jansen B.V.",
			ClaimantLocality:  "Utrecht",
			DefendantName:     "De Vries",
			DefendantLocality: "Amersfoort",
		},
	}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FlatFactsAndLooseTypes(t *testing.T) {
	raw := []byte(`{
		"known_facts": "Enkele platte tekst",
		"disputed_facts": ["A", 42],
		"simplified_procedure": "ja"
	}`)
	a, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(a.FactsKnown) != 1 || a.FactsKnown[0] != "Enkele platte tekst" {
		t.Errorf("flat known facts not coerced: %v", a.FactsKnown)
	}
	if len(a.FactsDisputed) != 2 || a.FactsDisputed[1] != "42" {
		t.Errorf("loose disputed facts not coerced: %v", a.FactsDisputed)
	}
	if !a.SimplifiedProcedure {
		t.Error(`"ja" should count as true`)
	}
}

func TestParse_EmptyAndInvalid(t *testing.T) {
	if a, err := Parse(nil); err != nil || a == nil {
		t.Fatal("nil blob must yield empty analysis")
	}
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("invalid JSON must error")
	}
}

func TestResolveParties_Precedence(t *testing.T) {
	a := &Analysis{Parties: Parties{
		ClaimantName:      "Uit analyse",
		ClaimantLocality:  "Utrecht",
		DefendantName:     "De Vries",
		DefendantLocality: "Amersfoort",
	}}
	c := &types.Case{ClaimantName: "Override B.V."}

	r := ResolveParties(c, a)
	if r.ClaimantName != "Override B.V." {
		t.Errorf("case override must win, got %q", r.ClaimantName)
	}
	if r.ClaimantLocality != "Utrecht" {
		t.Errorf("analysis fallback expected, got %q", r.ClaimantLocality)
	}
}

func TestMissingLocalityFields(t *testing.T) {
	// Only the defendant's locality set: exactly the claimant field missing.
	r := ResolvedParties{DefendantLocality: "Amersfoort"}
	got := r.MissingLocalityFields()
	if len(got) != 1 || got[0] != "woonplaats eiser" {
		t.Fatalf(`want ["woonplaats eiser"], got %v`, got)
	}

	r = ResolvedParties{}
	if got := r.MissingLocalityFields(); len(got) != 2 {
		t.Fatalf("want both fields missing, got %v", got)
	}

	r = ResolvedParties{ClaimantLocality: "Utrecht", DefendantLocality: "Amersfoort"}
	if got := r.MissingLocalityFields(); got != nil {
		t.Fatalf("want none missing, got %v", got)
	}
}
