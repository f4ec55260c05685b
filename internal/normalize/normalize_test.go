package normalize

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

// One fixture per rule family; each must fire its own rule and no other.
func TestRuleSelection_OneRulePerFixture(t *testing.T) {
	fixtures := []struct {
		rule string
		raw  string
	}{
		{"claims", `{
			"primary_claims": [{"number": 1, "description": "betaling van de hoofdsom van EUR 12.500"}],
			"court_costs": "met veroordeling van gedaagde in de proceskosten"
		}`},
		{"defenses", `{
			"defenses": [{"claim": "Gedaagde stelt te hebben betaald.", "rebuttal": "Betaling is niet gebleken."}]
		}`},
		{"legal_grounds", `{
			"applicable_laws": [{"article": "6:74 BW", "title": "Tekortkoming", "explanation": "Tekortkoming verplicht tot schadevergoeding."}]
		}`},
		{"facts", `{
			"known_facts": ["Partijen sloten een overeenkomst.", "De factuur bleef onbetaald."]
		}`},
		{"jurisdiction", `{
			"competence": "De kantonrechter is bevoegd.",
			"relative_competence": "De rechtbank Midden-Nederland is relatief bevoegd.",
			"conclusion": "Deze rechtbank is bevoegd."
		}`},
	}

	for _, f := range fixtures {
		t.Run(f.rule, func(t *testing.T) {
			res := Normalize(decode(t, f.raw))
			if res.Rule != f.rule {
				t.Fatalf("want rule %s, got %s (text %q)", f.rule, res.Rule, res.Text)
			}
			if res.Text == "" {
				t.Fatal("composed text empty")
			}
			if len(res.Warnings) != 0 {
				t.Errorf("structured rule must not add warnings: %v", res.Warnings)
			}
		})
	}
}

func TestClaims_OrderAndFlaggedParagraphs(t *testing.T) {
	res := Normalize(decode(t, `{
		"further_subsidiary_claims": [{"number": 3, "description": "een verklaring voor recht"}],
		"primary_claims": [{"number": 1, "description": "betaling van de hoofdsom"}],
		"subsidiary_claims": [{"number": 2, "description": "een in goede justitie te bepalen bedrag"}],
		"statutory_interest": "te vermeerderen met de wettelijke rente",
		"extrajudicial_costs": {"applicable": false, "paragraph": "vergoeding van buitengerechtelijke kosten"},
		"court_costs": "met veroordeling in de proceskosten",
		"penalty_payment": {"applicable": true, "paragraph": "op straffe van een dwangsom van EUR 500 per dag"},
		"provisional_enforcement": {"applicable": true, "paragraph": "uitvoerbaar bij voorraad"}
	}`))

	text := res.Text
	// Primary before subsidiary before further-subsidiary, regardless of
	// JSON key order.
	iPrim := strings.Index(text, "Primair")
	iSub := strings.Index(text, "Subsidiair")
	iMeer := strings.Index(text, "Meer subsidiair")
	if iPrim < 0 || iSub < 0 || iMeer < 0 || !(iPrim < iSub && iSub < iMeer) {
		t.Errorf("claim group order wrong:\n%s", text)
	}
	if !strings.Contains(text, "1. betaling van de hoofdsom") {
		t.Errorf("claim numbering missing:\n%s", text)
	}
	if strings.Contains(text, "buitengerechtelijke kosten") {
		t.Error("non-applicable extrajudicial costs must be omitted")
	}
	for _, want := range []string{"wettelijke rente", "proceskosten", "dwangsom", "uitvoerbaar bij voorraad"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	// Interest precedes court costs precedes penalty precedes enforcement.
	if !(strings.Index(text, "rente") < strings.Index(text, "proceskosten") &&
		strings.Index(text, "proceskosten") < strings.Index(text, "dwangsom")) {
		t.Errorf("appended paragraph order wrong:\n%s", text)
	}
}

func TestDefenses_PairsAndOptionalParts(t *testing.T) {
	res := Normalize(decode(t, `{
		"introduction": "Gedaagde voerde de volgende verweren.",
		"defenses": [
			{"claim": "Stelling een.", "rebuttal": "Weerlegging een."},
			{"claim": "Stelling twee.", "rebuttal": "Weerlegging twee."}
		],
		"conclusion": "De verweren falen."
	}`))
	if res.Rule != "defenses" {
		t.Fatalf("rule: %s", res.Rule)
	}
	text := res.Text
	if !strings.HasPrefix(text, "Gedaagde voerde") || !strings.HasSuffix(text, "De verweren falen.") {
		t.Errorf("introduction/conclusion placement wrong:\n%s", text)
	}
	if !strings.Contains(text, "Stelling een.\nWeerlegging een.") {
		t.Errorf("claim/rebuttal not paired:\n%s", text)
	}
}

func TestFacts_NumberedAndLabeledBlocks(t *testing.T) {
	res := Normalize(decode(t, `{
		"introduction": "De volgende feiten staan vast.",
		"known_facts": ["Feit a", "Feit b"],
		"disputed_facts": ["Omstreden c"],
		"unclear_facts": ["Onduidelijk d"]
	}`))
	text := res.Text
	if !strings.Contains(text, "1. Feit a") || !strings.Contains(text, "2. Feit b") {
		t.Errorf("known facts not numbered:\n%s", text)
	}
	if !strings.Contains(text, "Betwiste feiten:\n- Omstreden c") {
		t.Errorf("disputed block missing:\n%s", text)
	}
	if !strings.Contains(text, "Onduidelijke punten:\n- Onduidelijk d") {
		t.Errorf("unclear block missing:\n%s", text)
	}
}

func TestJurisdiction_FallbackChainAndForumSelection(t *testing.T) {
	// Reasoning-only answer.
	res := Normalize(decode(t, `{"reasoning": "De rechtbank ontleent bevoegdheid aan de woonplaats van gedaagde."}`))
	if res.Rule != "jurisdiction" || !strings.Contains(res.Text, "woonplaats van gedaagde") {
		t.Errorf("reasoning fallback failed: %+v", res)
	}

	// Bare paragraph answer with forum selection appended.
	res = Normalize(decode(t, `{"paragraph": "Enkelvoudige motivering.", "forum_selection": "Partijen kwamen de rechtbank Amsterdam overeen."}`))
	if !strings.Contains(res.Text, "Enkelvoudige motivering.") ||
		!strings.HasSuffix(res.Text, "Partijen kwamen de rechtbank Amsterdam overeen.") {
		t.Errorf("forum selection not appended:\n%s", res.Text)
	}
}

func TestUnwrap_WrapperFields(t *testing.T) {
	res := Normalize(decode(t, `{"result": {"known_facts": ["Feit x"]}}`))
	if res.Rule != "facts" {
		t.Fatalf("wrapped result not unwrapped, rule = %s", res.Rule)
	}

	res = Normalize(decode(t, `{"response": {"reasoning": "Motivering."}}`))
	if res.Rule != "jurisdiction" {
		t.Fatalf("response wrapper not tried, rule = %s", res.Rule)
	}
}

func TestWarnings_ExtractedFromEnvelopeAndResult(t *testing.T) {
	res := Normalize(decode(t, `{
		"warnings": ["analyse bevat geen wederpartijgegevens"],
		"result": {"reasoning": "Motivering.", "warnings": ["beperkte grondslag"]}
	}`))
	if len(res.Warnings) != 2 {
		t.Fatalf("want 2 warnings, got %v", res.Warnings)
	}
}

func TestUnstructuredFallback(t *testing.T) {
	res := Normalize(decode(t, `{
		"alpha": "Deze alinea is ruim lang genoeg om als lopende tekst te worden aangemerkt in de terugvaloptie.",
		"flag": "kort",
		"beta": "Ook deze tweede alinea overschrijdt de minimale lengte voor proza en hoort in de uitvoer."
	}`))
	if res.Rule != "unstructured" {
		t.Fatalf("rule: %s", res.Rule)
	}
	// Key order: alpha before beta; the short flag is excluded.
	if !(strings.Index(res.Text, "Deze alinea") < strings.Index(res.Text, "Ook deze tweede")) {
		t.Errorf("key order not deterministic:\n%s", res.Text)
	}
	if strings.Contains(res.Text, "kort") {
		t.Error("short scalar flag leaked into text")
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != warnUnstructured {
		t.Errorf("fallback warning missing: %v", res.Warnings)
	}
}

func TestDiagnosticFallback(t *testing.T) {
	res := Normalize(decode(t, `{"warnings": ["capaciteit gaf leeg resultaat"], "count": 3}`))
	if res.Rule != "diagnostic" {
		t.Fatalf("rule: %s", res.Rule)
	}
	if !strings.Contains(res.Text, "capaciteit gaf leeg resultaat") {
		t.Errorf("diagnostic must list reported warnings:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "Mogelijke oorzaken") {
		t.Errorf("diagnostic must name likely causes:\n%s", res.Text)
	}
	if strings.Contains(res.Text, "count") {
		t.Error("raw structured data must never surface as text")
	}

	// Nil envelope still yields displayable text.
	res = Normalize(nil)
	if res.Text == "" || res.Rule != "diagnostic" {
		t.Errorf("nil envelope must degrade to diagnostic: %+v", res)
	}
}

func TestMatchedButEmptyFallsThrough(t *testing.T) {
	// Distinguishing field present, nothing renderable in it, but a long
	// prose field elsewhere: the unstructured fallback must save it.
	res := Normalize(decode(t, `{
		"defenses": [],
		"note": "Er is wel degelijk lopende tekst aanwezig die lang genoeg is om te worden meegenomen."
	}`))
	if res.Rule != "unstructured" {
		t.Fatalf("want unstructured fallback, got %s (%q)", res.Rule, res.Text)
	}
}
