package generation

import (
	"fmt"
	"sort"
	"strings"

	"dagdraft/internal/types"
)

// systemPreamble is shared by every capability: the model drafts one section
// of a Dutch summons and answers with a single JSON object.
const systemPreamble = `Je bent een juridisch opsteller die één onderdeel van een Nederlandse dagvaarding schrijft.
Schrijf formeel, zakelijk Nederlands. Beroep je uitsluitend op de aangeleverde gegevens; verzin geen feiten.
Antwoord met precies één JSON-object zonder verdere tekst.`

// responseShapes describes, per content kind, the JSON fields the capability
// is expected to fill. The normalizer tolerates partial answers; these
// instructions exist to make the happy path structured.
var responseShapes = map[types.SectionKind]string{
	types.KindClaims: `Velden: "primary_claims", "subsidiary_claims", "further_subsidiary_claims" (lijsten van {"number","description"}),
"statutory_interest" (alinea of null), "extrajudicial_costs" {"applicable","paragraph"},
"court_costs" (alinea), "penalty_payment" {"applicable","paragraph"},
"provisional_enforcement" {"applicable","paragraph"}.`,
	types.KindDefenses: `Velden: "introduction" (optioneel), "defenses" (lijst van {"claim","rebuttal"}), "conclusion" (optioneel).`,
	types.KindLegalGrounds: `Velden: "introduction" (optioneel), "applicable_laws" (lijst van {"article","title","explanation"}),
"reasoning" (optioneel), "conclusion" (optioneel).`,
	types.KindFacts: `Velden: "introduction" (optioneel), "narrative" (optioneel), "known_facts" (lijst),
"disputed_facts" (lijst, optioneel), "unclear_facts" (lijst, optioneel).`,
	types.KindJurisdiction: `Velden: "competence", "relative_competence", "conclusion", "forum_selection" (optioneel).`,
}

// BuildSystemPrompt renders the system prompt for a capability reference.
func BuildSystemPrompt(capabilityRef string, kind types.SectionKind) string {
	var sb strings.Builder
	sb.WriteString(systemPreamble)
	sb.WriteString("\n\nCapaciteit: ")
	sb.WriteString(capabilityRef)
	if shape, ok := responseShapes[kind]; ok {
		sb.WriteString("\n")
		sb.WriteString(shape)
	} else {
		sb.WriteString("\nVelden: \"paragraph\" of \"text\" met de volledige tekst van het onderdeel.")
	}
	return sb.String()
}

// BuildUserPrompt renders the grounding payload into the user prompt.
func BuildUserPrompt(req *Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Onderdeel: %s (%s)\n", req.SectionName, req.SectionKey)
	if req.CaseTitle != "" {
		fmt.Fprintf(&sb, "Zaak: %s\n", req.CaseTitle)
	}

	p := req.Parties
	if p.ClaimantName != "" || p.DefendantName != "" {
		sb.WriteString("\nPartijen:\n")
		fmt.Fprintf(&sb, "- Eiser: %s", valueOr(p.ClaimantName, "onbekend"))
		if p.ClaimantLocality != "" {
			fmt.Fprintf(&sb, ", woonplaats %s", p.ClaimantLocality)
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "- Gedaagde: %s", valueOr(p.DefendantName, "onbekend"))
		if p.DefendantLocality != "" {
			fmt.Fprintf(&sb, ", woonplaats %s", p.DefendantLocality)
		}
		sb.WriteString("\n")
	}

	if a := req.Analysis; a != nil {
		if len(a.FactsKnown) > 0 {
			sb.WriteString("\nVaststaande feiten:\n")
			for _, f := range a.FactsKnown {
				fmt.Fprintf(&sb, "- %s\n", f)
			}
		}
		if len(a.FactsDisputed) > 0 {
			sb.WriteString("\nBetwiste feiten:\n")
			for _, f := range a.FactsDisputed {
				fmt.Fprintf(&sb, "- %s\n", f)
			}
		}
		if len(a.FactsUnclear) > 0 {
			sb.WriteString("\nOnduidelijke punten:\n")
			for _, f := range a.FactsUnclear {
				fmt.Fprintf(&sb, "- %s\n", f)
			}
		}
		if len(a.LegalBasis) > 0 {
			sb.WriteString("\nJuridische grondslagen uit de analyse:\n")
			for _, b := range a.LegalBasis {
				fmt.Fprintf(&sb, "- %s (%s): %s\n", b.Article, b.Title, b.Explanation)
			}
		}
		if a.SimplifiedProcedure {
			sb.WriteString("\nDe zaak komt in aanmerking voor de kantonprocedure.\n")
		}
	}

	if len(req.UserFields) > 0 {
		sb.WriteString("\nDoor de gebruiker aangeleverde gegevens:\n")
		keys := make([]string, 0, len(req.UserFields))
		for k := range req.UserFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "- %s: %s\n", k, req.UserFields[k])
		}
	}

	if req.PriorBlock != "" {
		sb.WriteString("\nEerder goedgekeurde onderdelen van deze dagvaarding:\n")
		sb.WriteString(req.PriorBlock)
		sb.WriteString("\n")
	}

	if req.Regeneration {
		sb.WriteString("\nDit is een herziening. De vorige versie luidde:\n")
		sb.WriteString(req.PreviousText)
		sb.WriteString("\n")
	}
	if req.UserFeedback != "" {
		sb.WriteString("\nVerwerk de volgende opmerkingen van de beoordelaar:\n")
		sb.WriteString(req.UserFeedback)
		sb.WriteString("\n")
	}

	sb.WriteString("\nSchrijf nu dit onderdeel en antwoord als JSON.")
	return sb.String()
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// FormatPriorBlock renders prior approved sections as one human-readable
// block. Exposed so the context assembler and tests share one format.
func FormatPriorBlock(priors []PriorSection) string {
	if len(priors) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range priors {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "=== %d. %s ===\n%s\n", p.StepOrder, p.Name, p.Text)
	}
	return sb.String()
}
