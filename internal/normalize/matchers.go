package normalize

import (
	"fmt"
	"strings"
)

// A matcher is one composition rule. Matches inspects the result object's
// distinguishing fields; Compose renders the canonical text. The rules are
// tried in a fixed order and exactly one fires, so fallback precedence is
// explicit and each rule is independently testable.
type matcher struct {
	name    string
	matches func(m map[string]interface{}) bool
	compose func(m map[string]interface{}) string
}

// matchers in precedence order: claims, defenses, legal grounds, facts,
// jurisdiction/generic. The unstructured and diagnostic fallbacks live in
// Normalize itself.
var matchers = []matcher{
	{name: "claims", matches: matchesClaims, compose: composeClaims},
	{name: "defenses", matches: matchesDefenses, compose: composeDefenses},
	{name: "legal_grounds", matches: matchesLegalGrounds, compose: composeLegalGrounds},
	{name: "facts", matches: matchesFacts, compose: composeFacts},
	{name: "jurisdiction", matches: matchesJurisdiction, compose: composeJurisdiction},
}

// join concatenates non-empty paragraphs with blank lines.
func join(paragraphs []string) string {
	var kept []string
	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

// =============================================================================
// RULE 1: CLAIMS
// =============================================================================

var claimGroups = []struct {
	key   string
	label string
}{
	{"primary_claims", "Primair"},
	{"subsidiary_claims", "Subsidiair"},
	{"further_subsidiary_claims", "Meer subsidiair"},
}

func matchesClaims(m map[string]interface{}) bool {
	for _, g := range claimGroups {
		if has(m, g.key) {
			return true
		}
	}
	return false
}

func composeClaims(m map[string]interface{}) string {
	var paragraphs []string

	for _, g := range claimGroups {
		entries := objList(m, g.key)
		if len(entries) == 0 {
			continue
		}
		var sb strings.Builder
		sb.WriteString(g.label)
		for _, e := range entries {
			num := field(e, "number")
			desc := field(e, "description")
			if desc == "" {
				continue
			}
			if num != "" {
				fmt.Fprintf(&sb, "\n%s. %s", num, desc)
			} else {
				fmt.Fprintf(&sb, "\n- %s", desc)
			}
		}
		paragraphs = append(paragraphs, sb.String())
	}

	if interest := field(m, "statutory_interest"); interest != "" {
		paragraphs = append(paragraphs, interest)
	}
	if ok, p := flagged(m["extrajudicial_costs"]); ok && p != "" {
		paragraphs = append(paragraphs, p)
	}
	if costs := field(m, "court_costs"); costs != "" {
		paragraphs = append(paragraphs, costs)
	}
	if ok, p := flagged(m["penalty_payment"]); ok && p != "" {
		paragraphs = append(paragraphs, p)
	}
	if ok, p := flagged(m["provisional_enforcement"]); ok && p != "" {
		paragraphs = append(paragraphs, p)
	}

	return join(paragraphs)
}

// =============================================================================
// RULE 2: DEFENSES
// =============================================================================

func matchesDefenses(m map[string]interface{}) bool {
	return has(m, "defenses")
}

func composeDefenses(m map[string]interface{}) string {
	paragraphs := []string{field(m, "introduction")}

	for _, e := range objList(m, "defenses") {
		claim := field(e, "claim")
		rebuttal := field(e, "rebuttal")
		switch {
		case claim != "" && rebuttal != "":
			paragraphs = append(paragraphs, claim+"\n"+rebuttal)
		case claim != "":
			paragraphs = append(paragraphs, claim)
		case rebuttal != "":
			paragraphs = append(paragraphs, rebuttal)
		}
	}

	paragraphs = append(paragraphs, field(m, "conclusion"))
	return join(paragraphs)
}

// =============================================================================
// RULE 3: LEGAL GROUNDS
// =============================================================================

func matchesLegalGrounds(m map[string]interface{}) bool {
	return has(m, "applicable_laws")
}

func composeLegalGrounds(m map[string]interface{}) string {
	paragraphs := []string{field(m, "introduction")}

	for _, e := range objList(m, "applicable_laws") {
		article := field(e, "article")
		title := field(e, "title")
		explanation := field(e, "explanation")
		var sb strings.Builder
		if article != "" {
			fmt.Fprintf(&sb, "Artikel %s", strings.TrimPrefix(article, "artikel "))
			if title != "" {
				fmt.Fprintf(&sb, " (%s)", title)
			}
			if explanation != "" {
				sb.WriteString(": ")
				sb.WriteString(explanation)
			}
		} else if explanation != "" {
			sb.WriteString(explanation)
		}
		paragraphs = append(paragraphs, sb.String())
	}

	paragraphs = append(paragraphs, field(m, "reasoning"), field(m, "conclusion"))
	return join(paragraphs)
}

// =============================================================================
// RULE 4: FACTS
// =============================================================================

func matchesFacts(m map[string]interface{}) bool {
	return has(m, "known_facts")
}

func composeFacts(m map[string]interface{}) string {
	paragraphs := []string{field(m, "introduction"), field(m, "narrative")}

	if known := stringList(m["known_facts"]); len(known) > 0 {
		var sb strings.Builder
		for i, f := range known {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "%d. %s", i+1, f)
		}
		paragraphs = append(paragraphs, sb.String())
	}
	if disputed := stringList(m["disputed_facts"]); len(disputed) > 0 {
		paragraphs = append(paragraphs, "Betwiste feiten:\n"+bulleted(disputed))
	}
	if unclear := stringList(m["unclear_facts"]); len(unclear) > 0 {
		paragraphs = append(paragraphs, "Onduidelijke punten:\n"+bulleted(unclear))
	}

	return join(paragraphs)
}

func bulleted(items []string) string {
	var sb strings.Builder
	for i, it := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "- %s", it)
	}
	return sb.String()
}

// =============================================================================
// RULE 5: JURISDICTION / GENERIC
// =============================================================================

func matchesJurisdiction(m map[string]interface{}) bool {
	return has(m, "competence") || has(m, "reasoning") || has(m, "paragraph") || has(m, "text")
}

func composeJurisdiction(m map[string]interface{}) string {
	var paragraphs []string

	switch {
	case has(m, "competence"):
		paragraphs = append(paragraphs,
			field(m, "competence"),
			field(m, "relative_competence"),
			field(m, "conclusion"))
	case has(m, "reasoning"):
		paragraphs = append(paragraphs, field(m, "reasoning"))
	default:
		if p := field(m, "paragraph"); p != "" {
			paragraphs = append(paragraphs, p)
		} else {
			paragraphs = append(paragraphs, field(m, "text"))
		}
	}

	if forum := field(m, "forum_selection"); forum != "" {
		paragraphs = append(paragraphs, forum)
	}

	return join(paragraphs)
}
