// Package normalize converts the loosely-structured object a generation
// capability returns into one canonical block of prose. Rule selection is a
// first-match-wins pass over a fixed, ordered, mutually exclusive matcher
// list; when nothing structured matches, it degrades to concatenating prose
// fields, and as a last resort to a human-readable diagnostic. It never
// fails: the review loop must always have something to display.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"dagdraft/internal/logging"
)

// Dutch user-facing warnings for degraded composition; they ride along with
// the draft so the reviewer can judge whether to reject.
const (
	warnUnstructured = "inhoud samengesteld zonder herkende structuur; controleer de tekst zorgvuldig"
	warnDiagnostic   = "geen bruikbare tekst in het antwoord van de generatiecapaciteit"
)

// minProseLength is the threshold below which a string field is treated as
// a scalar flag rather than prose by the unstructured fallback.
const minProseLength = 40

// Result is the outcome of normalization.
type Result struct {
	// Text is the canonical prose block stored as the section's
	// generatedText. Never empty.
	Text string
	// Warnings surface degraded composition and any warnings the
	// capability itself reported.
	Warnings []string
	// Rule names the composition rule that fired, for logs and tests.
	Rule string
}

// Normalize turns a decoded response envelope into one canonical text block.
func Normalize(envelope map[string]interface{}) Result {
	if envelope == nil {
		envelope = map[string]interface{}{}
	}
	result := Unwrap(envelope)
	warnings := ExtractWarnings(envelope, result)

	for _, m := range matchers {
		if !m.matches(result) {
			continue
		}
		text := m.compose(result)
		if text == "" {
			// Distinguishing fields present but nothing renderable;
			// fall through to the generic fallbacks.
			logging.Normalize("Rule %s matched but produced no text", m.name)
			break
		}
		logging.Normalize("Composed via rule %s (%d bytes, %d warnings)", m.name, len(text), len(warnings))
		return Result{Text: text, Warnings: warnings, Rule: m.name}
	}

	if text := composeUnstructured(result); text != "" {
		logging.Normalize("Composed via unstructured fallback (%d bytes)", len(text))
		return Result{
			Text:     text,
			Warnings: append(warnings, warnUnstructured),
			Rule:     "unstructured",
		}
	}

	logging.Get(logging.CategoryNormalize).Warn("No renderable text in response; composing diagnostic")
	return Result{
		Text:     composeDiagnostic(warnings),
		Warnings: append(warnings, warnDiagnostic),
		Rule:     "diagnostic",
	}
}

// composeUnstructured concatenates every string-valued field whose length
// exceeds the prose threshold, in key order for determinism. Short scalar
// flags are skipped.
func composeUnstructured(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var paragraphs []string
	for _, k := range keys {
		s, ok := m[k].(string)
		if !ok {
			continue
		}
		if len([]rune(strings.TrimSpace(s))) <= minProseLength {
			continue
		}
		paragraphs = append(paragraphs, strings.TrimSpace(s))
	}
	return strings.Join(paragraphs, "\n\n")
}

// composeDiagnostic synthesizes a human-readable message when no rule
// produced text. Raw structured data is never surfaced as section text.
func composeDiagnostic(warnings []string) string {
	var sb strings.Builder
	sb.WriteString("Voor dit onderdeel kon geen tekst worden samengesteld uit het antwoord van de generatiecapaciteit.\n")

	if len(warnings) > 0 {
		sb.WriteString("\nGemelde waarschuwingen:\n")
		for _, w := range warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}

	sb.WriteString("\nMogelijke oorzaken:\n")
	sb.WriteString("- de zaakanalyse bevat onvoldoende gegevens voor dit onderdeel;\n")
	sb.WriteString("- de generatiecapaciteit van dit onderdeel is verkeerd geconfigureerd.\n")
	sb.WriteString("\nGenereer het onderdeel opnieuw, eventueel met aanvullende opmerkingen.")
	return sb.String()
}
