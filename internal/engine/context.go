package engine

import (
	"dagdraft/internal/analysis"
	"dagdraft/internal/generation"
	"dagdraft/internal/types"
)

// assembleContext builds the grounding payload for one generation attempt.
// It fails before any network call when required grounding data is absent,
// naming the exact missing fields.
//
// Party names and localities resolve through a fixed fallback precedence:
// explicit per-request field, then the per-case override, then the value
// embedded in the parsed analysis, then empty.
func assembleContext(caseRec *types.Case, target *types.Section, all []*types.Section,
	userFields map[string]string, userFeedback string) (*generation.Request, error) {

	parsed, err := analysis.ParseCase(caseRec)
	if err != nil {
		return nil, types.NewValidation("zaakanalyse is onleesbaar: %v", err)
	}

	parties := analysis.ResolveParties(caseRec, parsed)
	applyFieldOverrides(&parties, userFields)

	// Jurisdiction guard: both parties' localities must be resolvable
	// before the capability is contacted.
	if target.Kind == types.KindJurisdiction {
		if missing := parties.MissingLocalityFields(); len(missing) > 0 {
			return nil, types.NewMissingFields("ontbrekende locatiegegevens voor het bevoegdheidsonderdeel", missing)
		}
	}

	// Grounding context: exactly the sections ordered before the target
	// that are approved right now. The input slice is already in step
	// order.
	var priors []generation.PriorSection
	for _, sec := range all {
		if sec.StepOrder >= target.StepOrder || sec.Status != types.StatusApproved {
			continue
		}
		priors = append(priors, generation.PriorSection{
			Key:       sec.SectionKey,
			Name:      sec.SectionName,
			StepOrder: sec.StepOrder,
			Text:      sec.GeneratedText,
		})
	}

	req := &generation.Request{
		SectionKey:    target.SectionKey,
		SectionName:   target.SectionName,
		Kind:          target.Kind,
		CaseTitle:     caseRec.Title,
		Parties:       parties,
		Analysis:      parsed,
		UserFields:    userFields,
		PriorSections: priors,
		PriorBlock:    generation.FormatPriorBlock(priors),
		UserFeedback:  userFeedback,
	}
	if target.GeneratedText != "" {
		req.PreviousText = target.GeneratedText
		req.Regeneration = true
	}
	return req, nil
}

// applyFieldOverrides lets per-request fields win over case and analysis
// values. The field names match the template's user-field placeholders.
func applyFieldOverrides(p *analysis.ResolvedParties, fields map[string]string) {
	if v := fields["naam eiser"]; v != "" {
		p.ClaimantName = v
	}
	if v := fields[analysis.FieldClaimantLocality]; v != "" {
		p.ClaimantLocality = v
	}
	if v := fields["naam gedaagde"]; v != "" {
		p.DefendantName = v
	}
	if v := fields[analysis.FieldDefendantLocality]; v != "" {
		p.DefendantLocality = v
	}
}
