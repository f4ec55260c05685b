package engine

import (
	"context"
	"strings"

	"dagdraft/internal/logging"
	"dagdraft/internal/normalize"
	"dagdraft/internal/types"
)

// Generate runs one generation attempt for a section and persists the
// result as a draft. The section is "generating" only in memory while the
// call is in flight; on any failure the stored row is untouched, so the
// caller can simply retry.
//
// Fields passed here apply to this attempt only and win over the fields
// stored on the summons. When a needs_changes section is regenerated
// without explicit feedback, the stored reviewer feedback drives the
// attempt.
func (e *Engine) Generate(ctx context.Context, summonsID, sectionKey string,
	userFields map[string]string, userFeedback string) (*types.Section, error) {

	lock := e.sectionLock(summonsID, sectionKey)
	lock.Lock()
	defer lock.Unlock()

	sum, err := e.store.GetSummons(summonsID)
	if err != nil {
		return nil, err
	}
	caseRec, err := e.store.GetCase(sum.CaseID)
	if err != nil {
		return nil, err
	}
	if !caseRec.AnalysisCompleted() {
		return nil, types.NewValidation("zaakanalyse is nog niet afgerond voor zaak %s", caseRec.ID)
	}

	sec, err := e.store.GetSection(summonsID, sectionKey)
	if err != nil {
		return nil, err
	}
	if sec.Kind.Fixed() {
		return nil, types.NewValidation("sectie %s heeft vaste tekst en wordt niet gegenereerd", sectionKey)
	}
	// Approved is terminal: later sections build their context on it, so
	// it can never be demoted back to draft.
	if sec.Status == types.StatusApproved {
		return nil, types.NewValidation("sectie %s is goedgekeurd en wordt niet opnieuw gegenereerd", sectionKey)
	}

	all, err := e.store.ListSections(summonsID)
	if err != nil {
		return nil, err
	}

	feedback := userFeedback
	if feedback == "" && sec.Status == types.StatusNeedsChanges {
		feedback = sec.UserFeedback
	}

	req, err := assembleContext(caseRec, sec, all, mergeFields(sum.UserFields, userFields), feedback)
	if err != nil {
		return nil, err
	}

	expectedCount := sec.GenerationCount
	sec.Status = types.StatusGenerating
	logging.Engine("Generating section %s/%s (attempt %d, %d prior sections)",
		summonsID, sectionKey, expectedCount+1, len(req.PriorSections))

	envelope, err := e.invoker.Invoke(ctx, sec, req)
	if err != nil {
		// Nothing was persisted; the row still shows its pre-attempt
		// status.
		return nil, err
	}

	res := normalize.Normalize(envelope)
	sec.Status = types.StatusDraft
	sec.GeneratedText = res.Text
	sec.Warnings = res.Warnings
	sec.UserFeedback = feedback

	if err := e.store.UpdateSectionDraft(sec, expectedCount); err != nil {
		return nil, err
	}
	logging.Engine("Section %s/%s drafted via rule %s (generation %d)",
		summonsID, sectionKey, res.Rule, sec.GenerationCount)
	return sec.Clone(), nil
}

// Approve marks a reviewed section as final. Approving an already approved
// section is a no-op; approving a section that was never generated is an
// error. Existing reviewer feedback is kept for the audit trail.
func (e *Engine) Approve(summonsID, sectionKey string) (*types.Section, error) {
	sec, err := e.store.GetSection(summonsID, sectionKey)
	if err != nil {
		return nil, err
	}
	switch sec.Status {
	case types.StatusApproved:
		return sec, nil
	case types.StatusDraft, types.StatusNeedsChanges:
	default:
		return nil, types.NewValidation("sectie %s heeft nog geen tekst om goed te keuren (status %s)",
			sectionKey, sec.Status)
	}
	updated, err := e.store.UpdateSectionReview(summonsID, sectionKey, types.StatusApproved, sec.UserFeedback)
	if err != nil {
		return nil, err
	}
	logging.Engine("Section %s/%s approved", summonsID, sectionKey)
	return updated, nil
}

// Reject sends a section back for regeneration with mandatory reviewer
// feedback, stored verbatim.
func (e *Engine) Reject(summonsID, sectionKey, feedback string) (*types.Section, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, types.NewValidation("afkeuren vereist een toelichting voor de volgende poging")
	}
	sec, err := e.store.GetSection(summonsID, sectionKey)
	if err != nil {
		return nil, err
	}
	switch sec.Status {
	case types.StatusDraft, types.StatusApproved, types.StatusNeedsChanges:
	default:
		return nil, types.NewValidation("sectie %s heeft nog geen tekst om af te keuren (status %s)",
			sectionKey, sec.Status)
	}
	updated, err := e.store.UpdateSectionReview(summonsID, sectionKey, types.StatusNeedsChanges, feedback)
	if err != nil {
		return nil, err
	}
	logging.Engine("Section %s/%s rejected", summonsID, sectionKey)
	return updated, nil
}

// Sections returns the current section rows of a summons in step order.
func (e *Engine) Sections(summonsID string) ([]*types.Section, error) {
	if _, err := e.store.GetSummons(summonsID); err != nil {
		return nil, err
	}
	return e.store.ListSections(summonsID)
}

// mergeFields overlays per-call fields on top of the summons' stored
// fields. The call's values win on conflict.
func mergeFields(stored, override map[string]string) map[string]string {
	merged := make(map[string]string, len(stored)+len(override))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
