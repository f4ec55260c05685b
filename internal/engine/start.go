package engine

import (
	"time"

	"github.com/google/uuid"

	"dagdraft/internal/logging"
	"dagdraft/internal/types"
)

// StartSummons creates a summons and all its section rows from one template
// snapshot. Fixed sections (the aanzegging) are born approved with their
// fixed text and a generation count of one; everything else starts pending.
func (e *Engine) StartSummons(caseID, templateID string, userFields map[string]string) (*types.Summons, []*types.Section, error) {
	if _, err := e.store.GetCase(caseID); err != nil {
		return nil, nil, err
	}
	tpl, err := e.registry.Get(templateID)
	if err != nil {
		return nil, nil, err
	}

	sum := &types.Summons{
		ID:              uuid.NewString(),
		CaseID:          caseID,
		TemplateID:      tpl.ID,
		TemplateVersion: tpl.Version,
		UserFields:      userFields,
		Status:          types.SummonsInProgress,
		CreatedAt:       time.Now(),
	}

	sections := make([]*types.Section, 0, len(tpl.Sections))
	for _, def := range tpl.SortedSections() {
		sec := &types.Section{
			ID:                      uuid.NewString(),
			SummonsID:               sum.ID,
			SectionKey:              def.Key,
			SectionName:             def.Name,
			StepOrder:               def.StepOrder,
			Kind:                    def.Kind,
			GenerationCapabilityRef: def.GenerationCapabilityRef,
			FeedbackCapabilityRef:   def.FeedbackCapabilityRef,
			Status:                  types.StatusPending,
		}
		if def.Kind.Fixed() {
			sec.Status = types.StatusApproved
			sec.GeneratedText = def.FixedText
			sec.GenerationCount = 1
		}
		sections = append(sections, sec)
	}

	if err := e.store.CreateSummons(sum, sections); err != nil {
		return nil, nil, err
	}
	logging.Engine("Started summons %s for case %s from template %s v%s (%d sections)",
		sum.ID, caseID, tpl.ID, tpl.Version, len(sections))
	return sum, sections, nil
}
