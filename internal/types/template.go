package types

import (
	"fmt"
	"sort"
)

// SectionDefinition is one entry of a template's ordered section list.
type SectionDefinition struct {
	Key  string      `yaml:"key" json:"key"`
	Name string      `yaml:"name" json:"name"`
	// StepOrder must be strictly increasing across a template's sections.
	StepOrder int         `yaml:"step_order" json:"step_order"`
	Kind      SectionKind `yaml:"kind" json:"kind"`

	GenerationCapabilityRef string `yaml:"generation_capability" json:"generation_capability"`
	FeedbackCapabilityRef   string `yaml:"feedback_capability,omitempty" json:"feedback_capability,omitempty"`

	// FixedText is required for fixed kinds (the aanzegging); such sections
	// are created directly approved carrying this text.
	FixedText string `yaml:"fixed_text,omitempty" json:"fixed_text,omitempty"`
}

// Template is an immutable registry snapshot of one filing template.
type Template struct {
	ID      string `yaml:"id" json:"id"`
	Version string `yaml:"version" json:"version"`
	Name    string `yaml:"name" json:"name"`

	// Sections in stepOrder. Validate enforces ordering and key uniqueness.
	Sections []SectionDefinition `yaml:"sections" json:"sections"`

	// Body is the raw document text carrying two placeholder families:
	// user-field placeholders like [naam eiser] and section placeholders
	// like {{FEITEN}} keyed by section key.
	Body string `yaml:"body" json:"body"`
}

// Validate checks the template invariants: non-empty id and body, at least
// one section, unique section keys, strictly increasing step order, a
// generation capability on every non-fixed section, and fixed text on every
// fixed one.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template: missing id")
	}
	if len(t.Sections) == 0 {
		return fmt.Errorf("template %s: no sections", t.ID)
	}
	if t.Body == "" {
		return fmt.Errorf("template %s: empty body", t.ID)
	}
	seen := make(map[string]bool, len(t.Sections))
	prevOrder := 0
	for i, def := range t.Sections {
		if def.Key == "" {
			return fmt.Errorf("template %s: section %d has no key", t.ID, i)
		}
		if seen[def.Key] {
			return fmt.Errorf("template %s: duplicate section key %q", t.ID, def.Key)
		}
		seen[def.Key] = true
		if i > 0 && def.StepOrder <= prevOrder {
			return fmt.Errorf("template %s: section %q step_order %d not strictly increasing (previous %d)",
				t.ID, def.Key, def.StepOrder, prevOrder)
		}
		prevOrder = def.StepOrder
		if def.Kind.Fixed() {
			if def.FixedText == "" {
				return fmt.Errorf("template %s: fixed section %q has no fixed_text", t.ID, def.Key)
			}
			continue
		}
		if def.GenerationCapabilityRef == "" {
			return fmt.Errorf("template %s: section %q has no generation capability", t.ID, def.Key)
		}
	}
	return nil
}

// SortedSections returns the definitions ordered by step order. Templates
// are validated to already be in order; this is a cheap guarantee for
// callers that assembled one by hand.
func (t *Template) SortedSections() []SectionDefinition {
	out := append([]SectionDefinition(nil), t.Sections...)
	sort.Slice(out, func(i, j int) bool { return out[i].StepOrder < out[j].StepOrder })
	return out
}
