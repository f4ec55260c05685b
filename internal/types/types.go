// Package types provides shared type definitions used across dagdraft packages.
// This package exists to break import cycles between engine, store, generation,
// and normalize. Types in this package should be foundational data structures
// with no complex dependencies.
package types

import (
	"time"
)

// =============================================================================
// STATUS ENUMS
// =============================================================================

// SectionStatus is the lifecycle state of one summons section.
type SectionStatus string

const (
	// StatusPending means the section has never been generated.
	StatusPending SectionStatus = "pending"
	// StatusGenerating marks an in-flight generation attempt. It is a
	// transient, in-memory status: the store only persists the four
	// durable statuses, so a crash mid-call never strands a row.
	StatusGenerating SectionStatus = "generating"
	// StatusDraft means generated text is awaiting human review.
	StatusDraft SectionStatus = "draft"
	// StatusApproved is terminal: the text takes part in assembly.
	StatusApproved SectionStatus = "approved"
	// StatusNeedsChanges means a reviewer rejected the draft with feedback.
	StatusNeedsChanges SectionStatus = "needs_changes"
)

// Durable reports whether this status may be written to the store.
func (s SectionStatus) Durable() bool {
	switch s {
	case StatusPending, StatusDraft, StatusApproved, StatusNeedsChanges:
		return true
	}
	return false
}

// SummonsStatus is the lifecycle state of a summons document.
type SummonsStatus string

const (
	SummonsInProgress SummonsStatus = "in_progress"
	SummonsReady      SummonsStatus = "ready"
)

// SectionKind classifies a section's content family. The kind drives the
// generation prompt, the normalizer's composition rules, and two special
// behaviors: the jurisdiction locality guard and the defenses feedback
// capability override.
type SectionKind string

const (
	KindJurisdiction SectionKind = "jurisdiction"
	KindFacts        SectionKind = "facts"
	KindLegalGrounds SectionKind = "legal_grounds"
	KindClaims       SectionKind = "claims"
	KindDefenses     SectionKind = "defenses"
	// KindNotice is the fixed aanzegging section: created directly in
	// approved status with fixed text, never generated.
	KindNotice  SectionKind = "notice"
	KindGeneric SectionKind = "generic"
)

// Fixed reports whether sections of this kind skip generation entirely.
func (k SectionKind) Fixed() bool { return k == KindNotice }

// =============================================================================
// CORE RECORDS
// =============================================================================

// Case is the litigation dossier a summons belongs to. The engine only
// reads cases; creating and analyzing them is another subsystem's job.
type Case struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`

	// Per-case party overrides. Empty means "fall back to the analysis".
	ClaimantName      string `json:"claimant_name,omitempty"`
	ClaimantLocality  string `json:"claimant_locality,omitempty"`
	DefendantName     string `json:"defendant_name,omitempty"`
	DefendantLocality string `json:"defendant_locality,omitempty"`

	// AnalysisStatus is none, running, or completed. Generation requires
	// completed.
	AnalysisStatus string `json:"analysis_status"`
	// AnalysisJSON is the raw analysis blob, parsed on demand by the
	// analysis package.
	AnalysisJSON []byte `json:"analysis_json,omitempty"`
}

// AnalysisCompleted reports whether the case's prior analysis has finished.
func (c *Case) AnalysisCompleted() bool { return c.AnalysisStatus == "completed" }

// Summons is one multi-section court filing under assembly.
type Summons struct {
	ID              string            `json:"id"`
	CaseID          string            `json:"case_id"`
	TemplateID      string            `json:"template_id"`
	TemplateVersion string            `json:"template_version"`
	UserFields      map[string]string `json:"user_fields,omitempty"`
	Status          SummonsStatus     `json:"status"`
	AssembledText   string            `json:"assembled_text,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Section is one independently drafted and reviewed subdivision of a
// summons. All sections of a summons are created together from one template
// snapshot; stepOrder and sectionKey are immutable afterwards.
type Section struct {
	ID          string `json:"id"`
	SummonsID   string `json:"summons_id"`
	SectionKey  string `json:"section_key"`
	SectionName string `json:"section_name"`
	// StepOrder fixes this section's position. Sections with a lower
	// stepOrder and approved status form this section's grounding context.
	StepOrder int         `json:"step_order"`
	Kind      SectionKind `json:"kind"`

	GenerationCapabilityRef string `json:"generation_capability_ref"`
	FeedbackCapabilityRef   string `json:"feedback_capability_ref,omitempty"`

	Status          SectionStatus `json:"status"`
	GeneratedText   string        `json:"generated_text,omitempty"`
	UserFeedback    string        `json:"user_feedback,omitempty"`
	GenerationCount int           `json:"generation_count"`
	Warnings        []string      `json:"warnings,omitempty"`
}

// Clone returns a deep copy so callers can hand out sections without
// sharing the warnings slice.
func (s *Section) Clone() *Section {
	cp := *s
	if s.Warnings != nil {
		cp.Warnings = append([]string(nil), s.Warnings...)
	}
	return &cp
}
