// Package generation submits grounding payloads to the external
// text-generation capability a section references and hands the
// loosely-structured result back for normalization.
package generation

import (
	"context"

	"dagdraft/internal/analysis"
	"dagdraft/internal/types"
)

// Client is the minimal interface the invoker uses to call an LLM backend.
type Client interface {
	// CompleteWithSystem sends one system + user prompt pair and returns
	// the raw model output.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Model returns the configured model name, for logs.
	Model() string
}

// PriorSection is one earlier-ordered, approved section exposed to the
// prompt as grounding context.
type PriorSection struct {
	Key       string
	Name      string
	StepOrder int
	Text      string
}

// Request is the grounding payload the context assembler produces for one
// generation attempt. It is a pure value: the invoker never reads the store.
type Request struct {
	SectionKey  string
	SectionName string
	Kind        types.SectionKind

	CaseTitle string
	Parties   analysis.ResolvedParties
	Analysis  *analysis.Analysis

	UserFields map[string]string

	// PriorSections holds every section with a lower step order and
	// approved status, in step order. PriorBlock is the same content as
	// one concatenated human-readable block for prompt consumption.
	PriorSections []PriorSection
	PriorBlock    string

	// UserFeedback is the caller-supplied revision instruction; empty on a
	// first attempt without feedback.
	UserFeedback string

	// PreviousText and Regeneration are set when the section already has
	// generated text being revised.
	PreviousText string
	Regeneration bool
}
