// Package engine implements the section-by-section drafting engine: the
// per-section state machine, the grounding-context assembler, and the final
// document assembly step.
package engine

import (
	"context"
	"fmt"
	"sync"

	"dagdraft/internal/generation"
	"dagdraft/internal/template"
	"dagdraft/internal/types"
)

// Store is the persistence surface the engine drives. Implemented by
// store.LocalStore; the engine never assumes more than this.
type Store interface {
	GetCase(id string) (*types.Case, error)
	GetSummons(id string) (*types.Summons, error)
	CreateSummons(sum *types.Summons, sections []*types.Section) error
	ListSections(summonsID string) ([]*types.Section, error)
	GetSection(summonsID, sectionKey string) (*types.Section, error)
	UpdateSectionDraft(sec *types.Section, expectedCount int) error
	UpdateSectionReview(summonsID, sectionKey string, status types.SectionStatus, feedback string) (*types.Section, error)
	MarkSummonsReady(id, assembledText string) error
}

// Invoker performs one generation round trip. Implemented by
// generation.Invoker; tests substitute a stub.
type Invoker interface {
	Invoke(ctx context.Context, sec *types.Section, req *generation.Request) (map[string]interface{}, error)
}

// Engine orchestrates the drafting lifecycle. All mutation goes through
// the Store; generation itself is side-effect free until the draft write.
type Engine struct {
	store    Store
	registry *template.Registry
	invoker  Invoker

	// locks serializes generation attempts per section. Two deliberate
	// regenerations of one section must run one after the other, never
	// interleaved; independent sections are unaffected.
	locks sync.Map // "summonsID/sectionKey" -> *sync.Mutex
}

// Config wires an Engine.
type Config struct {
	Store    Store
	Registry *template.Registry
	Invoker  Invoker
}

// New creates an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("engine: store is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("engine: template registry is required")
	}
	if cfg.Invoker == nil {
		return nil, fmt.Errorf("engine: invoker is required")
	}
	return &Engine{
		store:    cfg.Store,
		registry: cfg.Registry,
		invoker:  cfg.Invoker,
	}, nil
}

// sectionLock returns the mutex guarding one section's generation.
func (e *Engine) sectionLock(summonsID, sectionKey string) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(summonsID+"/"+sectionKey, &sync.Mutex{})
	return v.(*sync.Mutex)
}
