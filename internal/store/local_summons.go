package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"dagdraft/internal/logging"
	"dagdraft/internal/types"
)

// CreateSummons inserts a summons together with all its sections in one
// transaction. All sections of a summons come from a single template
// snapshot; they are never created piecemeal.
func (s *LocalStore) CreateSummons(sum *types.Summons, sections []*types.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, err := json.Marshal(sum.UserFields)
	if err != nil {
		return fmt.Errorf("failed to marshal user fields: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO summonses (id, case_id, template_id, template_version, user_fields, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sum.ID, sum.CaseID, sum.TemplateID, sum.TemplateVersion, string(fields), string(sum.Status))
	if err != nil {
		return fmt.Errorf("failed to insert summons: %w", err)
	}

	for _, sec := range sections {
		if !sec.Status.Durable() {
			return fmt.Errorf("refusing to persist non-durable status %q for section %s", sec.Status, sec.SectionKey)
		}
		warnings, err := json.Marshal(sec.Warnings)
		if err != nil {
			return fmt.Errorf("failed to marshal warnings: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO sections (id, summons_id, section_key, section_name, step_order, kind,
				generation_capability, feedback_capability, status, generated_text,
				user_feedback, generation_count, warnings)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sec.ID, sec.SummonsID, sec.SectionKey, sec.SectionName, sec.StepOrder, string(sec.Kind),
			sec.GenerationCapabilityRef, sec.FeedbackCapabilityRef, string(sec.Status),
			sec.GeneratedText, sec.UserFeedback, sec.GenerationCount, string(warnings))
		if err != nil {
			return fmt.Errorf("failed to insert section %s: %w", sec.SectionKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit summons: %w", err)
	}
	logging.Store("Created summons %s with %d sections", sum.ID, len(sections))
	return nil
}

// GetSummons loads a summons by id.
func (s *LocalStore) GetSummons(id string) (*types.Summons, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := &types.Summons{}
	var fields string
	var status string
	err := s.db.QueryRow(`
		SELECT id, case_id, template_id, template_version, user_fields, status, assembled_text, created_at
		FROM summonses WHERE id = ?`, id).Scan(
		&sum.ID, &sum.CaseID, &sum.TemplateID, &sum.TemplateVersion,
		&fields, &status, &sum.AssembledText, &sum.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewNotFound("summons", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load summons: %w", err)
	}
	sum.Status = types.SummonsStatus(status)
	if fields != "" {
		if err := json.Unmarshal([]byte(fields), &sum.UserFields); err != nil {
			return nil, fmt.Errorf("corrupt user_fields for summons %s: %w", id, err)
		}
	}
	return sum, nil
}

// MarkSummonsReady persists the assembled text and flips the summons to
// ready. Only a successful document-assembly run calls this.
func (s *LocalStore) MarkSummonsReady(id, assembledText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE summonses SET status = ?, assembled_text = ? WHERE id = ?`,
		string(types.SummonsReady), assembledText, id)
	if err != nil {
		return fmt.Errorf("failed to mark summons ready: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.NewNotFound("summons", id)
	}
	logging.Store("Summons %s marked ready (%d bytes assembled)", id, len(assembledText))
	return nil
}
