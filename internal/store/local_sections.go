package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"dagdraft/internal/logging"
	"dagdraft/internal/types"
)

const sectionColumns = `id, summons_id, section_key, section_name, step_order, kind,
	generation_capability, feedback_capability, status, generated_text,
	user_feedback, generation_count, warnings`

func scanSection(row interface{ Scan(...interface{}) error }) (*types.Section, error) {
	sec := &types.Section{}
	var kind, status, warnings string
	err := row.Scan(&sec.ID, &sec.SummonsID, &sec.SectionKey, &sec.SectionName,
		&sec.StepOrder, &kind, &sec.GenerationCapabilityRef, &sec.FeedbackCapabilityRef,
		&status, &sec.GeneratedText, &sec.UserFeedback, &sec.GenerationCount, &warnings)
	if err != nil {
		return nil, err
	}
	sec.Kind = types.SectionKind(kind)
	sec.Status = types.SectionStatus(status)
	if warnings != "" && warnings != "null" {
		if err := json.Unmarshal([]byte(warnings), &sec.Warnings); err != nil {
			return nil, fmt.Errorf("corrupt warnings for section %s: %w", sec.SectionKey, err)
		}
	}
	return sec, nil
}

// ListSections returns all sections of a summons ordered by step order.
func (s *LocalStore) ListSections(summonsID string) ([]*types.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT `+sectionColumns+` FROM sections
		WHERE summons_id = ? ORDER BY step_order`, summonsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var out []*types.Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

// GetSection loads one section by its owning summons and key.
func (s *LocalStore) GetSection(summonsID, sectionKey string) (*types.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sec, err := scanSection(s.db.QueryRow(`SELECT `+sectionColumns+` FROM sections
		WHERE summons_id = ? AND section_key = ?`, summonsID, sectionKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewNotFound("section", sectionKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load section: %w", err)
	}
	return sec, nil
}

// UpdateSectionDraft persists a successful generation attempt: the new
// canonical text, feedback, warnings, draft status, and the incremented
// generation count. The write is guarded by an optimistic check on the
// previous generation count; a concurrent attempt that committed first
// makes this one fail with ErrStaleGeneration instead of clobbering it.
func (s *LocalStore) UpdateSectionDraft(sec *types.Section, expectedCount int) error {
	if !sec.Status.Durable() {
		return fmt.Errorf("refusing to persist non-durable status %q", sec.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	warnings, err := json.Marshal(sec.Warnings)
	if err != nil {
		return fmt.Errorf("failed to marshal warnings: %w", err)
	}

	res, err := s.db.Exec(`UPDATE sections
		SET status = ?, generated_text = ?, user_feedback = ?, warnings = ?, generation_count = ?
		WHERE summons_id = ? AND section_key = ? AND generation_count = ?`,
		string(sec.Status), sec.GeneratedText, sec.UserFeedback, string(warnings),
		expectedCount+1, sec.SummonsID, sec.SectionKey, expectedCount)
	if err != nil {
		return fmt.Errorf("failed to update section draft: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		// Either the section vanished or the count moved under us.
		if _, gerr := s.getSectionLocked(sec.SummonsID, sec.SectionKey); gerr != nil {
			return gerr
		}
		return ErrStaleGeneration
	}
	sec.GenerationCount = expectedCount + 1
	logging.Store("Section %s/%s draft persisted (generation %d)", sec.SummonsID, sec.SectionKey, sec.GenerationCount)
	return nil
}

// UpdateSectionReview persists an approve or reject decision.
func (s *LocalStore) UpdateSectionReview(summonsID, sectionKey string, status types.SectionStatus, feedback string) (*types.Section, error) {
	if !status.Durable() {
		return nil, fmt.Errorf("refusing to persist non-durable status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE sections SET status = ?, user_feedback = ?
		WHERE summons_id = ? AND section_key = ?`,
		string(status), feedback, summonsID, sectionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to update section review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, types.NewNotFound("section", sectionKey)
	}
	return s.getSectionLocked(summonsID, sectionKey)
}

// getSectionLocked is GetSection for callers already holding the mutex.
func (s *LocalStore) getSectionLocked(summonsID, sectionKey string) (*types.Section, error) {
	sec, err := scanSection(s.db.QueryRow(`SELECT `+sectionColumns+` FROM sections
		WHERE summons_id = ? AND section_key = ?`, summonsID, sectionKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewNotFound("section", sectionKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load section: %w", err)
	}
	return sec, nil
}
