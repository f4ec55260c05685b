package store

import (
	"database/sql"
	"errors"
	"fmt"

	"dagdraft/internal/types"
)

// CreateCase inserts a case row. The drafting engine only reads cases;
// this exists for the CLI's seed command and for tests.
func (s *LocalStore) CreateCase(c *types.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO cases (id, title, claimant_name, claimant_locality,
			defendant_name, defendant_locality, analysis_status, analysis_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.ClaimantName, c.ClaimantLocality,
		c.DefendantName, c.DefendantLocality, c.AnalysisStatus, c.AnalysisJSON)
	if err != nil {
		return fmt.Errorf("failed to insert case: %w", err)
	}
	return nil
}

// GetCase loads a case by id.
func (s *LocalStore) GetCase(id string) (*types.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := &types.Case{}
	err := s.db.QueryRow(`
		SELECT id, title, claimant_name, claimant_locality,
			defendant_name, defendant_locality, analysis_status, analysis_json, created_at
		FROM cases WHERE id = ?`, id).Scan(
		&c.ID, &c.Title, &c.ClaimantName, &c.ClaimantLocality,
		&c.DefendantName, &c.DefendantLocality, &c.AnalysisStatus, &c.AnalysisJSON, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewNotFound("case", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	return c, nil
}

// SetCaseAnalysis stores an analysis blob and status on a case. Used by
// seeding and tests; the analysis pipeline itself is out of scope.
func (s *LocalStore) SetCaseAnalysis(id, status string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE cases SET analysis_status = ?, analysis_json = ? WHERE id = ?`,
		status, blob, id)
	if err != nil {
		return fmt.Errorf("failed to update case analysis: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.NewNotFound("case", id)
	}
	return nil
}
