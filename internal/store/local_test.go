package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"dagdraft/internal/types"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "dagdraft.db"))
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedSummons(t *testing.T, s *LocalStore) (*types.Summons, []*types.Section) {
	t.Helper()
	c := &types.Case{ID: uuid.NewString(), Title: "Jansen/De Vries", AnalysisStatus: "completed"}
	if err := s.CreateCase(c); err != nil {
		t.Fatalf("CreateCase: %v", err)
	}
	sum := &types.Summons{
		ID:         uuid.NewString(),
		CaseID:     c.ID,
		TemplateID: "dagvaarding-basis",
		Status:     types.SummonsInProgress,
		UserFields: map[string]string{"naam eiser": "Jansen B.V."},
	}
	secs := []*types.Section{
		{ID: uuid.NewString(), SummonsID: sum.ID, SectionKey: "BEVOEGDHEID", StepOrder: 1,
			Kind: types.KindJurisdiction, GenerationCapabilityRef: "bevoegdheid-v1", Status: types.StatusPending},
		{ID: uuid.NewString(), SummonsID: sum.ID, SectionKey: "FEITEN", StepOrder: 2,
			Kind: types.KindFacts, GenerationCapabilityRef: "feiten-v1", Status: types.StatusPending},
	}
	if err := s.CreateSummons(sum, secs); err != nil {
		t.Fatalf("CreateSummons: %v", err)
	}
	return sum, secs
}

func TestCreateAndGetSummons(t *testing.T) {
	s := newTestStore(t)
	sum, _ := seedSummons(t, s)

	got, err := s.GetSummons(sum.ID)
	if err != nil {
		t.Fatalf("GetSummons: %v", err)
	}
	if got.TemplateID != "dagvaarding-basis" || got.Status != types.SummonsInProgress {
		t.Errorf("summons round trip mismatch: %+v", got)
	}
	if got.UserFields["naam eiser"] != "Jansen B.V." {
		t.Errorf("user fields lost: %v", got.UserFields)
	}

	secs, err := s.ListSections(sum.ID)
	if err != nil {
		t.Fatalf("ListSections: %v", err)
	}
	if len(secs) != 2 || secs[0].SectionKey != "BEVOEGDHEID" || secs[1].SectionKey != "FEITEN" {
		t.Errorf("sections not ordered by step order: %+v", secs)
	}
}

func TestGetSection_NotFound(t *testing.T) {
	s := newTestStore(t)
	sum, _ := seedSummons(t, s)

	_, err := s.GetSection(sum.ID, "ONBEKEND")
	if !types.IsNotFound(err) {
		t.Fatalf("want NotFound, got %v", err)
	}
	_, err = s.GetSummons("nope")
	if !types.IsNotFound(err) {
		t.Fatalf("want NotFound, got %v", err)
	}
}

func TestDuplicateSectionKeyRejected(t *testing.T) {
	s := newTestStore(t)
	c := &types.Case{ID: uuid.NewString(), Title: "x"}
	if err := s.CreateCase(c); err != nil {
		t.Fatal(err)
	}
	sum := &types.Summons{ID: uuid.NewString(), CaseID: c.ID, TemplateID: "t", Status: types.SummonsInProgress}
	secs := []*types.Section{
		{ID: uuid.NewString(), SummonsID: sum.ID, SectionKey: "A", StepOrder: 1, Status: types.StatusPending},
		{ID: uuid.NewString(), SummonsID: sum.ID, SectionKey: "A", StepOrder: 2, Status: types.StatusPending},
	}
	if err := s.CreateSummons(sum, secs); err == nil {
		t.Fatal("duplicate section key must be rejected")
	}
	// The transaction rolled back: the summons must not exist either.
	if _, err := s.GetSummons(sum.ID); !types.IsNotFound(err) {
		t.Fatalf("partial summons persisted: %v", err)
	}
}

func TestUpdateSectionDraft_OptimisticCheck(t *testing.T) {
	s := newTestStore(t)
	sum, secs := seedSummons(t, s)

	sec := secs[0]
	sec.Status = types.StatusDraft
	sec.GeneratedText = "De kantonrechter te Utrecht is bevoegd."
	sec.Warnings = []string{"forum selection absent"}

	if err := s.UpdateSectionDraft(sec, 0); err != nil {
		t.Fatalf("UpdateSectionDraft: %v", err)
	}
	if sec.GenerationCount != 1 {
		t.Errorf("generation count not incremented: %d", sec.GenerationCount)
	}

	got, err := s.GetSection(sum.ID, "BEVOEGDHEID")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != types.StatusDraft || got.GenerationCount != 1 {
		t.Errorf("draft not persisted: %+v", got)
	}
	if len(got.Warnings) != 1 || got.Warnings[0] != "forum selection absent" {
		t.Errorf("warnings round trip failed: %v", got.Warnings)
	}

	// Stale write: claims the count is still 0.
	stale := got.Clone()
	stale.GeneratedText = "stale text"
	err = s.UpdateSectionDraft(stale, 0)
	if !errors.Is(err, ErrStaleGeneration) {
		t.Fatalf("want ErrStaleGeneration, got %v", err)
	}
	got, _ = s.GetSection(sum.ID, "BEVOEGDHEID")
	if got.GeneratedText == "stale text" {
		t.Error("stale write clobbered the draft")
	}
}

func TestUpdateSectionDraft_RefusesTransientStatus(t *testing.T) {
	s := newTestStore(t)
	_, secs := seedSummons(t, s)
	sec := secs[0]
	sec.Status = types.StatusGenerating
	if err := s.UpdateSectionDraft(sec, 0); err == nil {
		t.Fatal("generating must never be persisted")
	}
}

func TestUpdateSectionReview(t *testing.T) {
	s := newTestStore(t)
	sum, secs := seedSummons(t, s)
	sec := secs[1]
	sec.Status = types.StatusDraft
	sec.GeneratedText = "Feiten."
	if err := s.UpdateSectionDraft(sec, 0); err != nil {
		t.Fatal(err)
	}

	got, err := s.UpdateSectionReview(sum.ID, "FEITEN", types.StatusNeedsChanges, "te kort")
	if err != nil {
		t.Fatalf("UpdateSectionReview: %v", err)
	}
	if got.Status != types.StatusNeedsChanges || got.UserFeedback != "te kort" {
		t.Errorf("review not persisted: %+v", got)
	}
	if got.GeneratedText != "Feiten." {
		t.Error("review must not touch generated text")
	}
}

func TestMarkSummonsReady(t *testing.T) {
	s := newTestStore(t)
	sum, _ := seedSummons(t, s)

	if err := s.MarkSummonsReady(sum.ID, "definitieve tekst"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetSummons(sum.ID)
	if got.Status != types.SummonsReady || got.AssembledText != "definitieve tekst" {
		t.Errorf("summons not marked ready: %+v", got)
	}

	if err := s.MarkSummonsReady("nope", "x"); !types.IsNotFound(err) {
		t.Fatalf("want NotFound, got %v", err)
	}
}
