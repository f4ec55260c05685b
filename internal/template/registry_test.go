package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dagdraft/internal/types"
)

func TestDefaultTemplateIsValid(t *testing.T) {
	tpl := DefaultTemplate()
	if err := tpl.Validate(); err != nil {
		t.Fatalf("built-in template invalid: %v", err)
	}

	// Every section key must have a placeholder in the body.
	for _, def := range tpl.Sections {
		if !strings.Contains(tpl.Body, "{{"+def.Key+"}}") {
			t.Errorf("body lacks placeholder for section %s", def.Key)
		}
	}

	// The notice section is fixed and the defenses section carries a
	// feedback capability for the override rule.
	var notice, defenses *types.SectionDefinition
	for i := range tpl.Sections {
		switch tpl.Sections[i].Kind {
		case types.KindNotice:
			notice = &tpl.Sections[i]
		case types.KindDefenses:
			defenses = &tpl.Sections[i]
		}
	}
	if notice == nil || notice.FixedText == "" {
		t.Error("default template must carry a fixed aanzegging")
	}
	if defenses == nil || defenses.FeedbackCapabilityRef == "" {
		t.Error("default defenses section must carry a feedback capability")
	}
}

func TestRegistry_LoadsDirectoryAndDefault(t *testing.T) {
	dir := t.TempDir()
	custom := `
id: incasso-kort
version: "2"
name: Incassodagvaarding
sections:
  - key: FEITEN
    name: Feiten
    step_order: 1
    kind: facts
    generation_capability: feiten-v1
body: "{{FEITEN}} en [naam eiser]"
`
	if err := os.WriteFile(filepath.Join(dir, "incasso.yaml"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	// An invalid file must be skipped, not break the registry.
	if err := os.WriteFile(filepath.Join(dir, "kapot.yaml"), []byte("id: kapot"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := NewRegistry(dir)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, err := r.Get("incasso-kort"); err != nil {
		t.Errorf("custom template not loaded: %v", err)
	}
	if _, err := r.Get("dagvaarding-basis"); err != nil {
		t.Errorf("built-in default missing: %v", err)
	}
	if _, err := r.Get("kapot"); !types.IsNotFound(err) {
		t.Errorf("invalid template should be skipped, got %v", err)
	}
	if got := len(r.List()); got != 2 {
		t.Errorf("want 2 templates, got %d", got)
	}
}

func TestRegistry_MissingDirServesDefault(t *testing.T) {
	r, err := NewRegistry(filepath.Join(t.TempDir(), "nergens"))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if _, err := r.Get("dagvaarding-basis"); err != nil {
		t.Errorf("default template must survive a missing dir: %v", err)
	}
}
