package engine

import (
	"fmt"
	"regexp"
	"strings"

	"dagdraft/internal/logging"
	"dagdraft/internal/types"
)

var (
	sectionPlaceholderRe = regexp.MustCompile(`\{\{[A-Z0-9_]+\}\}`)
	userFieldRe          = regexp.MustCompile(`\[[^\[\]\n]+\]`)
)

// Assemble stitches every approved section into the template body and marks
// the summons ready. All sections must be approved first; the error names
// the ones that are not. Fields passed here win over the fields stored at
// start time. Any placeholder left unbound after substitution becomes an
// empty string, so the output never leaks placeholder syntax.
func (e *Engine) Assemble(summonsID string, userFields map[string]string) (string, error) {
	sum, err := e.store.GetSummons(summonsID)
	if err != nil {
		return "", err
	}
	tpl, err := e.registry.Get(sum.TemplateID)
	if err != nil {
		return "", err
	}

	sections, err := e.store.ListSections(summonsID)
	if err != nil {
		return "", err
	}

	var unapproved []string
	byKey := make(map[string]*types.Section, len(sections))
	for _, sec := range sections {
		byKey[sec.SectionKey] = sec
		if sec.Status != types.StatusApproved {
			unapproved = append(unapproved, sec.SectionKey)
		}
	}
	if len(unapproved) > 0 {
		return "", types.NewMissingFields(
			fmt.Sprintf("nog niet goedgekeurde onderdelen: %s", strings.Join(unapproved, ", ")),
			unapproved)
	}

	fields := mergeFields(sum.UserFields, userFields)

	text := sectionPlaceholderRe.ReplaceAllStringFunc(tpl.Body, func(ph string) string {
		key := strings.Trim(ph, "{}")
		if sec, ok := byKey[key]; ok {
			return sec.GeneratedText
		}
		logging.Assembly("No section bound to placeholder %s; substituting empty", ph)
		return ""
	})
	text = userFieldRe.ReplaceAllStringFunc(text, func(ph string) string {
		name := strings.Trim(ph, "[]")
		if v, ok := fields[name]; ok {
			return v
		}
		logging.Assembly("No value for field %s; substituting empty", ph)
		return ""
	})

	if err := e.store.MarkSummonsReady(summonsID, text); err != nil {
		return "", err
	}
	logging.Assembly("Summons %s assembled (%d sections, %d bytes)", summonsID, len(sections), len(text))
	return text, nil
}
