package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"dagdraft/internal/types"
)

var (
	startTemplateID string
	startFields     []string
	assembleFields  []string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available summons templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		for _, tpl := range a.registry.List() {
			fmt.Printf("%s  v%s  (%d sections)  %s\n", tpl.ID, tpl.Version, len(tpl.Sections), tpl.Name)
		}
		return nil
	},
}

var startCmd = &cobra.Command{
	Use:   "start [case-id]",
	Short: "Start a summons for a case",
	Long: `Creates a summons and all its sections from a template snapshot.
User fields given here are stored on the summons and substituted at
assembly; per-call fields on generate and assemble win over them.

Example:
  dagdraft start <case-id> --field "naam eiser=Jansen B.V." --field "woonplaats eiser=Utrecht"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(startFields)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		sum, sections, err := a.engine.StartSummons(args[0], startTemplateID, fields)
		if err != nil {
			return err
		}
		fmt.Printf("Summons started: %s (template %s v%s)\n\n", sum.ID, sum.TemplateID, sum.TemplateVersion)
		printSectionTable(sections)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [summons-id]",
	Short: "Show the review status of every section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		sum, err := a.store.GetSummons(args[0])
		if err != nil {
			return err
		}
		sections, err := a.engine.Sections(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Summons %s  [%s]\n\n", sum.ID, sum.Status)
		printSectionTable(sections)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [summons-id] [section-key]",
	Short: "Print a section's generated text, or the assembled document",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if len(args) == 1 {
			sum, err := a.store.GetSummons(args[0])
			if err != nil {
				return err
			}
			if sum.AssembledText == "" {
				return fmt.Errorf("summons %s has not been assembled yet", args[0])
			}
			fmt.Println(sum.AssembledText)
			return nil
		}

		sec, err := a.store.GetSection(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s  [%s]  generation %d\n\n", sec.SectionName, sec.Status, sec.GenerationCount)
		if sec.GeneratedText == "" {
			fmt.Println("(no text generated yet)")
			return nil
		}
		fmt.Println(sec.GeneratedText)
		for _, w := range sec.Warnings {
			fmt.Println(warnStyle.Render("waarschuwing: " + w))
		}
		if sec.UserFeedback != "" {
			fmt.Printf("\nFeedback: %s\n", sec.UserFeedback)
		}
		return nil
	},
}

var assembleCmd = &cobra.Command{
	Use:   "assemble [summons-id]",
	Short: "Assemble the final document from all approved sections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(assembleFields)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		text, err := a.engine.Assemble(args[0], fields)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

var (
	approvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	draftStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	keyStyle      = lipgloss.NewStyle().Bold(true)
)

func styleStatus(s types.SectionStatus) string {
	switch s {
	case types.StatusApproved:
		return approvedStyle.Render(string(s))
	case types.StatusDraft:
		return draftStyle.Render(string(s))
	case types.StatusNeedsChanges:
		return rejectedStyle.Render(string(s))
	default:
		return pendingStyle.Render(string(s))
	}
}

func printSectionTable(sections []*types.Section) {
	for _, sec := range sections {
		warn := ""
		if len(sec.Warnings) > 0 {
			warn = warnStyle.Render(fmt.Sprintf("  %d waarschuwing(en)", len(sec.Warnings)))
		}
		fmt.Printf("%d. %-14s %-22s %s%s\n",
			sec.StepOrder, keyStyle.Render(sec.SectionKey), sec.SectionName, styleStatus(sec.Status), warn)
	}
}

func init() {
	startCmd.Flags().StringVar(&startTemplateID, "template", "dagvaarding-basis", "template id")
	startCmd.Flags().StringArrayVar(&startFields, "field", nil, "user field as naam=waarde (repeatable)")
	assembleCmd.Flags().StringArrayVar(&assembleFields, "field", nil, "user field as naam=waarde (repeatable)")
}
