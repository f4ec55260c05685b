package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dagdraft/internal/types"
)

var (
	generateFields   []string
	generateFeedback string
	generateAll      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [summons-id] [section-key]",
	Short: "Generate or regenerate a section draft",
	Long: `Generates one section from the case analysis and all previously approved
sections, and stores the result as a draft for review.

With --all-pending, every pending section is generated concurrently;
sections generate independently, so the order of completion does not
matter for review.

Rejected sections regenerate with the stored reviewer feedback unless
--feedback overrides it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(generateFields)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if generateAll {
			if len(args) > 1 {
				return fmt.Errorf("--all-pending takes no section key")
			}
			return generateAllPending(cmd, a, args[0], fields)
		}
		if len(args) < 2 {
			return fmt.Errorf("section key required (or use --all-pending)")
		}

		sec, err := a.engine.Generate(cmd.Context(), args[0], args[1], fields, generateFeedback)
		if err != nil {
			return err
		}
		reportDraft(sec)
		return nil
	},
}

// generateAllPending drafts every pending section concurrently. Sections
// are independent, so this never violates the per-section serialization.
func generateAllPending(cmd *cobra.Command, a *app, summonsID string, fields map[string]string) error {
	sections, err := a.engine.Sections(summonsID)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	var started int
	for _, sec := range sections {
		if sec.Status != types.StatusPending || sec.Kind.Fixed() {
			continue
		}
		started++
		key := sec.SectionKey
		g.Go(func() error {
			drafted, err := a.engine.Generate(ctx, summonsID, key, fields, "")
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			reportDraft(drafted)
			return nil
		})
	}
	if started == 0 {
		fmt.Println("No pending sections.")
		return nil
	}
	return g.Wait()
}

func reportDraft(sec *types.Section) {
	fmt.Printf("Draft ready: %s (generation %d)\n", sec.SectionKey, sec.GenerationCount)
	for _, w := range sec.Warnings {
		fmt.Println(warnStyle.Render("waarschuwing: " + w))
	}
}

var approveCmd = &cobra.Command{
	Use:   "approve [summons-id] [section-key]",
	Short: "Approve a section draft",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		sec, err := a.engine.Approve(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Approved: %s\n", sec.SectionKey)
		return nil
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject [summons-id] [section-key] [feedback]",
	Short: "Reject a section draft with feedback for the next attempt",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		sec, err := a.engine.Reject(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Rejected: %s (regenerate with 'dagdraft generate %s %s')\n",
			sec.SectionKey, args[0], args[1])
		return nil
	},
}

func init() {
	generateCmd.Flags().StringArrayVar(&generateFields, "field", nil, "user field as naam=waarde (repeatable)")
	generateCmd.Flags().StringVar(&generateFeedback, "feedback", "", "revision instruction for this attempt")
	generateCmd.Flags().BoolVar(&generateAll, "all-pending", false, "generate every pending section concurrently")
}
