package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dagdraft/internal/types"
)

var (
	caseTitle        string
	caseAnalysisPath string
)

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Manage litigation cases",
}

// caseNewCmd seeds a case, optionally with a completed analysis blob so
// generation can start right away.
var caseNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a case",
	Long: `Creates a case. With --analysis, the given JSON file is stored as the
completed case analysis; without it, the case is created unanalyzed and
sections cannot be generated yet.

Example:
  dagdraft case new --title "Jansen / De Vries" --analysis analyse.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if caseTitle == "" {
			return fmt.Errorf("--title is required")
		}

		c := &types.Case{
			ID:        uuid.NewString(),
			Title:     caseTitle,
			CreatedAt: time.Now(),
		}
		if caseAnalysisPath != "" {
			blob, err := os.ReadFile(caseAnalysisPath)
			if err != nil {
				return fmt.Errorf("failed to read analysis file: %w", err)
			}
			if !json.Valid(blob) {
				return fmt.Errorf("%s is not valid JSON", caseAnalysisPath)
			}
			c.AnalysisJSON = blob
			c.AnalysisStatus = "completed"
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.CreateCase(c); err != nil {
			return err
		}
		fmt.Printf("Case created: %s\n", c.ID)
		if c.AnalysisStatus != "completed" {
			fmt.Println("No analysis attached; add one with 'dagdraft case analyze' before generating.")
		}
		return nil
	},
}

// caseAnalyzeCmd attaches a completed analysis to an existing case.
var caseAnalyzeCmd = &cobra.Command{
	Use:   "analyze [case-id] [analysis.json]",
	Short: "Attach a completed analysis to a case",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		blob, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read analysis file: %w", err)
		}
		if !json.Valid(blob) {
			return fmt.Errorf("%s is not valid JSON", args[1])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.SetCaseAnalysis(args[0], "completed", blob); err != nil {
			return err
		}
		fmt.Printf("Analysis attached to case %s\n", args[0])
		return nil
	},
}

func init() {
	caseNewCmd.Flags().StringVar(&caseTitle, "title", "", "case title (required)")
	caseNewCmd.Flags().StringVar(&caseAnalysisPath, "analysis", "", "JSON file with the completed case analysis")
	caseCmd.AddCommand(caseNewCmd)
	caseCmd.AddCommand(caseAnalyzeCmd)
}
