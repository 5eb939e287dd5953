package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/candyhouse/talent-profile/internal/observability"
	"github.com/candyhouse/talent-profile/internal/profile"
	"github.com/candyhouse/talent-profile/internal/schemas"
	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/spf13/cobra"
)

var saveIn string

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Replace the profile with a resume file",
	Long: `Check a resume JSON file against the resume schema, then save it through
the profile store. Keys missing from the file are saved empty.`,
	RunE: runSave,
}

func init() {
	saveCmd.Flags().StringVar(&saveIn, "in", "", "Path to resume JSON file (required)")
	_ = saveCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(saveCmd)
}

// loadResume validates path and decodes it over an empty resume.
func loadResume(path string) (types.Resume, error) {
	doc, err := schemas.ValidateResumeFile(path)
	if err != nil {
		return types.Resume{}, err
	}
	resume := types.EmptyResume()
	if err := json.Unmarshal(doc, &resume); err != nil {
		return types.Resume{}, fmt.Errorf("failed to decode resume: %w", err)
	}
	return resume, nil
}

func runSave(cmd *cobra.Command, _ []string) error {
	resume, err := loadResume(saveIn)
	if err != nil {
		return err
	}
	cfg, err := clientConfig()
	if err != nil {
		return err
	}
	c, err := newAPIClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	store := newStore(cmd, c, cfg.StaleAfter.Std())
	start := time.Now()
	outcome := store.UpdateProfile(cmd.Context(), resume)

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintOutcome("save", outcome, time.Since(start))
	if outcome == profile.OutcomeFailed {
		return fmt.Errorf("save failed: %s", store.State().ErrorMessage)
	}
	printer.PrintResume(store.State().Resume)
	return nil
}
