package main

import (
	"errors"
	"fmt"

	"github.com/candyhouse/talent-profile/internal/schemas"
	"github.com/spf13/cobra"
)

var validateIn string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a resume JSON file against the resume schema",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateIn, "in", "", "Path to resume JSON file (required)")
	_ = validateCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if _, err := schemas.ValidateResumeFile(validateIn); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			_, _ = fmt.Fprintf(out, "Validation failed for %s\n%s", validateIn, ve.Error())
			return fmt.Errorf("%d schema violation(s)", len(ve.Errors))
		}
		return err
	}
	_, _ = fmt.Fprintf(out, "Validation passed: %s\n", validateIn)
	return nil
}
