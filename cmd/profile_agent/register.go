package main

import (
	"fmt"

	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/spf13/cobra"
)

var registerReq types.TalentRegister

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a talent account",
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerReq.Email, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerReq.FirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerReq.LastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerReq.Password, "password", "", "Password (at least 6 characters)")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if err := registerReq.Validate(); err != nil {
		return fmt.Errorf("invalid registration: %w", err)
	}

	cfg, err := clientConfig()
	if err != nil {
		return err
	}
	cfg.Token, cfg.Username, cfg.Password = "", "", ""
	c, err := newAPIClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	msg, err := c.Register(cmd.Context(), registerReq)
	if err != nil {
		return fmt.Errorf("register failed: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
