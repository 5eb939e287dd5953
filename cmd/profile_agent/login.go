package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a bearer token",
	Long:  `Exchange an email and password for a token. Pass it to other commands with --token or TALENT_TOKEN.`,
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (default: config username)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (default: config password)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	cfg, err := clientConfig()
	if err != nil {
		return err
	}
	email := firstNonEmpty(loginEmail, cfg.Username)
	password := firstNonEmpty(loginPassword, cfg.Password)
	if email == "" || password == "" {
		return fmt.Errorf("--email and --password are required")
	}

	cfg.Token, cfg.Username, cfg.Password = "", "", ""
	c, err := newAPIClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	tok, err := c.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
