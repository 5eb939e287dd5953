package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/candyhouse/talent-profile/internal/client"
	"github.com/candyhouse/talent-profile/internal/config"
	"github.com/candyhouse/talent-profile/internal/db"
	"github.com/candyhouse/talent-profile/internal/server"
	"github.com/candyhouse/talent-profile/internal/server/ratelimit"
	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "secret123"
)

// startAPI runs the talent API over in-memory SQLite with one registered account.
func startAPI(t *testing.T) string {
	t.Helper()

	database, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)

	srv := server.NewWithDeps(server.Config{}, server.Deps{
		DB:        database,
		JWT:       &config.JWTConfig{Secret: "cli-test-secret", Issuer: config.DefaultJWTIssuer, ExpirationHours: 1},
		Password:  &config.PasswordConfig{BcryptCost: bcrypt.MinCost},
		RateLimit: &ratelimit.Config{Enabled: false},
		Logger:    zap.NewNop(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})

	c, err := client.New(ts.URL, nil)
	require.NoError(t, err)
	_, err = c.Register(context.Background(), types.TalentRegister{
		Email: testEmail, FirstName: "Ada", LastName: "Lovelace", Password: testPassword,
	})
	require.NoError(t, err)
	return ts.URL
}

func loginToken(t *testing.T, baseURL string) string {
	t.Helper()
	c, err := client.New(baseURL, nil)
	require.NoError(t, err)
	tok, err := c.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	return tok
}

// resetFlags restores every flag to its default so global flag variables do
// not leak between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TALENT_TOKEN", "")
	t.Setenv("TALENT_API_URL", "")

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}
