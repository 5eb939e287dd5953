package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/candyhouse/talent-profile/internal/observability"
	"github.com/candyhouse/talent-profile/internal/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fetchLastUpdate string
	fetchJSON       bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh the profile unless it was updated recently",
	Long: `Run GetProfile through a profile store and print the resulting state.
--last-update is when the profile was last loaded, as RFC 3339 or epoch
milliseconds. The fetch is skipped when that is within the stale window.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchLastUpdate, "last-update", "0", "Last load time (RFC 3339 or epoch ms)")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Print the state as JSON")
	rootCmd.AddCommand(fetchCmd)
}

// parseLastUpdate accepts epoch milliseconds or an RFC 3339 timestamp.
func parseLastUpdate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.UnixMilli(0), nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --last-update %q: want RFC 3339 or epoch milliseconds", s)
	}
	return t, nil
}

// newStore builds a store over the configured API. In verbose mode every
// transition is printed.
func newStore(cmd *cobra.Command, api profile.ResumeAPI, staleAfter time.Duration) *profile.Store {
	opts := []profile.Option{profile.WithLogger(logger)}
	if staleAfter > 0 {
		opts = append(opts, profile.WithStaleAfter(staleAfter))
	}
	store := profile.NewStore(api, opts...)

	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		n := 0
		store.Subscribe(func(st profile.State) {
			n++
			printer.PrintTransition(n, st)
		})
	}
	return store
}

func runFetch(cmd *cobra.Command, _ []string) error {
	lastUpdate, err := parseLastUpdate(fetchLastUpdate)
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
	outcome := store.GetProfile(cmd.Context(), lastUpdate)
	logger.Debug("fetch finished", zap.Stringer("outcome", outcome), zap.Duration("elapsed", time.Since(start)))

	st := store.State()
	out := cmd.OutOrStdout()
	if fetchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}
	} else {
		printer := observability.NewPrinter(out)
		printer.PrintOutcome("fetch", outcome, time.Since(start))
		printer.PrintProfileState(st)
	}

	if outcome == profile.OutcomeFailed {
		return fmt.Errorf("fetch failed: %s", st.ErrorMessage)
	}
	return nil
}
