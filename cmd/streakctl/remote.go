package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/2beens/gymstreak/internal/streak"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type remoteOptions struct {
	addr    string
	userID  string
	timeout time.Duration
	asJSON  bool
}

type remoteSettings struct {
	RestDaysBuffer int    `json:"restDaysBuffer"`
	Timezone       string `json:"timezone"`
}

func newRemoteCmd() *cobra.Command {
	opts := &remoteOptions{}
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Fetch a user's streak stats from a running gymstreak service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.userID == "" {
				return fmt.Errorf("--user is required")
			}
			client := &http.Client{
				Transport: otelhttp.NewTransport(http.DefaultTransport),
				Timeout:   opts.timeout,
			}
			return runRemote(cmd.Context(), client, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "http://localhost:9000", "gymstreak service address")
	cmd.Flags().StringVarP(&opts.userID, "user", "u", "", "user id")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print stats as JSON")

	return cmd
}

func runRemote(ctx context.Context, client *http.Client, out io.Writer, opts *remoteOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	userPath := "/gymstats/users/" + url.PathEscape(opts.userID)

	var logStats streak.LogStats
	if err := getJSON(ctx, client, opts.addr+userPath+"/stats", &logStats); err != nil {
		return fmt.Errorf("get stats: %w", err)
	}
	if opts.asJSON {
		return renderJSON(out, logStats)
	}

	var settings remoteSettings
	if err := getJSON(ctx, client, opts.addr+userPath+"/settings", &settings); err != nil {
		return fmt.Errorf("get settings: %w", err)
	}
	return renderText(out, logStats, settings.Timezone)
}

func getJSON(ctx context.Context, client *http.Client, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "streakctl/1")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
