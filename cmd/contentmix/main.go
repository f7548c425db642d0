// Package main provides the contentmix CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/gauthierbraillon/contentmix/internal/aggregator"
	"github.com/gauthierbraillon/contentmix/internal/config"
	"github.com/gauthierbraillon/contentmix/internal/dashboard"
	"github.com/gauthierbraillon/contentmix/internal/display"
	"github.com/gauthierbraillon/contentmix/internal/export"
	"github.com/gauthierbraillon/contentmix/internal/session"
	"github.com/gauthierbraillon/contentmix/internal/web"
	"github.com/gauthierbraillon/contentmix/internal/youtube"
	"github.com/gauthierbraillon/contentmix/pkg/browser"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

const requestTimeout = 30 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version, then the module version
// recorded by go install.
func resolveVersion(ldflagsVersion string, info *debug.BuildInfo) string {
	if ldflagsVersion != "dev" {
		return ldflagsVersion
	}
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}

func buildInfo() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
}

// newRootCmd creates the root command for contentmix CLI.
func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "contentmix",
		Short: "Search YouTube by keyword and explore the results",
		Long: "Contentmix searches YouTube videos by keyword and date range, " +
			"charts uploads per day and pages through the results in a dashboard or the terminal.",
		Version:      resolveVersion(version, buildInfo()),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, verbose)
			if err := godotenv.Load(); err != nil {
				slog.Debug("no .env file loaded", slog.Any("error", err))
			}
		},
	}

	rootCmd.SetVersionTemplate("contentmix version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// newClient builds the YouTube client from configuration.
func newClient(cfg *config.Config) *youtube.Client {
	opts := []youtube.ClientOption{
		youtube.WithBaseURL(cfg.APIURL),
		youtube.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
	}
	if cfg.RequestsPerSecond > 0 {
		opts = append(opts, youtube.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)))
	}
	if cfg.MaxPages > 0 {
		opts = append(opts, youtube.WithMaxPages(cfg.MaxPages))
	}
	return youtube.NewClient(cfg.APIKey, opts...)
}

func newService(cfg *config.Config) *dashboard.Service {
	return dashboard.NewService(newClient(cfg), aggregator.New(cfg.Timezone), cfg.PageSize)
}

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard",
		Long:  "Serve the search dashboard over HTTP until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Addr
			}
			if !cfg.HasAPIKey() {
				slog.Warn("YOUTUBE_API_KEY is not set, searches will fail")
			}

			srv, err := web.NewServer(newService(cfg), session.NewStore(cfg.SessionTTL))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx, addr, func(url string) {
				fmt.Fprintf(cmd.OutOrStdout(), "Dashboard running at %s\n", url)
				if !open {
					return
				}
				if err := browser.Open(url); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Could not open browser. Please visit:\n%s\n", url)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", config.DefaultAddr, "Address to listen on")
	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the dashboard in the default browser")

	return cmd
}

// newSearchCmd creates the search subcommand.
func newSearchCmd() *cobra.Command {
	var maxResults int
	var order, after, before string
	var page int
	var csvPath, atomPath string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search YouTube videos by keyword",
		Long: "Fetch every page of results for a keyword search, then print the total, " +
			"the uploads per day and one page of videos.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if before == "" {
				before = now.Format("2006-01-02")
			}
			form := dashboard.Form{
				Query:      args[0],
				MaxResults: strconv.Itoa(maxResults),
				Order:      order,
				StartDate:  after,
				EndDate:    before,
			}
			params, err := form.Params(now)
			if err != nil {
				return errors.New(dashboard.UserMessage(err))
			}

			cfg := config.Load()
			if !cfg.HasAPIKey() {
				return errors.New("missing API key: set YOUTUBE_API_KEY")
			}

			svc := newService(cfg)
			state := &session.State{}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			result := svc.Submit(ctx, state, params)
			switch result.Outcome {
			case dashboard.OutcomeEmpty:
				fmt.Fprintln(cmd.OutOrStdout(), result.Notice.Message)
				return nil
			case dashboard.OutcomeInvalid, dashboard.OutcomeFailed:
				return errors.New(result.Notice.Message)
			}

			view := svc.BuildView(state.Snapshot(), &form, page, nil, now)
			formatter := display.NewTerminalFormatter()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(view.Summary))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPage(view.Page, view.Gallery))

			if csvPath != "" {
				if err := writeCSV(csvPath, view.Records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "CSV saved to: %s\n", csvPath)
			}
			if atomPath != "" {
				if err := writeAtom(atomPath, params, view.Records, now); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Atom feed saved to: %s\n", atomPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max", "m", youtube.MaxMaxResults, "Results per API page (5-50)")
	cmd.Flags().StringVar(&order, "order", string(youtube.OrderDate), "Order: date, rating, relevance, title, videoCount, viewCount")
	cmd.Flags().StringVar(&after, "after", "2023-01-01", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&before, "before", "", "End date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page of videos to print")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the results to a CSV file")
	cmd.Flags().StringVar(&atomPath, "atom", "", "Write the results to an Atom feed file")

	return cmd
}

func writeCSV(path string, records []youtube.VideoRecord) error {
	data, err := export.CSV(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeAtom(path string, params youtube.SearchParameters, records []youtube.VideoRecord, now time.Time) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteAtom(f, params, records, now); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// newConfigCmd creates the config subcommand.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "Show the settings contentmix reads from the environment and .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			out := cmd.OutOrStdout()

			apiKey := "not set"
			if cfg.HasAPIKey() {
				apiKey = "set"
			}
			fmt.Fprintf(out, "YouTube API key: %s\n", apiKey)
			fmt.Fprintf(out, "API URL: %s\n", cfg.APIURL)
			fmt.Fprintf(out, "Listen address: %s\n", cfg.Addr)
			fmt.Fprintf(out, "Videos per page: %d\n", cfg.PageSize)
			fmt.Fprintf(out, "Timezone: %s\n", cfg.Timezone)
			fmt.Fprintf(out, "Requests per second: %g\n", cfg.RequestsPerSecond)
			fmt.Fprintf(out, "Session TTL: %s\n", cfg.SessionTTL)
			maxPages := "unlimited"
			if cfg.MaxPages > 0 {
				maxPages = strconv.Itoa(cfg.MaxPages)
			}
			fmt.Fprintf(out, "Max pages: %s\n", maxPages)
			return nil
		},
	}

	return cmd
}
