package cli

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/aylak/homedesk/internal/api"
	"github.com/aylak/homedesk/internal/config"
	"github.com/aylak/homedesk/internal/dispatch"
	"github.com/aylak/homedesk/internal/session"
	"github.com/aylak/homedesk/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagServer  string
	flagYes     bool
	flagVerbose bool
)

// errFailed signals a non-zero exit after the failure was already rendered.
var errFailed = errors.New("action failed")

var rootCmd = &cobra.Command{
	Use:   "homedesk",
	Short: "Terminal client for the Home Service backend",
	Long: `homedesk drives the Home Service backend from the terminal:
submit reviews and booking requests, remove bookings and users,
delete your account, or open the interactive service screen.`,
	Version:       version + " (commit: " + commit + ")",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree. Failures are rendered by the commands
// themselves; only the exit code is decided here.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			ui.Fail(err.Error())
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// app bundles everything one command invocation needs.
type app struct {
	cfg    *config.Config
	sess   *session.Session
	client *api.Client
	disp   *dispatch.Dispatcher
	log    *slog.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg.Verbose {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	sess, err := session.Current()
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.ServerURL, sess, &http.Client{Timeout: cfg.Timeout}, logger)

	confirm := Confirm
	if flagYes {
		confirm = func(string) bool { return true }
	}

	return &app{
		cfg:    cfg,
		sess:   sess,
		client: client,
		disp:   dispatch.New(client, confirm, logger),
		log:    logger,
	}, nil
}

// report renders one action's result in the three tiers: declined
// precondition, application-level rejection, transport failure.
func (a *app) report(o api.Outcome, err error) error {
	switch {
	case errors.Is(err, dispatch.ErrDeclined):
		ui.Info("cancelled")
		return nil
	case errors.Is(err, dispatch.ErrMissingDate):
		ui.Warn("Please select a preferred date for your booking.")
		return errFailed
	case errors.Is(err, dispatch.ErrBusy):
		ui.Warn("That action is already in progress.")
		return errFailed
	case errors.Is(err, api.ErrNotLoggedIn):
		ui.Fail("You are not logged in. Run `homedesk login` first.")
		return errFailed
	case err != nil:
		a.log.Error("action failed", "error", err)
		ui.Fail("An unexpected error occurred. Please try again.")
		return errFailed
	case !o.Accepted():
		ui.Fail(o.Message())
		return errFailed
	default:
		ui.OK(o.Message())
		return nil
	}
}
