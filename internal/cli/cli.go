package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/frontdesk-watch/internal/appointment"
	"github.com/pfrederiksen/frontdesk-watch/internal/logger"
	"github.com/pfrederiksen/frontdesk-watch/internal/monitor"
	"github.com/pfrederiksen/frontdesk-watch/internal/notifier"
	"github.com/pfrederiksen/frontdesk-watch/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1

	// DefaultInterval is the polling interval in seconds.
	DefaultInterval = 600
)

var (
	flagURL      string
	flagUntil    string
	flagInterval int
	flagDryRun   bool
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frontdesk-watch",
		Short: "Monitor a FrontDesk appointment page for open time slots",
		Long: `Monitor a FrontDesk appointment scheduling page for newly opened
time slots on or before a cutoff date. When availability appears, a summary
is logged and sent to the configured notification channels. The monitor
runs until interrupted.`,
		SilenceUsage: true,
		RunE:         runWatch,
	}

	cmd.Flags().StringVar(&flagURL, "url", "", "FrontDesk time selection URL to monitor (required)")
	cmd.Flags().StringVar(&flagUntil, "until", "", "Latest date (inclusive) to consider, YYYY-MM-DD (default: 30 days from today)")
	cmd.Flags().IntVar(&flagInterval, "interval", DefaultInterval, "Polling interval in seconds between checks")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print notifications instead of sending them")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.MarkFlagRequired("url")

	return cmd
}

// runWatch is the main command logic
func runWatch(cmd *cobra.Command, args []string) error {
	url := strings.TrimSpace(flagURL)
	if url == "" {
		return fmt.Errorf("--url is required")
	}

	cutoff, err := buildCutoff(flagUntil, time.Now())
	if err != nil {
		return err
	}

	if flagInterval <= 0 {
		return fmt.Errorf("--interval must be a positive number of seconds, got %d", flagInterval)
	}
	interval := time.Duration(flagInterval) * time.Second

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stdout, os.Stderr)
	logger.SetDefault(log)

	// Mail and Telegram credentials may live in a local .env file.
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env file", nil)
	}

	notifiers := buildNotifiers(log, flagDryRun)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := monitor.New(scraper.New(url), notifiers, cutoff, interval, log)
	m.Run(ctx)

	return nil
}

// buildCutoff resolves the --until flag: empty means 30 days from now.
func buildCutoff(until string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(until) == "" {
		return appointment.DefaultCutoff(now), nil
	}
	return appointment.ParseCutoff(strings.TrimSpace(until))
}

// buildNotifiers assembles the notification channels. Missing channel
// configuration is never fatal: mail warns with the exact missing keys,
// Telegram is simply left out.
func buildNotifiers(log *logger.Logger, dryRun bool) []notifier.Notifier {
	if dryRun {
		return []notifier.Notifier{notifier.NewDryRunNotifier()}
	}

	notifiers := make([]notifier.Notifier, 0, 2)

	mailCfg, err := notifier.LoadMailConfig()
	if err != nil {
		log.Warn("email notifications disabled", logger.Fields{"reason": err.Error()})
	} else if missing := mailCfg.MissingKeys(); len(missing) > 0 {
		log.Warn("email notifications disabled: missing environment variables", logger.Fields{
			"missing": strings.Join(missing, ", "),
		})
	} else {
		mail, err := notifier.NewMailNotifier(mailCfg)
		if err != nil {
			log.Warn("email notifications disabled", logger.Fields{"reason": err.Error()})
		} else {
			notifiers = append(notifiers, mail)
		}
	}

	if tg, err := notifier.NewTelegramNotifier(); err == nil {
		notifiers = append(notifiers, tg)
	} else {
		log.Debug("telegram notifications disabled", logger.Fields{"reason": err.Error()})
	}

	return notifiers
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
