// Command allofart is the terminal client of All of Art.
//
// Run without a subcommand to start the interactive artist page.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/allofart/internal/config"
	"github.com/handiism/allofart/internal/errmsg"
	"github.com/handiism/allofart/internal/logging"
	"github.com/handiism/allofart/internal/share"
	"github.com/handiism/allofart/internal/tui"
)

// app holds the global flags and what is built from them before a command
// runs.
type app struct {
	configPath string
	logPath    string
	apiURL     string
	verbose    bool

	settings *config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var resultID string

	root := &cobra.Command{
		Use:   "allofart [artist-id]",
		Short: "All of Art terminal client",
		Long: `allofart browses artist pages of the All of Art service in the terminal.

Run without a subcommand to start the interactive interface. The optional
argument opens an artist page directly.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := tui.Options{
				Settings: a.settings,
				Logger:   a.logger,
				SDK:      share.NewClipboardSDK(),
				ResultID: resultID,
			}
			if len(args) > 0 {
				opts.ArtistID = args[0]
			}
			return tui.Run(opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to config file")
	flags.StringVar(&a.logPath, "log-file", "", "Log file (default: $XDG_STATE_HOME/allofart/allofart.log)")
	flags.StringVar(&a.apiURL, "api-url", "", "API base URL (overrides config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.Flags().StringVar(&resultID, "result", "", "Analysis result id to share with k")

	root.AddCommand(
		a.newArtistCmd(),
		a.newGalleryCmd(),
		a.newShareCmd(),
		a.newConfigCmd(),
	)
	return root
}

// setup loads the settings and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if a.apiURL != "" {
		settings.APIURL = strings.TrimSuffix(a.apiURL, "/")
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logPath := a.logPath
	if logPath == "" {
		logPath = settings.LogPath
	}
	logger, err := logging.New(logPath, a.verbose)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	a.settings = settings
	a.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

// signalContext returns a context cancelled on interrupt.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
