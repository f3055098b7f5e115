package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"storeAdmin/internal/config"
	"storeAdmin/internal/shared/logging"
)

// rootOptions is filled by the root command before any subcommand runs.
type rootOptions struct {
	cfg     *config.Config
	logFile io.Closer
	noFile  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "storeadmin",
		Short:        "E-commerce admin dashboard server",
		Long:         "storeadmin serves the admin dashboard of the store: catalog, orders, offers, newsletter, messages, inventory and settings.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Attempt to load variables from .env so local runs honour configuration tweaks.
			if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
				cmd.PrintErrf(".env load warning: %v\n", err)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config load: %w", err)
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Logging.Level = level
			}
			opts.cfg = cfg
			return opts.setupLogging(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if opts.logFile != nil {
				return opts.logFile.Close()
			}
			return nil
		},
	}
	cmd.PersistentFlags().String("log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.noFile, "no-log-file", false, "log to stderr only")
	cmd.AddCommand(newServeCmd(opts), newExportSubscribersCmd(opts))
	return cmd
}

// setupLogging sends slog and the standard logger to stderr and, unless disabled, the daily
// log file. Stdout stays free for command output such as the CSV export.
func (o *rootOptions) setupLogging(stderr io.Writer) error {
	var writer io.Writer = stderr
	if !o.noFile {
		file, tee, err := logging.OpenDailyFile(o.cfg.Logging.Directory, time.Now(), stderr)
		if err != nil {
			return fmt.Errorf("logging setup: %w", err)
		}
		o.logFile = file
		writer = tee
	}
	logger := logging.New(writer, logging.Config{
		Level:     o.cfg.Logging.Level,
		Format:    o.cfg.Logging.Format,
		AddSource: true,
		Service:   "storeadmin",
	})
	slog.SetDefault(logger)
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")
	slog.Debug("logging initialized",
		slog.String("directory", o.cfg.Logging.Directory),
		slog.String("level", o.cfg.Logging.Level),
		slog.String("format", o.cfg.Logging.Format),
	)
	return nil
}
