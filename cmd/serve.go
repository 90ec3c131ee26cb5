package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/daemon"
	"github.com/theirongolddev/payplan/internal/history"
	"github.com/theirongolddev/payplan/internal/logging"
	"github.com/theirongolddev/payplan/internal/planner"
	"github.com/theirongolddev/payplan/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr         string
	flagServeEventsBuffer int
	flagServeNoJournal    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner over HTTP with an SSE event stream",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 0, "Max in-memory events retained (default from config)")
	serveCmd.Flags().BoolVar(&flagServeNoJournal, "no-journal", false, "Do not journal submissions")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	lvl, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, logging.JSON, lvl)
	cfg := loadConfig(logger)

	addr := config.ServerAddr(cfg)
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	buffer := cfg.Server.EventsBuffer
	if flagServeEventsBuffer > 0 {
		buffer = flagServeEventsBuffer
	}

	log := history.NewLocked(history.New())
	opts := []planner.Option{planner.WithLogger(logger)}
	journaling := false
	if config.JournalEnabled(cfg) && !flagServeNoJournal {
		j, err := store.Open(config.JournalPath(cfg))
		if err != nil {
			return err
		}
		defer func() { _ = j.Close() }()
		opts = append(opts, planner.WithJournal(j))
		journaling = true
	}

	svc := daemon.New(daemon.Config{
		Addr:         addr,
		EventsBuffer: buffer,
		Journal:      journaling,
	}, log, planner.New(log, opts...), logger)

	logger.Info().Str("addr", addr).Bool("journal", journaling).Msg("payplan serving")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("payplan stopped")
	return nil
}
