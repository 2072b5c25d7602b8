package cmd

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hostpulse/hostpulse/internal/config"
	"github.com/hostpulse/hostpulse/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the sampling engine with a live terminal dashboard",
	Run:   runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	// The dashboard owns the terminal, so engine logging is discarded
	// while it runs; startup failures still go to stderr.
	startupLog := newLogger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		startupLog.Fatal().Err(err).Msg("configuration load failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := newEngine(cfg, zerolog.New(io.Discard))
	eng.start(ctx)

	if err := ui.Run(eng.hub, cancel); err != nil {
		startupLog.Fatal().Err(err).Msg("dashboard failed")
	}
}
