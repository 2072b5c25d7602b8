package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostpulse/hostpulse/internal/api"
	"github.com/hostpulse/hostpulse/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sampling engine with the HTTP pull API",
	Run:   runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) {
	log := newLogger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := newEngine(cfg, log)
	eng.start(ctx)

	srv := api.New(cfg.Listen, eng.hub, eng.alerts, eng.hist, eng.slot, cfg.HistoryWindow, log)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("listen", cfg.Listen).
		Dur("interval", cfg.SampleInterval.Std()).
		Msg("hostpulse engine started")

	if err := srv.Run(); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("api server failed")
	}
	log.Info().Msg("hostpulse stopped")
}
