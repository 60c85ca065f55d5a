package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/humanbelnik/movieparty/internal/app"
	"github.com/humanbelnik/movieparty/internal/config"
	"github.com/humanbelnik/movieparty/internal/logger"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "movieparty",
		Short: "Movie party server",
		Long:  "Serves movie parties: the creator picks candidates from TMDB, guests vote, everyone sees the tally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(envFile)
			logger.Setup(cfg.Log.Level)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.Go(ctx, cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "config", "", "env file to load (default .env)")
	return cmd
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
