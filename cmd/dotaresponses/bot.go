package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dotaresponses/internal/bot"
)

func newBotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := a.cfg.DiscordToken()
			if err != nil {
				return err
			}
			svc, err := a.openService()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := a.watch(ctx, svc); err != nil {
				return err
			}

			dc := a.cfg.Discord
			timeout := time.Duration(dc.AudioTimeoutSecs) * time.Second
			handler := bot.NewHandler(svc, bot.NewHTTPFetcher(timeout), bot.HandlerConfig{
				Prefix:       dc.CommandPrefix,
				DefaultQuery: a.cfg.Search.DefaultQuery,
				MaxListed:    a.cfg.Search.MaxResults,
				AttachAudio:  dc.AttachAudio,
				AudioTimeout: timeout,
			}, a.logger)

			b, err := bot.New(token, handler, a.logger)
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
