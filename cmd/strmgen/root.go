// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/vodstrm/internal/core/settings"
	"github.com/taibuivan/vodstrm/internal/core/vod"
	"github.com/taibuivan/vodstrm/internal/platform/config"
	"github.com/taibuivan/vodstrm/internal/platform/constants"
	"github.com/taibuivan/vodstrm/internal/platform/ctxutil"
)

// app holds what every subcommand needs after flags are parsed.
type app struct {
	cfg    *config.Config
	ctx    context.Context
	client *vod.Client

	flagAPI   string
	flagDebug bool
}

func newRootCommand() *cobra.Command {
	state := &app{}

	root := &cobra.Command{
		Use:          "strmgen",
		Short:        "Generate Emby/Jellyfin STRM libraries from a VOD aggregator",
		Version:      constants.AppVersion,
		SilenceUsage: true,
	}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return state.load(cmd.Context())
	}

	root.PersistentFlags().StringVar(&state.flagAPI, "api", "", "Aggregator endpoint (overrides VOD_API)")
	root.PersistentFlags().BoolVarP(&state.flagDebug, "debug", "x", false, "Debug logging to stderr")

	root.AddCommand(newSearchCommand(state))
	root.AddCommand(newGenerateCommand(state))

	return root
}

// load merges configuration: defaults < environment < flags.
func (state *app) load(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if state.flagDebug || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	state.ctx = ctxutil.WithLogger(parent, logger)

	store := settings.NewStore(cfg.VodAPI, cfg.VodSources...)
	if api := strings.TrimSpace(state.flagAPI); api != "" {
		if _, err := store.Apply(state.ctx, settings.Update{VodAPI: &api}); err != nil {
			return fmt.Errorf("--api: %w", err)
		}
	}

	state.cfg = cfg
	state.client = vod.NewClient(store, cfg.UpstreamTimeout)
	return nil
}
