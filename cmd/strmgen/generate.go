// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/taibuivan/vodstrm/internal/core/archive"
	"github.com/taibuivan/vodstrm/internal/core/library"
	"github.com/taibuivan/vodstrm/internal/core/playsource"
	"github.com/taibuivan/vodstrm/internal/core/resolve"
	"github.com/taibuivan/vodstrm/internal/platform/ctxutil"
)

type generateFlags struct {
	vodID       string
	source      string
	sourceIndex int
	mediaType   string
	out         string
	export      string
}

func newGenerateCommand(state *app) *cobra.Command {
	flags := &generateFlags{}

	command := &cobra.Command{
		Use:   "generate",
		Short: "Build a STRM archive or export a library folder for one title",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, state, flags)
		},
	}

	command.Flags().StringVar(&flags.vodID, "vod-id", "", "Aggregator id of the title (required)")
	command.Flags().StringVarP(&flags.source, "source", "s", "", "Play source name")
	command.Flags().IntVar(&flags.sourceIndex, "source-index", 0, "Play source position when --source is not given")
	command.Flags().StringVarP(&flags.mediaType, "type", "t", "series", "Media type: movie | series")
	command.Flags().StringVarP(&flags.out, "out", "o", "", "Write the ZIP archive to this file")
	command.Flags().StringVarP(&flags.export, "export", "e", "", "Write .strm files under this library directory")
	_ = command.MarkFlagRequired("vod-id")
	command.MarkFlagsMutuallyExclusive("out", "export")

	return command
}

func runGenerate(cmd *cobra.Command, state *app, flags *generateFlags) error {
	ctx := state.ctx

	items, err := state.client.Detail(ctx, flags.vodID)
	if err != nil {
		return fmt.Errorf("detail failed: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("no title with id %s", flags.vodID)
	}
	item := items[0]

	source, err := chooseSource(item.Sources(), flags.source, flags.sourceIndex)
	if err != nil {
		return err
	}

	resolver := resolve.New(state.cfg.ResolveTimeout, ctxutil.GetLogger(ctx))
	result, err := archive.NewAssembler(resolver).Assemble(ctx, archive.Request{
		Title:      item.Name,
		Year:       item.Year.String(),
		MediaType:  library.ParseMediaType(flags.mediaType),
		SourceName: source.Name,
		Episodes:   source.Episodes,
	})
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	target := flags.export

	if target != "" {
		if err := archive.Export(fs, target, result.Files); err != nil {
			return err
		}
	} else {
		target = filepath.Clean(firstNonEmpty(flags.out, result.DownloadName))
		if err := afero.WriteFile(fs, target, result.Archive, 0o644); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]: %d written, %d skipped -> %s\n",
		item.Name, source.Name, result.SuccessCount, result.SkippedCount, target)
	return err
}

// chooseSource picks by name when given, else by position.
func chooseSource(sources []playsource.PlaySource, name string, index int) (playsource.PlaySource, error) {
	if len(sources) == 0 {
		return playsource.PlaySource{}, errors.New("title has no play sources")
	}

	if name = strings.TrimSpace(name); name != "" {
		for _, source := range sources {
			if source.Name == name {
				return source, nil
			}
		}
		return playsource.PlaySource{}, fmt.Errorf("no play source named %q", name)
	}

	if index < 0 || index >= len(sources) {
		return playsource.PlaySource{}, fmt.Errorf("source index %d out of range (0-%d)", index, len(sources)-1)
	}
	return sources[index], nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
