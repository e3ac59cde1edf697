// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/vodstrm/internal/core/playsource"
	"github.com/taibuivan/vodstrm/internal/core/vod"
	"github.com/taibuivan/vodstrm/pkg/slice"
)

func newSearchCommand(state *app) *cobra.Command {
	var flagJSON, flagAll bool

	command := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the aggregator and list play sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")

			search := state.client.Search
			if flagAll {
				search = state.client.SearchAll
			}

			items, err := search(state.ctx, keyword)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if flagJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(slice.Map(items, vod.Item.ToDetail))
			}

			return printItems(cmd, items)
		},
	}

	command.Flags().BoolVarP(&flagJSON, "json", "j", false, "Print decoded results as JSON")
	command.Flags().BoolVarP(&flagAll, "all", "a", false, "Search every source in VOD_SOURCES")
	return command
}

func printItems(cmd *cobra.Command, items []vod.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no results")
		return err
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "SRC\tID\tTITLE\tYEAR\tTYPE\tSOURCES")
	for _, item := range items {
		sources := slice.Map(item.Sources(), func(source playsource.PlaySource) string {
			return fmt.Sprintf("%s(%d)", source.Name, len(source.Episodes))
		})
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\n",
			item.SourceIndex, item.ID, item.Name, item.Year, item.TypeName, strings.Join(sources, " "))
	}
	return writer.Flush()
}
