package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"thumbcard/internal/workers"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info ID...",
		Short: "Show the metadata a card would be rendered from",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseVideoIDs(args)
			if err != nil {
				return err
			}

			provider, err := ctx.provider(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(ids))
			errs := workers.Run(cmd.Context(), workers.ForIO(8), indexes(len(ids)), func(runCtx context.Context, i int) error {
				video, err := provider.Lookup(runCtx, ids[i])
				if err != nil {
					rows[i] = []string{ids[i], "error: " + err.Error(), "", "", "", ""}
					return err
				}
				live := ""
				if video.Live {
					live = "yes"
				}
				rows[i] = []string{video.ID, video.Title, video.Channel, video.Duration, video.Views, live}
				return nil
			})

			headers := []string{"ID", "Title", "Channel", "Duration", "Views", "Live"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))

			failed := 0
			for _, err := range errs {
				if err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d lookups failed", failed, len(ids))
			}
			return nil
		},
	}
}
