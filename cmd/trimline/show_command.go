package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trimline/internal/coords"
	"trimline/internal/edition"
	"trimline/internal/store"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show <track>",
		Short: "Show the editions of a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTrack(cmd, args[0], func(track *store.Track, model *edition.Model, mapper coords.Mapper) error {
				out := cmd.OutOrStdout()
				span := track.Span()
				view := coords.EditedView{Mapper: mapper, Model: model}

				editions := model.EditionsWithin(span)
				if !all {
					editions = filterChanges(editions)
				}

				fmt.Fprintf(out, "%s (%s) %s\n", track.Name, shortID(track.ID), track.Path)
				if len(editions) == 0 {
					fmt.Fprintln(out, "No edits")
				} else {
					rows := make([][]string, 0, len(editions))
					for _, e := range editions {
						ms := mapper.MillisRange(e.Range)
						rows = append(rows, []string{
							labelTitle(e.Label),
							formatInt(e.Range.Start),
							formatInt(e.Range.End),
							formatInt(e.Range.Len()),
							formatClock(mapper.DurationOf(e.Range.Start)),
							formatClock(mapper.DurationOf(e.Range.Len())),
							fmt.Sprintf("%d-%d", ms.Start, ms.End),
						})
					}
					headers := []string{"Label", "Start", "End", "Frames", "At", "Length", "Millis"}
					aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}
					fmt.Fprintln(out, renderTable(out, headers, rows, aligns, nil))
				}

				stats := model.Stats(span)
				fmt.Fprintf(out, "Original: %d frames (%s)\n", span.Len(), formatClock(mapper.DurationOf(span.Len())))
				fmt.Fprintf(out, "Cut: %d frames (%s)\n", stats.CutFrames, formatClock(mapper.DurationOf(stats.CutFrames)))
				fmt.Fprintf(out, "Muted: %d frames (%s)\n", stats.MutedFrames, formatClock(mapper.DurationOf(stats.MutedFrames)))
				edited := view.EditedRange(span).Len()
				fmt.Fprintf(out, "Edited: %d frames (%s)\n", edited, formatClock(mapper.DurationOf(edited)))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include unchanged regions")
	return cmd
}

func filterChanges(editions []edition.Edition) []edition.Edition {
	out := editions[:0:0]
	for _, e := range editions {
		if e.Label != edition.NoChange {
			out = append(out, e)
		}
	}
	return out
}
