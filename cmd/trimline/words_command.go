package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"trimline/internal/coords"
	"trimline/internal/edition"
	"trimline/internal/store"
	"trimline/internal/transcript"
)

func newWordsCommand(ctx *commandContext) *cobra.Command {
	var (
		path  string
		state string
	)

	cmd := &cobra.Command{
		Use:   "words <track>",
		Short: "Show transcript words with their state under the current edits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return errors.New("--transcript is required")
			}
			words, err := transcript.LoadWhisperXFile(path)
			if err != nil {
				return err
			}
			return ctx.withTrack(cmd, args[0], func(track *store.Track, model *edition.Model, mapper coords.Mapper) error {
				synced := transcript.Synchronize(words, model.Editions(), mapper)
				out := cmd.OutOrStdout()

				rows := make([][]string, 0, len(synced))
				for i, w := range synced {
					if state != "" && w.State.String() != state {
						continue
					}
					frames := transcript.FrameRangeOf(w, mapper)
					rows = append(rows, []string{
						fmt.Sprintf("%d", i),
						formatInt(w.Range.Start),
						formatInt(w.Range.End),
						frames.String(),
						w.Text,
						stateTitle(w.State),
					})
				}
				headers := []string{"#", "Start ms", "End ms", "Frames", "Word", "State"}
				aligns := []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft}
				if len(rows) > 0 {
					fmt.Fprintln(out, renderTable(out, headers, rows, aligns, nil))
				}

				counts := transcript.Counts(synced)
				fmt.Fprintf(out, "%d words: %d presented, %d muted, %d excluded\n",
					len(synced), counts[transcript.Presented], counts[transcript.Muted], counts[transcript.Excluded])
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&path, "transcript", "t", "", "WhisperX JSON transcript")
	cmd.Flags().StringVar(&state, "state", "", "Only list words in this state (presented, muted, excluded)")
	return cmd
}
