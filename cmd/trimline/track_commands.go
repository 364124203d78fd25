package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trimline/internal/logging"
	"trimline/internal/media/wav"
	"trimline/internal/store"
	"trimline/internal/textutil"
)

func newTrackCommand(ctx *commandContext) *cobra.Command {
	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Register and manage source tracks",
	}
	trackCmd.AddCommand(newTrackAddCommand(ctx))
	trackCmd.AddCommand(newTrackListCommand(ctx))
	trackCmd.AddCommand(newTrackRemoveCommand(ctx))
	return trackCmd
}

func newTrackAddCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <file.wav>",
		Short: "Register a PCM WAV file as a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			f, err := wav.Open(path)
			if err != nil {
				return err
			}
			format, frames := f.Format, f.Frames()
			_ = f.Close()

			trackName := strings.TrimSpace(name)
			if trackName == "" {
				trackName = textutil.TrackNameFromPath(path)
			}

			return ctx.withStore(func(st *store.Store) error {
				track, err := st.AddTrack(cmd.Context(), store.Track{
					Name:       trackName,
					Path:       path,
					FrameRate:  int64(format.SampleRate),
					FrameSize:  int64(format.FrameSize()),
					FrameCount: frames,
				})
				if err != nil {
					return err
				}
				ctx.ensureLogger().Info("track added",
					logging.String(logging.FieldTrack, track.ID),
					logging.String("path", path),
					logging.Int64("frames", frames),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Added track %s (%s): %d frames, %s\n", track.Name, shortID(track.ID), frames, format)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Track name (defaults to the file name)")
	return cmd
}

func newTrackListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				tracks, err := st.ListTracks(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(tracks) == 0 {
					fmt.Fprintln(out, "No tracks registered")
					return nil
				}
				rows := make([][]string, 0, len(tracks))
				for _, t := range tracks {
					edits, err := editCount(cmd.Context(), st, t.ID)
					if err != nil {
						return err
					}
					duration := time.Duration(0)
					if t.FrameRate > 0 {
						duration = time.Duration(t.FrameCount) * time.Second / time.Duration(t.FrameRate)
					}
					rows = append(rows, []string{
						shortID(t.ID),
						t.Name,
						formatInt(t.FrameCount),
						formatClock(duration),
						formatInt(t.FrameRate),
						fmt.Sprintf("%d", edits),
					})
				}
				headers := []string{"ID", "Name", "Frames", "Duration", "Rate", "Edits"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns, nil))
				return nil
			})
		},
	}
}

func editCount(ctx context.Context, st *store.Store, trackID string) (int, error) {
	model, err := st.LoadModel(ctx, trackID)
	if err != nil {
		return 0, err
	}
	return len(model.Changes()), nil
}

func newTrackRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <track>",
		Aliases: []string{"remove"},
		Short:   "Forget a track and its editions (the WAV file is kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				unlock, err := acquireLock(cmd.Context(), st)
				if err != nil {
					return err
				}
				defer func() { _ = unlock() }()

				track, err := st.GetTrack(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := st.RemoveTrack(cmd.Context(), track.ID); err != nil {
					return err
				}
				ctx.ensureLogger().Info("track removed", logging.String(logging.FieldTrack, track.ID))
				fmt.Fprintf(cmd.OutOrStdout(), "Removed track %s (%s)\n", track.Name, shortID(track.ID))
				return nil
			})
		},
	}
}
