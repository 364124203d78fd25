package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"trimline/internal/coords"
	"trimline/internal/edition"
	"trimline/internal/history"
	"trimline/internal/interval"
	"trimline/internal/logging"
	"trimline/internal/transcript"
)

type rangeFlags struct {
	unit       string
	edited     bool
	word       int
	transcript string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.unit, "unit", "u", "frames", "Unit of start/end: frames or ms")
	cmd.Flags().BoolVar(&f.edited, "edited", false, "Interpret start/end on the edited timeline (after cuts)")
	cmd.Flags().IntVar(&f.word, "word", -1, "Select the range of transcript word N instead of start/end")
	cmd.Flags().StringVar(&f.transcript, "transcript", "", "WhisperX JSON transcript used with --word")
}

// resolve returns the raw-timeline frame range named by args and flags.
func (f *rangeFlags) resolve(args []string, s *trackSession) (interval.Interval[int64], error) {
	var r interval.Interval[int64]
	switch {
	case f.word >= 0:
		if len(args) != 0 {
			return r, errors.New("--word cannot be combined with start/end")
		}
		if f.transcript == "" {
			return r, errors.New("--word requires --transcript")
		}
		words, err := transcript.LoadWhisperXFile(f.transcript)
		if err != nil {
			return r, err
		}
		if f.word >= len(words) {
			return r, fmt.Errorf("word %d out of range (transcript has %d words)", f.word, len(words))
		}
		r = transcript.FrameRangeOf(words[f.word], s.mapper)
	case len(args) == 2:
		u, err := parseUnit(f.unit)
		if err != nil {
			return r, err
		}
		r, err = parseRange(args[0], args[1], u, s.mapper)
		if err != nil {
			return r, err
		}
		if f.edited {
			r = coords.EditedView{Mapper: s.mapper, Model: s.model}.RawRange(r)
		}
	default:
		return r, errors.New("expected <start> <end> or --word N --transcript FILE")
	}

	span := s.track.Span()
	clamped := r.Clamp(span)
	if clamped.IsEmpty() {
		return r, fmt.Errorf("range %s lies outside track %s %s", r, s.track.Name, span)
	}
	return clamped, nil
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Label regions of a track",
	}
	editCmd.AddCommand(newLabelCommand(ctx, "cut", "Remove a region from the edited output", edition.Cut))
	editCmd.AddCommand(newLabelCommand(ctx, "mute", "Replace a region with silence", edition.Mute))
	editCmd.AddCommand(newLabelCommand(ctx, "restore", "Return a region to its original audio", edition.NoChange))
	editCmd.AddCommand(newResetCommand(ctx))
	return editCmd
}

func newLabelCommand(ctx *commandContext, use, short string, label edition.Label) *cobra.Command {
	flags := &rangeFlags{}
	cmd := &cobra.Command{
		Use:   use + " <track> [<start> <end>]",
		Short: short,
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTrackEdit(cmd, args[0], func(s *trackSession) error {
				r, err := flags.resolve(args[1:], s)
				if err != nil {
					return err
				}
				preview := s.model.Copy()
				preview.Apply(r, label)
				if preview.Equal(s.model) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already %s on %s\n", r, labelTitle(label), s.track.Name)
					return nil
				}
				if err := s.history.Record(s.ctx, s.model, preview); err != nil {
					return err
				}
				s.model.Load(preview)
				s.logger.Info("region labelled",
					logging.String(logging.FieldOperation, use),
					logging.String("label", label.String()),
					logging.Int64("start", r.Start),
					logging.Int64("end", r.End),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s (%d frames, %s)\n",
					labelTitle(label), r, s.track.Name, r.Len(), formatClock(s.mapper.DurationOf(r.Len())))
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <track>",
		Short: "Clear every cut and mute on a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTrackEdit(cmd, args[0], func(s *trackSession) error {
				if s.model.IsPristine() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s has no edits\n", s.track.Name)
					return nil
				}
				before := s.model.Copy()
				s.model.Reset()
				if err := s.history.Record(s.ctx, before, s.model); err != nil {
					return err
				}
				s.logger.Info("editions reset", logging.String(logging.FieldOperation, "reset"))
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", s.track.Name)
				return nil
			})
		},
	}
}

func newUndoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <track>",
		Short: "Revert the last edit on a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTrackEdit(cmd, args[0], func(s *trackSession) error {
				if err := s.history.Undo(s.ctx, s.model); err != nil {
					if errors.Is(err, history.ErrNothingToUndo) {
						return fmt.Errorf("%s: %w", s.track.Name, err)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Undid last edit on %s\n", s.track.Name)
				return nil
			})
		},
	}
}

func newRedoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "redo <track>",
		Short: "Reapply the last undone edit on a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withTrackEdit(cmd, args[0], func(s *trackSession) error {
				if err := s.history.Redo(s.ctx, s.model); err != nil {
					if errors.Is(err, history.ErrNothingToRedo) {
						return fmt.Errorf("%s: %w", s.track.Name, err)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Redid last edit on %s\n", s.track.Name)
				return nil
			})
		},
	}
}
