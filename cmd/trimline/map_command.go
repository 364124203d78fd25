package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"trimline/internal/coords"
	"trimline/internal/edition"
	"trimline/internal/interval"
	"trimline/internal/store"
)

func newMapCommand(ctx *commandContext) *cobra.Command {
	var (
		frame, millis, pixel int64
		edited               bool
		zoom                 int64
	)

	cmd := &cobra.Command{
		Use:   "map <track>",
		Short: "Convert between frames, milliseconds, pixels and the edited timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := 0
			for _, name := range []string{"frame", "ms", "pixel"} {
				if cmd.Flags().Changed(name) {
					set++
				}
			}
			if set != 1 {
				return errors.New("exactly one of --frame, --ms or --pixel is required")
			}

			return ctx.withTrack(cmd, args[0], func(track *store.Track, model *edition.Model, mapper coords.Mapper) error {
				if zoom > 0 {
					mapper = mapper.WithFramesPerPixel(zoom)
				}
				view := coords.EditedView{Mapper: mapper, Model: model}

				var raw int64
				switch {
				case cmd.Flags().Changed("frame"):
					raw = frame
				case cmd.Flags().Changed("ms"):
					raw = mapper.FrameOfMillis(millis)
				default:
					raw = mapper.FrameOf(pixel)
				}
				if edited {
					raw = view.RawFrame(raw)
				}

				editedFrame := view.EditedFrame(raw)
				px := mapper.PixelOf(raw)
				pixelFrames := mapper.FrameRange(interval.New(px, px))
				rows := [][]string{
					{"Raw frame", formatInt(raw)},
					{"Label", labelTitle(model.LabelAt(raw))},
					{"Millis", formatInt(mapper.MillisOf(raw))},
					{"Time", formatClock(mapper.DurationOf(raw))},
					{"Pixel", formatInt(px)},
					{"Pixel frames", pixelFrames.String()},
					{"Edited frame", formatInt(editedFrame)},
					{"Edited millis", formatInt(view.EditedMillis(raw))},
					{"Edited pixel", formatInt(mapper.PixelOf(editedFrame))},
					{"Frames per pixel", formatInt(mapper.FramesPerPixel())},
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight}, nil))
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&frame, "frame", 0, "Raw frame index")
	cmd.Flags().Int64Var(&millis, "ms", 0, "Position in milliseconds")
	cmd.Flags().Int64Var(&pixel, "pixel", 0, "Waveform pixel column")
	cmd.Flags().BoolVar(&edited, "edited", false, "Treat the input as a position on the edited timeline")
	cmd.Flags().Int64Var(&zoom, "zoom", 0, "Frames per pixel (defaults to timeline.frames_per_pixel)")
	return cmd
}
