package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"trimline/internal/coords"
	"trimline/internal/edition"
	"trimline/internal/fileutil"
	"trimline/internal/logging"
	"trimline/internal/media/wav"
	"trimline/internal/preflight"
	"trimline/internal/store"
	"trimline/internal/streamedit"
	"trimline/internal/textutil"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		output string
		force  bool
		offset int64
	)

	cmd := &cobra.Command{
		Use:   "render <track>",
		Short: "Write the edited audio of a track to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withTrack(cmd, args[0], func(track *store.Track, model *edition.Model, mapper coords.Mapper) error {
				if check := preflight.CheckTrackSource(track); !check.Passed {
					return fmt.Errorf("source check failed: %s", check.Detail)
				}
				src, err := wav.Open(track.Path)
				if err != nil {
					return err
				}
				defer src.Close()

				target := output
				if target == "" {
					target = filepath.Join(filepath.Dir(track.Path), textutil.EditedFileName(track.Name))
				}
				target, err = filepath.Abs(target)
				if err != nil {
					return fmt.Errorf("resolve output: %w", err)
				}
				if target == track.Path {
					return errors.New("refusing to overwrite the source track")
				}
				dst, err := fileutil.CreateAtomic(target, force)
				if err != nil {
					return err
				}
				defer dst.Abort()

				// Placeholder header; rewritten once the data length is known.
				if err := wav.WriteHeader(dst, src.Format, 0); err != nil {
					return err
				}

				logger := logging.NewComponentLogger(ctx.ensureLogger(), "render").With(logging.String(logging.FieldTrack, track.ID))
				sampler := logging.NewProgressSampler(cfg.Playback.ProgressBucket)
				total := track.FrameCount
				editor := streamedit.Editor{
					FrameSize:    src.Format.FrameSize(),
					ChunkSize:    cfg.Playback.ChunkBytes,
					OffsetFrames: offset,
					Logger:       logger,
					Progress: func(frames int64) {
						percent := logging.Percent(frames, total)
						if sampler.ShouldLog(percent, "render") {
							logger.Info("render progress",
								logging.Float64("percent", percent),
								logging.Int64("frame", frames),
							)
						}
					},
				}

				started := time.Now()
				playback := streamedit.NewPlayback(model, editor, src.Data, dst,
					streamedit.WithSpan(track.Span()),
					streamedit.WithLogger(logger),
				)
				if err := playback.Start(cmd.Context()); err != nil {
					return err
				}
				res, runErr := playback.Wait()

				if err := finalizeHeader(dst, src.Format, res.BytesWritten); err != nil && runErr == nil {
					runErr = err
				}
				if runErr != nil {
					logger.Warn("render stopped",
						logging.Int64("frame", playback.Position()),
						logging.Error(runErr),
					)
					if errors.Is(runErr, streamedit.ErrCancelled) {
						fmt.Fprintf(cmd.ErrOrStderr(), "Render cancelled at frame %d; %s was not written\n", playback.Position(), target)
					}
					return runErr
				}
				if err := dst.Commit(wav.HeaderSize + res.BytesWritten); err != nil {
					return err
				}

				frames := res.BytesWritten / int64(src.Format.FrameSize())
				logger.Info("render complete",
					logging.Int64("frames_written", frames),
					logging.Duration("elapsed", time.Since(started)),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s to %s: %d frames (%s)\n",
					track.Name, target, frames, formatClock(mapper.DurationOf(frames)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination WAV file (defaults to <name>-edited.wav beside the source)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite the destination if it exists")
	cmd.Flags().Int64Var(&offset, "offset", 0, "Shift the source against the edit timeline by this many frames")
	return cmd
}

func finalizeHeader(dst io.WriteSeeker, format wav.Format, dataLen int64) error {
	if _, err := dst.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind output: %w", err)
	}
	return wav.WriteHeader(dst, format, dataLen)
}
