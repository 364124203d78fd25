package streamedit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"trimline/internal/edition"
	"trimline/internal/interval"
	"trimline/internal/logging"
)

const (
	// DefaultChunkSize bounds every read and write.
	DefaultChunkSize = 16 << 10
	// MaxFrameSize is the widest frame the edition domain can address without
	// byte offsets overflowing. Edition lengths are counted in frames and only
	// converted to bytes one chunk at a time.
	MaxFrameSize = 256
)

// Editor applies editions to a PCM byte stream.
type Editor struct {
	// FrameSize is the number of bytes per frame across all channels.
	FrameSize int
	// ChunkSize is rounded down to whole frames. Zero means DefaultChunkSize.
	ChunkSize int
	// OffsetFrames shifts the source against the edition timeline: positive
	// values emit that many silent frames first, negative values drop frames
	// from the start of the source.
	OffsetFrames int64
	// Progress, when set, receives the original-timeline frame position after
	// every chunk.
	Progress func(frames int64)
	Logger   *slog.Logger
}

// Result summarizes a finished or aborted run.
type Result struct {
	FramesProcessed int64
	BytesWritten    int64
}

type run struct {
	ctx    context.Context
	src    io.Reader
	dst    io.Writer
	buf    []byte
	zeros  []byte
	frame  int64
	onTick func(int64)
	res    Result
	eof    bool
}

// Apply streams src into dst according to editions, which must be ascending
// and non-overlapping. It stops early, without error, when src is exhausted.
//
// On failure the returned Result describes what was written before the
// error; dst is left as is.
func (e *Editor) Apply(ctx context.Context, src io.Reader, dst io.Writer, editions []edition.Edition) (Result, error) {
	if e.FrameSize <= 0 || e.FrameSize > MaxFrameSize {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidFrameSize, e.FrameSize)
	}
	logger := logging.NewComponentLogger(e.Logger, "streamedit")

	chunk := e.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	chunk -= chunk % e.FrameSize
	if chunk == 0 {
		chunk = e.FrameSize
	}

	r := &run{
		ctx:    ctx,
		src:    src,
		dst:    dst,
		buf:    make([]byte, chunk),
		zeros:  make([]byte, chunk),
		frame:  int64(e.FrameSize),
		onTick: e.Progress,
	}

	if err := r.applyOffset(e.OffsetFrames); err != nil {
		return r.res, err
	}

	for _, ed := range editions {
		if r.eof {
			break
		}
		length := ed.Range.Len()
		if length == 0 {
			continue
		}
		var err error
		switch ed.Label {
		case edition.Cut:
			err = r.skip(length)
		case edition.Mute:
			err = r.mute(length)
		default:
			err = r.copy(length)
		}
		if err != nil {
			logger.Debug("stream edit aborted",
				logging.String("label", ed.Label.String()),
				logging.Int64("frames_processed", r.res.FramesProcessed),
				logging.Error(err),
			)
			return r.res, err
		}
	}
	logger.Debug("stream edit finished",
		logging.Int64("frames_processed", r.res.FramesProcessed),
		logging.Int64("bytes_written", r.res.BytesWritten),
		logging.Bool("source_exhausted", r.eof),
	)
	return r.res, nil
}

func (r *run) applyOffset(offset int64) error {
	switch {
	case offset > 0:
		// Lead-in silence is not part of the original timeline.
		remaining := offset
		for remaining > 0 {
			if err := r.checkCancelled(); err != nil {
				return err
			}
			n := min(remaining, r.chunkFrames())
			if err := r.write(r.zeros[:n*r.frame]); err != nil {
				return err
			}
			remaining -= n
		}
	case offset < 0:
		// Dropped frames come before the timeline starts.
		remaining := -offset
		if remaining < 0 {
			return fmt.Errorf("%w: offset %d frames", interval.ErrRangeOverflow, offset)
		}
		for remaining > 0 && !r.eof {
			if err := r.checkCancelled(); err != nil {
				return err
			}
			n, err := r.read(remaining)
			if err != nil {
				return err
			}
			remaining -= n
		}
	}
	return nil
}

// copy passes frames through unchanged.
func (r *run) copy(frames int64) error {
	remaining := frames
	for remaining > 0 && !r.eof {
		if err := r.checkCancelled(); err != nil {
			return err
		}
		n, err := r.read(remaining)
		if err != nil {
			return err
		}
		if err := r.write(r.buf[:n*r.frame]); err != nil {
			return err
		}
		remaining -= n
		r.advance(n)
	}
	return nil
}

// mute consumes frames from the source and emits silence in their place.
func (r *run) mute(frames int64) error {
	remaining := frames
	for remaining > 0 && !r.eof {
		if err := r.checkCancelled(); err != nil {
			return err
		}
		n, err := r.read(remaining)
		if err != nil {
			return err
		}
		if err := r.write(r.zeros[:n*r.frame]); err != nil {
			return err
		}
		remaining -= n
		r.advance(n)
	}
	return nil
}

// skip drops frames from the source without producing output.
func (r *run) skip(frames int64) error {
	remaining := frames
	if seeker, ok := r.src.(io.Seeker); ok {
		if err := r.checkCancelled(); err != nil {
			return err
		}
		n, err := r.seekForward(seeker, remaining)
		if err == nil {
			r.advance(n)
			return nil
		}
		if !errors.Is(err, errUnseekable) {
			return err
		}
	}
	for remaining > 0 && !r.eof {
		if err := r.checkCancelled(); err != nil {
			return err
		}
		n, err := r.read(remaining)
		if err != nil {
			return err
		}
		remaining -= n
		r.advance(n)
	}
	return nil
}

var errUnseekable = errors.New("source not seekable")

// seekForward advances a seekable source by up to frames frames, stopping at
// the last whole frame before the end of the source. It returns the number
// of frames skipped.
func (r *run) seekForward(s io.Seeker, frames int64) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errUnseekable
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errUnseekable
	}
	avail := (end - cur) / r.frame
	if frames >= avail {
		frames = avail
		r.eof = true
	}
	if _, err := s.Seek(cur+frames*r.frame, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: seek source: %w", ErrIO, err)
	}
	return frames, nil
}

func (r *run) chunkFrames() int64 {
	return int64(len(r.buf)) / r.frame
}

// read fills the buffer with up to frames whole frames from the source,
// looping over short reads, and returns the number of frames read. A partial
// trailing frame at end of stream is discarded and marks the run exhausted.
func (r *run) read(frames int64) (int64, error) {
	n := min(frames, r.chunkFrames()) * r.frame
	got, err := io.ReadFull(r.src, r.buf[:n])
	switch {
	case err == nil:
		return int64(got) / r.frame, nil
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		r.eof = true
		return int64(got) / r.frame, nil
	default:
		return 0, fmt.Errorf("%w: read source: %w", ErrIO, err)
	}
}

// write hands p to the destination, looping over short writes.
func (r *run) write(p []byte) error {
	for len(p) > 0 {
		n, err := r.dst.Write(p)
		r.res.BytesWritten += int64(n)
		if err != nil {
			return fmt.Errorf("%w: write destination: %w", ErrIO, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: write destination: %w", ErrIO, io.ErrShortWrite)
		}
		p = p[n:]
	}
	return nil
}

func (r *run) advance(frames int64) {
	if frames == 0 {
		return
	}
	r.res.FramesProcessed += frames
	if r.onTick != nil {
		r.onTick(r.res.FramesProcessed)
	}
}

func (r *run) checkCancelled() error {
	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}
