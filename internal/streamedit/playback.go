package streamedit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"trimline/internal/edition"
	"trimline/internal/interval"
	"trimline/internal/logging"
)

// ErrAlreadyStarted is returned by Start on a playback that already ran.
var ErrAlreadyStarted = errors.New("playback already started")

// Playback renders a snapshot of an edition model on a background goroutine.
type Playback struct {
	editor   Editor
	src      io.Reader
	dst      io.Writer
	editions []edition.Edition
	logger   *slog.Logger

	position atomic.Int64
	started  atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	onStop []func(Result, error)

	done   chan struct{}
	result Result
	err    error
}

// PlaybackOption configures a Playback.
type PlaybackOption func(*Playback)

// WithSpan limits playback to the editions inside span.
func WithSpan(span interval.Interval[int64]) PlaybackOption {
	return func(p *Playback) {
		clipped := make([]edition.Edition, 0, len(p.editions))
		for _, e := range p.editions {
			r := e.Range.Intersect(span)
			if !r.IsEmpty() {
				clipped = append(clipped, edition.Edition{Range: r, Label: e.Label})
			}
		}
		p.editions = clipped
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) PlaybackOption {
	return func(p *Playback) {
		p.logger = logger
	}
}

// NewPlayback snapshots model and prepares to stream src into dst with
// editor's settings. Later changes to model do not affect this playback.
// The editor's Progress callback, if any, still runs on the playback
// goroutine after Position is updated.
func NewPlayback(model *edition.Model, editor Editor, src io.Reader, dst io.Writer, opts ...PlaybackOption) *Playback {
	snapshot := model.Copy()
	p := &Playback{
		editor:   editor,
		src:      src,
		dst:      dst,
		editions: snapshot.Editions(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "playback")
	return p
}

// OnStop registers fn to run on the playback goroutine once rendering ends,
// whether it finished, failed or was stopped.
func (p *Playback) OnStop(fn func(Result, error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onStop = append(p.onStop, fn)
}

// Start begins rendering. It returns immediately.
func (p *Playback) Start(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	editor := p.editor
	userProgress := editor.Progress
	editor.Progress = func(frames int64) {
		p.position.Store(frames)
		if userProgress != nil {
			userProgress(frames)
		}
	}
	if editor.Logger == nil {
		editor.Logger = p.logger
	}

	p.logger.Debug("playback started", logging.Int("editions", len(p.editions)))
	go func() {
		defer cancel()
		res, err := editor.Apply(ctx, p.src, p.dst, p.editions)
		p.result, p.err = res, err

		p.mu.Lock()
		hooks := append([]func(Result, error){}, p.onStop...)
		p.mu.Unlock()
		for _, fn := range hooks {
			fn(res, err)
		}
		p.logger.Debug("playback stopped",
			logging.Int64("frames_processed", res.FramesProcessed),
			logging.Bool("cancelled", errors.Is(err, ErrCancelled)),
		)
		close(p.done)
	}()
	return nil
}

// Stop asks the playback goroutine to finish after the chunk in flight. It
// does not wait; use Wait for that.
func (p *Playback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// Wait blocks until rendering ends and returns its outcome. Waiting on a
// playback that was never started returns immediately with a zero Result.
func (p *Playback) Wait() (Result, error) {
	if !p.started.Load() {
		return Result{}, nil
	}
	<-p.done
	return p.result, p.err
}

// Done is closed when rendering ends.
func (p *Playback) Done() <-chan struct{} {
	return p.done
}

// Position returns the latest original-timeline frame reported by the
// editor.
func (p *Playback) Position() int64 {
	return p.position.Load()
}
