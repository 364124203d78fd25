package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"trimline/internal/config"
	"trimline/internal/coords"
	"trimline/internal/edition"
	"trimline/internal/history"
	"trimline/internal/logging"
	"trimline/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger on first use and prunes expired log
// files. Logger failures fall back to stderr only.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
		}
		c.logger = logger
		logging.CleanupOldLogs(logger, cfg.Paths.LogDir, "trimline-*.log", logging.LogFileName(time.Now()), cfg.Logging.RetentionDays)
	})
	return c.logger
}

func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// mapperFor builds the coordinate mapper for a track at the configured zoom.
func (c *commandContext) mapperFor(track *store.Track) (coords.Mapper, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return coords.Mapper{}, err
	}
	rate := track.FrameRate
	if rate <= 0 {
		rate = cfg.Timeline.DefaultFrameRate
	}
	return coords.NewMapper(rate, cfg.Timeline.FramesPerPixel)
}

const lockWait = 5 * time.Second

func acquireLock(ctx context.Context, st *store.Store) (func() error, error) {
	lockCtx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()
	return st.Lock(lockCtx)
}

// trackSession is a locked, loaded view of one track for commands that change
// its editions.
type trackSession struct {
	ctx     context.Context
	store   *store.Store
	track   *store.Track
	model   *edition.Model
	history *history.Persisted
	mapper  coords.Mapper
	logger  *slog.Logger
}

// withTrackEdit locks the database, loads the track's model and runs fn.
// fn persists any change through the session history, which writes the
// editions and the undo stacks in one transaction.
func (c *commandContext) withTrackEdit(cmd *cobra.Command, ref string, fn func(*trackSession) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return c.withStore(func(st *store.Store) error {
		unlock, err := acquireLock(ctx, st)
		if err != nil {
			return err
		}
		defer func() { _ = unlock() }()

		track, err := st.GetTrack(ctx, ref)
		if err != nil {
			return err
		}
		model, err := st.LoadModel(ctx, track.ID)
		if err != nil {
			return err
		}
		mapper, err := c.mapperFor(track)
		if err != nil {
			return err
		}
		logger := logging.NewComponentLogger(c.ensureLogger(), "cli").With(logging.String(logging.FieldTrack, track.ID))
		session := &trackSession{
			ctx:     ctx,
			store:   st,
			track:   track,
			model:   model,
			history: history.NewPersisted(st, track.ID, cfg.History.Depth),
			mapper:  mapper,
			logger:  logger,
		}

		before := model.Copy()
		if err := fn(session); err != nil {
			return err
		}
		if !model.Equal(before) {
			logger.Info("editions saved", logging.Int("changes", len(model.Changes())))
		}
		return nil
	})
}

// withTrack loads a track and its model without taking the write lock.
func (c *commandContext) withTrack(cmd *cobra.Command, ref string, fn func(*store.Track, *edition.Model, coords.Mapper) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return c.withStore(func(st *store.Store) error {
		track, err := st.GetTrack(ctx, ref)
		if err != nil {
			return err
		}
		model, err := st.LoadModel(ctx, track.ID)
		if err != nil {
			return fmt.Errorf("load editions for %s: %w", track.Name, err)
		}
		mapper, err := c.mapperFor(track)
		if err != nil {
			return err
		}
		return fn(track, model, mapper)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
