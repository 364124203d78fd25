package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTimeline() error {
	if c.Timeline.FramesPerPixel < minFramesPerPixel || c.Timeline.FramesPerPixel > maxFramesPerPixel {
		return fmt.Errorf("timeline.frames_per_pixel must be between %d and %d", minFramesPerPixel, maxFramesPerPixel)
	}
	if c.Timeline.DefaultFrameRate <= 0 {
		return errors.New("timeline.default_frames_per_second must be positive")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.ChunkBytes < minChunkBytes || c.Playback.ChunkBytes > maxChunkBytes {
		return fmt.Errorf("playback.chunk_bytes must be between %d and %d", minChunkBytes, maxChunkBytes)
	}
	if c.Playback.ProgressBucket > 100 {
		return errors.New("playback.progress_bucket must be at most 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
