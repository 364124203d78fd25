package config

const (
	defaultConfigPath       = "~/.config/trimline/config.toml"
	defaultDataDir          = "~/.local/share/trimline"
	defaultLogDir           = "~/.local/share/trimline/logs"
	defaultFramesPerPixel   = 441
	defaultFrameRate        = 44100
	defaultChunkBytes       = 16 << 10
	defaultProgressBucket   = 5
	defaultHistoryDepth     = 100
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30

	minFramesPerPixel = 20
	maxFramesPerPixel = 100_000
	minChunkBytes     = 256
	maxChunkBytes     = 16 << 20
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Timeline: Timeline{
			FramesPerPixel:   defaultFramesPerPixel,
			DefaultFrameRate: defaultFrameRate,
		},
		Playback: Playback{
			ChunkBytes:     defaultChunkBytes,
			ProgressBucket: defaultProgressBucket,
		},
		History: History{
			Depth: defaultHistoryDepth,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
