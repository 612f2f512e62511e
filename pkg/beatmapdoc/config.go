package beatmapdoc

import "github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"

type Config struct {
	// DefaultSettings supplies the grid every loaded document is moved onto
	// and the values a document leaves out.
	DefaultSettings model.ScoreSettings
	// TempDir holds the fresh file of a save before it is renamed into place.
	// Empty means the destination's directory; a different filesystem makes
	// the final rename fail.
	TempDir string
	Logger  Logger
}

type Option func(*Config)

// WithDefaultGrid sets the engine's default grid density.
func WithDefaultGrid(gridPerSignature, signature int) Option {
	return func(c *Config) {
		c.DefaultSettings.GlobalGridPerSignature = gridPerSignature
		c.DefaultSettings.GlobalSignature = signature
	}
}

func WithDefaultSettings(settings model.ScoreSettings) Option {
	return func(c *Config) {
		c.DefaultSettings = settings
	}
}

func WithTempDir(dir string) Option {
	return func(c *Config) {
		c.TempDir = dir
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func defaultConfig() *Config {
	return &Config{
		DefaultSettings: model.DefaultScoreSettings(),
		Logger:          nil,
	}
}
