package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"go.uber.org/zap"
)

// ConfigFileName is the well-known file in the user's home directory.
const ConfigFileName = ".spotify-status"

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "SPOTBAR_CONFIG"

// Status holds the resolved status-line settings. Every field is
// guaranteed to be usable after Load: missing, malformed or wrong-typed
// keys fall back to the tagged default individually.
type Status struct {
	// Icon prepended to the track text. The default is the Font Awesome
	// Spotify glyph as a pango-safe character reference.
	Icon string `default:"&#xf1bc;"`
	// Color is passed through verbatim as the span color attribute; the
	// bar host interprets it as a color name or hex value.
	Color string `default:"white"`
	// MaxLength bounds the track text in Unicode characters, not bytes.
	MaxLength int `default:"45"`
	// RemoveFeat strips a "(feat. ...)" fragment from the title.
	RemoveFeat bool `default:"false"`
	// FeatRegex is the pattern removed when RemoveFeat is set.
	FeatRegex string `default:"\\(feat\\. [\\w* ]*\\)"`
}

// fileStatus mirrors Status with every key left undecoded, so a bad
// value in one key cannot invalidate the others.
type fileStatus struct {
	Icon       toml.Primitive `toml:"icon"`
	Color      toml.Primitive `toml:"color"`
	MaxLength  toml.Primitive `toml:"max_length"`
	RemoveFeat toml.Primitive `toml:"remove_feat"`
	FeatRegex  toml.Primitive `toml:"feat_regex"`
}

// DefaultPath returns the config file location: $SPOTBAR_CONFIG when
// set, otherwise ~/.spotify-status. An empty string means no usable
// path, which callers treat like an absent file.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigFileName)
}

// Load resolves the status-line configuration from the file at path
// (DefaultPath() when path is empty), merging it over the defaults.
// Load never fails: an absent or unparsable file yields the defaults,
// and invalid values fall back at field granularity.
func Load(path string, logger *zap.Logger) Status {
	var cfg Status
	if err := defaults.Set(&cfg); err != nil {
		// Only reachable with a broken default tag
		logger.Warn("Failed to apply config defaults", zap.Error(err))
	}

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		logger.Warn("No home directory, using default configuration")
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read config file",
				zap.String("path", path),
				zap.Error(err))
		}
		return cfg
	}

	var raw fileStatus
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		logger.Warn("Failed to parse config file, using defaults",
			zap.String("path", path),
			zap.Error(err))
		return cfg
	}

	cfg.merge(md, raw, logger)

	logger.Debug("Configuration loaded",
		zap.String("path", path),
		zap.String("icon", cfg.Icon),
		zap.String("color", cfg.Color),
		zap.Int("maxLength", cfg.MaxLength))
	return cfg
}

// merge applies each decodable key from the file onto cfg. A key that
// is absent, has the wrong type, or carries an invalid value keeps the
// default already present in cfg.
func (cfg *Status) merge(md toml.MetaData, raw fileStatus, logger *zap.Logger) {
	if md.IsDefined("icon") {
		var s string
		if err := md.PrimitiveDecode(raw.Icon, &s); err == nil {
			cfg.Icon = s
		} else {
			logger.Warn("Invalid 'icon' value, keeping default", zap.Error(err))
		}
	}

	if md.IsDefined("color") {
		var s string
		if err := md.PrimitiveDecode(raw.Color, &s); err == nil {
			cfg.Color = s
		} else {
			logger.Warn("Invalid 'color' value, keeping default", zap.Error(err))
		}
	}

	if md.IsDefined("max_length") {
		var n int64
		if err := md.PrimitiveDecode(raw.MaxLength, &n); err == nil && n >= 0 {
			cfg.MaxLength = int(n)
		} else {
			logger.Warn("Invalid 'max_length' value, keeping default",
				zap.Int64("value", n),
				zap.Error(err))
		}
	}

	if md.IsDefined("remove_feat") {
		var b bool
		if err := md.PrimitiveDecode(raw.RemoveFeat, &b); err == nil {
			cfg.RemoveFeat = b
		} else {
			logger.Warn("Invalid 'remove_feat' value, keeping default", zap.Error(err))
		}
	}

	if md.IsDefined("feat_regex") {
		var s string
		err := md.PrimitiveDecode(raw.FeatRegex, &s)
		if err == nil {
			if _, cerr := regexp.Compile(s); cerr == nil {
				cfg.FeatRegex = s
			} else {
				logger.Warn("Invalid 'feat_regex' pattern, keeping default", zap.Error(cerr))
			}
		} else {
			logger.Warn("Invalid 'feat_regex' value, keeping default", zap.Error(err))
		}
	}
}
