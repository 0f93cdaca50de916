package config

import (
	"github.com/toolpact/toolpact/pkg/logger"
)

// Config holds the runtime defaults an orchestrator or embedded tool runner
// needs to resolve contracts: processor and chunk ceilings plus the roots
// used for synthesized output, temp, and log paths.
type Config struct {
	MaxNproc   int             `koanf:"max_nproc"   validate:"gte=1"`
	MaxNchunks int             `koanf:"max_nchunks" validate:"gte=1"`
	OutputDir  string          `koanf:"output_dir"`
	TmpDir     string          `koanf:"tmp_dir"     validate:"required"`
	LogDir     string          `koanf:"log_dir"`
	LogLevel   logger.LogLevel `koanf:"log_level"   validate:"oneof=debug info warn error"`
	LogJSON    bool            `koanf:"log_json"`
}

// Default returns the configuration used when no environment overrides are set.
func Default() *Config {
	return &Config{
		MaxNproc:   1,
		MaxNchunks: 24,
		OutputDir:  ".",
		TmpDir:     "/tmp",
		LogLevel:   logger.InfoLevel,
		LogJSON:    false,
	}
}
