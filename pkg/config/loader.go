package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/toolpact/toolpact/pkg/logger"
)

// EnvPrefix is the environment namespace, e.g. TOOLPACT_MAX_NPROC.
const EnvPrefix = "TOOLPACT_"

type loader struct {
	koanf    *koanf.Koanf
	validate *validator.Validate
}

// Load builds the runtime configuration from defaults overlaid with
// TOOLPACT_* environment variables.
func Load() (*Config, error) {
	l := &loader{
		koanf:    koanf.New("."),
		validate: validator.New(),
	}
	if err := l.loadDefaults(); err != nil {
		return nil, err
	}
	if err := l.loadEnvironment(); err != nil {
		return nil, err
	}
	return l.unmarshalAndValidate()
}

func (l *loader) loadDefaults() error {
	if err := l.koanf.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	return nil
}

// transformEnvKey converts TOOLPACT_MAX_NPROC to max_nproc.
func transformEnvKey(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
}

func (l *loader) loadEnvironment() error {
	if err := l.koanf.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(key), value
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

func logLevelDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(logger.LogLevel("")) {
		return data, nil
	}
	if s, ok := data.(string); ok {
		return logger.LogLevel(strings.ToLower(s)), nil
	}
	return data, nil
}

func (l *loader) unmarshalAndValidate() (*Config, error) {
	var cfg Config
	if err := l.koanf.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(logLevelDecodeHook),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if cfg.LogDir == "" {
		cfg.LogDir = cfg.OutputDir
	}
	if err := l.validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}
