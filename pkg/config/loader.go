package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "DOTRIG_"

	// RootConfigFile is looked up at the root of the source tree
	RootConfigFile = "dotrig.toml"

	// UserConfigFile is looked up under <config home>/dotrig/
	UserConfigFile = "config.toml"
)

// LoadOptions controls which layers are merged
type LoadOptions struct {
	// SourceRoot is where dotrig.toml is looked up. Empty skips that layer.
	SourceRoot string
	// UserConfigHome is the invoking user's config home. Empty skips that layer.
	UserConfigHome string
	// Overrides are flag values keyed by dotted config path.
	Overrides map[string]interface{}
}

// Load merges defaults, root config, user config, environment and flag
// overrides, then unmarshals and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config.loader")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Root config in the source tree, 3. the user's own config
	var files []string
	if opts.SourceRoot != "" {
		files = append(files, filepath.Join(opts.SourceRoot, RootConfigFile))
	}
	if opts.UserConfigHome != "" {
		files = append(files, filepath.Join(opts.UserConfigHome, "dotrig", UserConfigFile))
	}
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKey(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	// Unmarshal into the typed config
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps the part of an env var after the prefix to a config path:
// the first underscore separates the section, the rest stay in the key, so
// DOTRIG_WM_STATUS_REFRESH sets wm.status_refresh.
func envKey(s string) string {
	section, key, found := strings.Cut(strings.ToLower(s), "_")
	if !found {
		return section
	}
	return section + "." + key
}

// Validate checks the fields every stage relies on
func Validate(cfg *Config) error {
	required := map[string]string{
		"wm.config_dir":  cfg.WM.ConfigDir,
		"wm.config_file": cfg.WM.ConfigFile,
		"wm.fragment":    cfg.WM.Fragment,
		"wm.marker":      cfg.WM.Marker,
		"wm.directive":   cfg.WM.Directive,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return errors.Newf(errors.ErrConfigValid, "%s must not be empty", key).WithDetail("key", key)
		}
	}
	// The marker is how an existing include is recognised
	if !strings.Contains(cfg.WM.Directive, cfg.WM.Marker) {
		return errors.Newf(errors.ErrConfigValid,
			"wm.directive %q must contain wm.marker %q, otherwise it would be inserted on every run",
			cfg.WM.Directive, cfg.WM.Marker)
	}
	for i, l := range cfg.Links {
		switch types.LinkKind(l.Kind) {
		case types.LinkDirectory, types.LinkFile, types.LinkScript:
		default:
			return errors.Newf(errors.ErrConfigValid, "links[%d]: unknown kind %q", i, l.Kind)
		}
		if l.Source == "" || l.Destination == "" {
			return errors.Newf(errors.ErrConfigValid, "links[%d]: source and destination are required", i)
		}
	}
	return nil
}

// Marshal renders the effective configuration as TOML
func Marshal(cfg *Config) ([]byte, error) {
	out, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return out, nil
}
