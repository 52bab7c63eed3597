package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	doerrors "github.com/dotyhq/doty/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix marks environment variables that override configuration keys,
// e.g. DOTY_REPO or DOTY_LOG_FILE.
const EnvPrefix = "DOTY_"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the effective doty configuration.
type Config struct {
	Home     string `koanf:"home" toml:"home"`
	Repo     string `koanf:"repo" toml:"repo"`
	Manifest string `koanf:"manifest" toml:"manifest"`
	Commit   bool   `koanf:"commit" toml:"commit"`
	Color    string `koanf:"color" toml:"color"`
	LogFile  string `koanf:"log_file" toml:"log_file"`
}

// LoadOptions selects the config file and carries flag overrides, keyed
// by the koanf names of Config fields.
type LoadOptions struct {
	// ConfigFile replaces the default $XDG_CONFIG_HOME/doty/config.toml.
	// A missing default file is ignored; a missing explicit file is not.
	ConfigFile string
	Overrides  map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DefaultConfigFile is where the user config lives unless overridden.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "doty", "config.toml")
}

// Load builds the configuration from all layers.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, doerrors.Wrap(err, doerrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, doerrors.Wrapf(err, doerrors.ErrConfigLoad, "failed to load config from %s", path)
		}
	} else if explicit {
		return nil, doerrors.Wrapf(err, doerrors.ErrConfigLoad, "config file %s not found", path)
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, doerrors.Wrap(err, doerrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, doerrors.Wrap(err, doerrors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, doerrors.Wrap(err, doerrors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	// 6. Post-process
	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func postProcessConfig(cfg *Config) error {
	if cfg.Home == "" {
		cfg.Home = xdg.Home
	}
	cfg.Home = filepath.Clean(expandHome(cfg.Home, xdg.Home))

	if cfg.Repo == "" {
		cfg.Repo = filepath.Join(cfg.Home, "dotfiles")
	}
	cfg.Repo = expandHome(cfg.Repo, cfg.Home)
	if !filepath.IsAbs(cfg.Repo) {
		abs, err := filepath.Abs(cfg.Repo)
		if err != nil {
			return doerrors.Wrapf(err, doerrors.ErrConfigValid, "cannot resolve repo %s", cfg.Repo)
		}
		cfg.Repo = abs
	}
	cfg.Repo = filepath.Clean(cfg.Repo)

	if cfg.Manifest == "" {
		return doerrors.New(doerrors.ErrConfigValid, "manifest path must not be empty")
	}
	if filepath.IsAbs(cfg.Manifest) {
		return doerrors.Newf(doerrors.ErrConfigValid, "manifest path %s must be relative to the repo", cfg.Manifest)
	}

	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	switch cfg.Color {
	case "":
		cfg.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return doerrors.Newf(doerrors.ErrConfigValid, "color must be one of auto, always or never, got %q", cfg.Color)
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(xdg.StateHome, "doty", "doty.log")
	}
	cfg.LogFile = expandHome(cfg.LogFile, cfg.Home)
	return nil
}

func expandHome(p, home string) string {
	switch {
	case p == "~":
		return home
	case strings.HasPrefix(p, "~/"):
		return filepath.Join(home, p[2:])
	}
	return p
}

// ManifestPath is the absolute manifest location.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Repo, c.Manifest)
}

func (c *Config) String() string {
	return fmt.Sprintf("home=%s repo=%s manifest=%s", c.Home, c.Repo, c.Manifest)
}
