package cli

import (
	goerrors "errors"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/eborriello/genfigs/pkg/catalog"
	"github.com/eborriello/genfigs/pkg/errors"
	"github.com/eborriello/genfigs/pkg/figure/sink"
)

// defaultConfigFile is read from the working directory when --config is not
// given. It is optional.
const defaultConfigFile = "genfigs.toml"

// Config is the contents of genfigs.toml. Flags override it; it overrides
// the catalog defaults.
type Config struct {
	DataDir string `toml:"data_dir"`
	OutDir  string `toml:"out_dir"`
	Format  string `toml:"format"`
	DPI     int    `toml:"dpi"`
	Show    bool   `toml:"show"`
	Jobs    int    `toml:"jobs"`

	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`

	Figures map[string]FigureConfig `toml:"figures"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	// Prefix namespaces Redis keys.
	Prefix string `toml:"prefix"`
	// Namespace scopes cache keys in any backend, e.g. per CI branch.
	Namespace string `toml:"namespace"`
	// TTL is a Go duration ("720h").
	TTL duration `toml:"ttl"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// FigureConfig overrides the paths of one figure.
type FigureConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
}

// duration decodes TOML strings such as "36h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// loadConfig reads path. An empty path reads defaultConfigFile if it exists
// and returns the zero Config otherwise.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && goerrors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Format != "" {
		if _, err := sink.ParseFormat(c.Format); err != nil {
			return err
		}
	}
	if c.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "jobs must not be negative")
	}
	if c.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	for id, fc := range c.Figures {
		if _, ok := catalog.Lookup(id); !ok {
			return errors.New(errors.ErrCodeFigureNotFound, "figures.%s: unknown figure", id)
		}
		for _, p := range []string{fc.Input, fc.Output} {
			if p == "" {
				continue
			}
			if err := errors.ValidateRelative(p); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "figures.%s", id)
			}
		}
	}
	return nil
}

// figure returns the overrides for the catalog figure id.
func (c Config) figure(id string) FigureConfig {
	s, ok := catalog.Lookup(id)
	if !ok {
		return FigureConfig{}
	}
	for key, fc := range c.Figures {
		if other, ok := catalog.Lookup(key); ok && other.ID == s.ID {
			return fc
		}
	}
	return FigureConfig{}
}
