package config

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/swotboard/internal/locale"
	"github.com/dshills/swotboard/internal/logging"
	"github.com/dshills/swotboard/internal/store"
)

// ErrTagInvalidConfig marks configuration that cannot be used.
var ErrTagInvalidConfig = goerr.NewTag("invalid_config")

// Environment variables that override the file.
const (
	EnvConfig    = "SWOT_CONFIG"
	EnvStore     = "SWOT_STORE"
	EnvStorePath = "SWOT_STORE_PATH"
	EnvLocale    = "SWOT_LOCALE"
	EnvLogLevel  = "SWOT_LOG_LEVEL"
	EnvLogFormat = "SWOT_LOG_FORMAT"
)

// Config is the YAML configuration file, after environment overrides.
type Config struct {
	Store struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		Key     string `yaml:"key"`
	} `yaml:"store"`

	Locale string `yaml:"locale"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	cfg.Store.Backend = "file"
	cfg.Store.Path = defaultDataDir()
	cfg.Store.Key = store.DefaultKey
	cfg.Locale = "en"
	cfg.Log.Level = "warn"
	cfg.Log.Format = "auto"
	cfg.Export.Dir = "."
	return &cfg
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".swot"
	}
	return filepath.Join(dir, "swot")
}

// Path resolves the config file location: explicit path, then $SWOT_CONFIG, then
// swot/config.yaml under the user config directory.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// Load reads the YAML file at path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, goerr.Wrap(err, "failed to read configuration file",
				goerr.V("path", path), goerr.T(ErrTagInvalidConfig))
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, goerr.Wrap(err, "failed to parse YAML configuration",
					goerr.V("path", path), goerr.T(ErrTagInvalidConfig))
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		EnvStore:     &c.Store.Backend,
		EnvStorePath: &c.Store.Path,
		EnvLocale:    &c.Locale,
		EnvLogLevel:  &c.Log.Level,
		EnvLogFormat: &c.Log.Format,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

// Validate rejects unknown backends, locales, levels and formats.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "file", "sqlite", "memory":
	default:
		return goerr.New("unknown store backend",
			goerr.V("backend", c.Store.Backend), goerr.T(ErrTagInvalidConfig))
	}
	if c.Store.Backend != "memory" && c.Store.Path == "" {
		return goerr.New("store path is required",
			goerr.V("backend", c.Store.Backend), goerr.T(ErrTagInvalidConfig))
	}
	if _, err := locale.Get(c.Locale); err != nil {
		return goerr.Wrap(err, "invalid locale", goerr.T(ErrTagInvalidConfig))
	}
	if !logging.ValidLevel(c.Log.Level) {
		return goerr.New("unknown log level",
			goerr.V("level", c.Log.Level), goerr.T(ErrTagInvalidConfig))
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return goerr.Wrap(err, "invalid log format", goerr.T(ErrTagInvalidConfig))
	}
	return nil
}

// StorePath returns the backend location. sqlite gets a database file inside the
// configured directory unless the path already names a file.
func (c *Config) StorePath() string {
	if c.Store.Backend == "sqlite" && filepath.Ext(c.Store.Path) == "" {
		return filepath.Join(c.Store.Path, "swot.db")
	}
	return c.Store.Path
}
