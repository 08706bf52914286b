// Config loading for the hexnum CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hexnum/patterncache"
	"github.com/katalvlaran/hexnum/search"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	configDirName  = ".hexnum"
	envPrefix      = "HEXNUM"

	cfgKeySeed         = "seed"
	cfgKeyMaxAttempts  = "max_attempts"
	cfgKeyMaxDepth     = "max_depth"
	cfgKeyTolerance    = "tolerance"
	cfgKeyOutput       = "output"
	cfgKeyMemoryCache  = "memory_cache"
	cfgKeyCacheBackend = "cache.backend"
	cfgKeyCachePath    = "cache.path"
	cfgKeyLogLevel     = "log.level"
	cfgKeyLogFormat    = "log.format"
	cfgKeyMetricsAddr  = "metrics.addr"

	// backendNone disables the persistent cache.
	backendNone = "none"
)

// flagKeys binds persistent flag names to config keys.
var flagKeys = map[string]string{
	"seed":          cfgKeySeed,
	"max-attempts":  cfgKeyMaxAttempts,
	"max-depth":     cfgKeyMaxDepth,
	"tolerance":     cfgKeyTolerance,
	"output":        cfgKeyOutput,
	"cache-backend": cfgKeyCacheBackend,
	"cache-path":    cfgKeyCachePath,
	"log-level":     cfgKeyLogLevel,
	"log-format":    cfgKeyLogFormat,
	"metrics-addr":  cfgKeyMetricsAddr,
}

// Config is the resolved CLI configuration. Precedence: flag, HEXNUM_*
// environment, config.yaml, built-in default.
type Config struct {
	Seed        int64         `mapstructure:"seed" yaml:"seed"`
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	MaxDepth    int           `mapstructure:"max_depth" yaml:"max_depth"`
	Tolerance   float64       `mapstructure:"tolerance" yaml:"tolerance"`
	Output      string        `mapstructure:"output" yaml:"output"`
	MemoryCache int           `mapstructure:"memory_cache" yaml:"memory_cache"`
	Cache       CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Log         LogConfig     `mapstructure:"log" yaml:"log"`
	Metrics     MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// CacheConfig selects the pattern cache. A relative Path is resolved against
// the config directory; an empty one picks a per-backend default name.
type CacheConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

func defaultConfig() Config {
	return Config{
		MaxAttempts: search.DefaultMaxAttempts,
		MaxDepth:    search.DefaultMaxDepth,
		Tolerance:   search.DefaultTolerance,
		Output:      outputText,
		MemoryCache: search.DefaultCacheSize,
		Cache:       CacheConfig{Backend: "text"},
		Log:         LogConfig{Level: "warn", Format: "text"},
	}
}

// resolveConfigDir returns --config-dir, else HEXNUM_CONFIG_DIR, else
// $(CWD)/.hexnum.
func resolveConfigDir(flagDir string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if env := os.Getenv(envPrefix + "_CONFIG_DIR"); env != "" {
		return env, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(cwd, configDirName), nil
}

// loadConfig reads config.yaml from configDir, writing a default one on
// first run, and layers environment and the flags of cmd on top.
func loadConfig(configDir string, cmd *cobra.Command) (Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	def := defaultConfig()
	v.SetDefault(cfgKeySeed, def.Seed)
	v.SetDefault(cfgKeyMaxAttempts, def.MaxAttempts)
	v.SetDefault(cfgKeyMaxDepth, def.MaxDepth)
	v.SetDefault(cfgKeyTolerance, def.Tolerance)
	v.SetDefault(cfgKeyOutput, def.Output)
	v.SetDefault(cfgKeyMemoryCache, def.MemoryCache)
	v.SetDefault(cfgKeyCacheBackend, def.Cache.Backend)
	v.SetDefault(cfgKeyCachePath, def.Cache.Path)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	v.SetDefault(cfgKeyLogFormat, def.Log.Format)
	v.SetDefault(cfgKeyMetricsAddr, def.Metrics.Addr)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.MaxAttempts < 1:
		return fmt.Errorf("max_attempts must be positive, got %d", c.MaxAttempts)
	case c.MaxDepth < 0:
		return fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth)
	case c.Tolerance < 0:
		return fmt.Errorf("tolerance must be non-negative, got %v", c.Tolerance)
	case c.MemoryCache < 0:
		return fmt.Errorf("memory_cache must be non-negative, got %d", c.MemoryCache)
	}
	if err := checkOutput(c.Output); err != nil {
		return err
	}
	if c.Cache.Backend != backendNone && !slices.Contains(patterncache.Backends, c.Cache.Backend) {
		return fmt.Errorf("cache.backend %q is not one of %s, %s",
			c.Cache.Backend, strings.Join(patterncache.Backends, ", "), backendNone)
	}
	return nil
}

// ensureDefaultConfigFile writes the default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	body, err := yaml.Marshal(defaultConfig())
	if err != nil {
		return err
	}
	header := "# hexnum configuration. Flags and HEXNUM_* variables override these keys.\n" +
		"# cache.backend: text | sqlite | badger | none\n"
	return os.WriteFile(path, append([]byte(header), body...), 0o644)
}
