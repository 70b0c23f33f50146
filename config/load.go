package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/lcapgen/errors"
)

var globalConfig *Config
var viperInstance *viper.Viper

// explicitConfig is set by --config and replaces the file cascade
var explicitConfig string

// SetConfigFile pins a single config file, bypassing the user/project search.
// Must be called before the first Load.
func SetConfigFile(path string) {
	explicitConfig = path
	Reset()
}

// Load reads the lcapgen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the Viper instance so commands can bind flags onto it
func GetViper() (*viper.Viper, error) {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific TOML file over the defaults
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	return LoadWithViper(v)
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()

	v.SetEnvPrefix("LCAPGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if explicitConfig != "" {
		v.SetConfigFile(explicitConfig)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", explicitConfig)
		}
	} else if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

// Source describes one config file in the cascade
type Source struct {
	Path   string
	Exists bool
}

// Sources lists the config files consulted, lowest precedence first
func Sources() []Source {
	if explicitConfig != "" {
		_, err := os.Stat(explicitConfig)
		return []Source{{Path: explicitConfig, Exists: err == nil}}
	}

	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".lcapgen", "config.toml"))
	}
	if project := findProjectConfig(); project != "" {
		paths = append(paths, project)
	} else if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, ProjectConfigName))
	}

	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		_, err := os.Stat(p)
		sources = append(sources, Source{Path: p, Exists: err == nil})
	}
	return sources
}

// findProjectConfig searches for lcapgen.toml by walking up the directory tree
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// mergeConfigFiles merges configuration files in precedence order (user < project)
func mergeConfigFiles(v *viper.Viper) error {
	for _, src := range Sources() {
		if !src.Exists {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(src.Path)
		tempViper.SetConfigType("toml")

		if err := tempViper.ReadInConfig(); err != nil {
			return errors.WithHintf(
				errors.Wrapf(err, "failed to parse %s", src.Path),
				"fix or remove %s", src.Path)
		}

		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			return errors.Wrapf(err, "failed to merge %s", src.Path)
		}
	}
	return nil
}
