// Package config loads lcapgen settings with Viper.
//
// Sources, lowest to highest precedence:
//
//	defaults < ~/.lcapgen/config.toml < ./lcapgen.toml (searched upward) < LCAPGEN_* env < CLI flags
package config

import "path/filepath"

// Config represents the lcapgen configuration
type Config struct {
	Framework     string   `mapstructure:"framework" toml:"framework" json:"framework" yaml:"framework" validate:"required"`
	Root          string   `mapstructure:"root" toml:"root" json:"root" yaml:"root" validate:"required"`
	Input         string   `mapstructure:"input" toml:"input" json:"input" yaml:"input" validate:"required"`
	PackageFile   string   `mapstructure:"package_file" toml:"package_file" json:"package_file" yaml:"package_file" validate:"required"`
	ComponentsDir string   `mapstructure:"components_dir" toml:"components_dir" json:"components_dir" yaml:"components_dir" validate:"required"`
	IndexFile     string   `mapstructure:"index_file" toml:"index_file" json:"index_file" yaml:"index_file" validate:"required,excludesall=/\\"`
	ComponentType string   `mapstructure:"component_type" toml:"component_type" json:"component_type" yaml:"component_type" validate:"required"`
	TagPrefixes   []string `mapstructure:"tag_prefixes" toml:"tag_prefixes" json:"tag_prefixes" yaml:"tag_prefixes" validate:"dive,required"`

	Templates TemplatesConfig `mapstructure:"templates" toml:"templates" json:"templates" yaml:"templates"`
	Cleanup   CleanupConfig   `mapstructure:"cleanup" toml:"cleanup" json:"cleanup" yaml:"cleanup"`
	Extract   ExtractConfig   `mapstructure:"extract" toml:"extract" json:"extract" yaml:"extract"`
	Journal   JournalConfig   `mapstructure:"journal" toml:"journal" json:"journal" yaml:"journal"`
	Git       GitConfig       `mapstructure:"git" toml:"git" json:"git" yaml:"git"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
	Log       LogConfig       `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// TemplatesConfig locates the <framework>-component template folders
type TemplatesConfig struct {
	Dir    string `mapstructure:"dir" toml:"dir" json:"dir" yaml:"dir" validate:"required"`
	Source string `mapstructure:"source" toml:"source" json:"source" yaml:"source"` // go-getter URL, optional //subdir; replaces Dir when set
}

// CleanupConfig names the runtime identifiers the cleanup pipeline emits
type CleanupConfig struct {
	MixinsFlag       string `mapstructure:"mixins_flag" toml:"mixins_flag" json:"mixins_flag" yaml:"mixins_flag" validate:"required"`
	DataSourceHelper string `mapstructure:"data_source_helper" toml:"data_source_helper" json:"data_source_helper" yaml:"data_source_helper" validate:"required"`
}

// ExtractConfig configures conversion of a host dump into components.json
type ExtractConfig struct {
	AppName  string   `mapstructure:"app_name" toml:"app_name" json:"app_name" yaml:"app_name"`
	Frontend string   `mapstructure:"frontend" toml:"frontend" json:"frontend" yaml:"frontend" validate:"required"`
	Deny     []string `mapstructure:"deny" toml:"deny" json:"deny" yaml:"deny"`
	Prefix   string   `mapstructure:"prefix" toml:"prefix" json:"prefix" yaml:"prefix"`
	Output   string   `mapstructure:"output" toml:"output" json:"output" yaml:"output" validate:"required"`
}

// JournalConfig configures the sqlite run history
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" toml:"path" json:"path" yaml:"path" validate:"required_if=Enabled true"`
}

// GitConfig controls the dirty-tree warning before a component folder is replaced
type GitConfig struct {
	WarnDirty bool `mapstructure:"warn_dirty" toml:"warn_dirty" json:"warn_dirty" yaml:"warn_dirty"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms" validate:"gte=0"`
}

// LogConfig configures log output
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme" validate:"omitempty,oneof=everforest gruvbox"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// ProjectConfigName is the per-project config file searched upward from the working directory
const ProjectConfigName = "lcapgen.toml"

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// InputPath returns the components.json path
func (c *Config) InputPath() string { return c.resolve(c.Input) }

// PackagePath returns the package descriptor path
func (c *Config) PackagePath() string { return c.resolve(c.PackageFile) }

// ComponentsPath returns the directory holding generated component folders
func (c *Config) ComponentsPath() string { return c.resolve(c.ComponentsDir) }

// IndexPath returns the shared index file path
func (c *Config) IndexPath() string { return filepath.Join(c.ComponentsPath(), c.IndexFile) }

// TemplatesPath returns the local template root (ignored when Templates.Source is set)
func (c *Config) TemplatesPath() string { return c.resolve(c.Templates.Dir) }

// JournalPath returns the sqlite journal path
func (c *Config) JournalPath() string { return c.resolve(c.Journal.Path) }

// ExtractOutputPath returns where extract writes components.json
func (c *Config) ExtractOutputPath() string { return c.resolve(c.Extract.Output) }
