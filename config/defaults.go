package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("framework", "vue2")
	v.SetDefault("root", ".")
	v.SetDefault("input", "bin/components.json")
	v.SetDefault("package_file", "package.json")
	v.SetDefault("components_dir", "src/components")
	v.SetDefault("index_file", "index.ts")
	v.SetDefault("component_type", "pc")
	v.SetDefault("tag_prefixes", []string{"vue"}) // vue2, vue3 get kebab-case tags

	v.SetDefault("templates.dir", "bin") // bin/vue2-component, bin/react-component, ...
	v.SetDefault("templates.source", "")

	v.SetDefault("cleanup.mixins_flag", "window.$mixins")
	v.SetDefault("cleanup.data_source_helper", "__getOrCreateDataSource")

	v.SetDefault("extract.app_name", "")
	v.SetDefault("extract.frontend", "pc")
	v.SetDefault("extract.deny", []string{})
	v.SetDefault("extract.prefix", "lcap_")
	v.SetDefault("extract.output", "bin/components.json")

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", ".lcapgen/history.db")

	v.SetDefault("git.warn_dirty", true)
	v.SetDefault("watch.debounce_ms", 500)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")
}

// Defaults returns a Config populated only from SetDefaults
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always decode; a failure here is a programming error
		panic(err)
	}
	return cfg
}
