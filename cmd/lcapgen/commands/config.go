package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/lcapgen/config"
	"github.com/teranos/lcapgen/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = newConfigCmd()

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage lcapgen configuration",
		Long: `Display and manage lcapgen configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (LCAPGEN_* prefix, e.g. LCAPGEN_TEMPLATES_DIR)
3. Project config (./lcapgen.toml, searched upward)
4. User config (~/.lcapgen/config.toml)
5. Default values

Examples:
  lcapgen config show                 # Show effective configuration
  lcapgen config show --format json   # ... as JSON
  lcapgen config init                 # Write a default lcapgen.toml
  lcapgen config where                # Show which files are read`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	show.Flags().String("format", "toml", "Output format: toml, json, yaml")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigValidate,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default lcapgen.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file (keeps .back1/.back2 backups)")

	where := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Args:  cobra.NoArgs,
		RunE:  runConfigWhere,
	}

	cmd.AddCommand(show, validate, initCmd, where)
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# lcapgen configuration\n%s", data)

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# lcapgen configuration\n%s", data)

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigName
	if len(args) == 1 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if err := config.WriteDefault(path, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	for i, src := range config.Sources() {
		state := "missing"
		if src.Exists {
			state = "found"
		}
		fmt.Fprintf(out, "  %d. [FILE]     %s (%s)\n", i+2, src.Path, state)
	}
	fmt.Fprintln(out, "  -  [ENV]      LCAPGEN_* environment variables")
	return nil
}
