package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/lcapgen/errors"
	"github.com/teranos/lcapgen/extract"
	"github.com/teranos/lcapgen/logger"
)

// ExtractCmd represents the extract command
var ExtractCmd = newExtractCmd()

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Convert a host application dump into components.json",
		Long: `Read the business components of one frontend from a host application
dump and write them as the component list consumed by generate.

Component names get the lcap_ prefix, and references to the app's logics
and data sources are rewritten to point at sharedApp.<app>.

Examples:
  lcapgen extract --dump app.json --app myapp
  lcapgen extract --dump app.json --frontend h5 --deny draft,legacy
  lcapgen extract --dump app.json -o bin/components.json`,
		Args: cobra.NoArgs,
		RunE: runExtract,
	}
	cmd.Flags().String("dump", "", "Host application dump (JSON)")
	cmd.Flags().String("app", "", "Shared app name references are rewritten into (default: the dump's app name)")
	cmd.Flags().String("frontend", "", "Frontend to extract (default pc)")
	cmd.Flags().StringSlice("deny", nil, "Component names to skip")
	cmd.Flags().String("prefix", "", "Name prefix added to every component (default lcap_)")
	cmd.Flags().StringP("output", "o", "", "Output file (default bin/components.json)")
	_ = cmd.MarkFlagRequired("dump")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.Named("extract")

	// Failures past configuration are logged; the exit status stays zero.
	dumpPath, _ := cmd.Flags().GetString("dump")
	app, err := extract.LoadDump(dumpPath)
	if err != nil {
		log.Errorw("Failed to load host dump", logger.FieldFile, dumpPath, logger.FieldError, err)
		return nil
	}

	records, err := extract.Extract(app, extract.Options{
		AppName:  cfg.Extract.AppName,
		Frontend: cfg.Extract.Frontend,
		Deny:     cfg.Extract.Deny,
		Prefix:   cfg.Extract.Prefix,
	}, log)
	if errors.Is(err, errors.ErrNoComponents) {
		log.Infow("no components to generate", "frontend", cfg.Extract.Frontend)
		return nil
	}
	if err != nil {
		log.Errorw("Failed to extract components", "frontend", cfg.Extract.Frontend, logger.FieldError, err)
		return nil
	}

	out := cfg.ExtractOutputPath()
	if err := extract.WriteFile(out, records); err != nil {
		log.Errorw("Failed to write component list", logger.FieldFile, out, logger.FieldError, err)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d components to %s\n", len(records), out)
	return nil
}
