package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/lcapgen/component"
	"github.com/teranos/lcapgen/config"
	"github.com/teranos/lcapgen/errors"
	"github.com/teranos/lcapgen/generator"
	"github.com/teranos/lcapgen/journal"
	"github.com/teranos/lcapgen/logger"
	"github.com/teranos/lcapgen/progress"
	"github.com/teranos/lcapgen/scaffold"
)

// flagKeys maps command-line flags onto config keys. A flag only overrides
// the config when it is set explicitly.
var flagKeys = map[string]string{
	"framework":       "framework",
	"root":            "root",
	"input":           "input",
	"templates":       "templates.dir",
	"template-source": "templates.source",
	"app":             "extract.app_name",
	"frontend":        "extract.frontend",
	"deny":            "extract.deny",
	"prefix":          "extract.prefix",
	"output":          "extract.output",
	"debounce":        "watch.debounce_ms",
}

// loadConfig binds the command's flags onto the config cascade, then loads and validates it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.GetViper()
	if err != nil {
		return nil, err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "failed to bind --%s", name)
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addGenerateFlags registers the flags shared by generate and watch
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Component list (JSON, or YAML by extension)")
	cmd.Flags().StringP("root", "r", "", "Project root holding package.json and src/components")
	cmd.Flags().StringP("framework", "f", "", "Template framework, selects <templates>/<framework>-component")
	cmd.Flags().String("templates", "", "Local template root")
	cmd.Flags().String("template-source", "", "go-getter URL to fetch templates from (overrides --templates)")
	cmd.Flags().String("progress", "cli", "Progress output: cli or json")
	cmd.Flags().Bool("no-journal", false, "Do not record this run in the history database")
}

// newEmitter picks the progress emitter named by --progress
func newEmitter(cmd *cobra.Command, w io.Writer) (progress.Emitter, error) {
	format, _ := cmd.Flags().GetString("progress")
	switch format {
	case "", "cli":
		return progress.NewCLIEmitterTo(w, logger.Verbosity), nil
	case "json":
		return progress.NewJSONEmitterTo(w), nil
	default:
		return nil, errors.Newf("unsupported progress format: %s (supported: cli, json)", format)
	}
}

// session holds everything one generation run needs
type session struct {
	cfg      *config.Config
	gen      *generator.Generator
	resolver *scaffold.Resolver
	journal  *journal.Journal
}

func openSession(cfg *config.Config, emitter progress.Emitter, trigger string, useJournal bool) (*session, error) {
	pkgName, err := component.LoadPackageName(cfg.PackagePath())
	if err != nil {
		return nil, err
	}

	opts := generator.OptionsFromConfig(cfg, pkgName)
	opts.Trigger = trigger

	s := &session{
		cfg:      cfg,
		resolver: scaffold.NewResolver(cfg.TemplatesPath(), cfg.Templates.Source, logger.Named("scaffold")),
	}
	s.gen = generator.New(opts, s.resolver).WithEmitter(emitter)

	if useJournal && cfg.Journal.Enabled {
		j, err := journal.Open(cfg.JournalPath(), logger.Named("journal"))
		if err != nil {
			s.resolver.Close()
			return nil, err
		}
		s.journal = j
		s.gen.WithJournal(j)
	}
	return s, nil
}

// run loads the component list and generates it. A list with no
// components is not an error.
func (s *session) run(ctx context.Context) (*generator.Report, error) {
	records, err := component.LoadRecords(s.cfg.InputPath())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		logger.Infow("No components to generate", logger.FieldFile, s.cfg.InputPath())
		return &generator.Report{}, nil
	}
	return s.gen.Run(ctx, records)
}

func (s *session) Close() {
	if err := s.resolver.Close(); err != nil {
		logger.Warnw("Failed to remove fetched templates", logger.FieldError, err)
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			logger.Warnw("Failed to close journal", logger.FieldError, err)
		}
	}
}
