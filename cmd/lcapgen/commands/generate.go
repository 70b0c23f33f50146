package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/lcapgen/journal"
	"github.com/teranos/lcapgen/logger"
)

// GenerateCmd represents the generate command
var GenerateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate component folders from the component list",
		Long: `Generate one component folder per record in the component list.

Each component is created from <templates>/<framework>-component with its
placeholders filled in, and exported from src/components/index.ts.
An existing component folder is deleted and recreated.

A component that fails is reported and skipped; the remaining components
are still generated and the exit status stays 0.

Examples:
  lcapgen generate                          # use lcapgen.toml / defaults
  lcapgen generate -f react                 # bin/react-component
  lcapgen generate --progress json          # JSON lines for tooling
  lcapgen generate --template-source git::https://example.com/templates.git`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	addGenerateFlags(cmd)
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	emitter, err := newEmitter(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	noJournal, _ := cmd.Flags().GetBool("no-journal")

	s, err := openSession(cfg, emitter, journal.TriggerGenerate, !noJournal)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.run(cmd.Context())
	if err != nil {
		return err
	}
	if report.Failed() > 0 {
		logger.Warnw("Some components were not generated", "failed", report.Failed(), "total", len(report.Outcomes))
	}
	return nil
}
