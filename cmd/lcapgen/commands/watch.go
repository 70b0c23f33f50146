package commands

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/lcapgen/config"
	"github.com/teranos/lcapgen/errors"
	"github.com/teranos/lcapgen/journal"
	"github.com/teranos/lcapgen/logger"
	"github.com/teranos/lcapgen/watch"
)

// WatchCmd represents the watch command
var WatchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the component list changes",
		Long: `Generate once, then regenerate every time the component list,
package.json or an lcapgen config file changes. Bursts of changes within
the debounce period trigger a single regeneration.

A changed config file is reloaded before regenerating. The set of watched
files is fixed at startup.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
	addGenerateFlags(cmd)
	cmd.Flags().Int("debounce", 0, "Debounce period in milliseconds (default 500)")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	emitter, err := newEmitter(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	noJournal, _ := cmd.Flags().GetBool("no-journal")
	log := logger.Named("watch")

	regenerate := func(ctx context.Context, cfg *config.Config) error {
		s, err := openSession(cfg, emitter, journal.TriggerWatch, !noJournal)
		if err != nil {
			return err
		}
		defer s.Close()
		_, err = s.run(ctx)
		return err
	}

	ctx := cmd.Context()
	if err := regenerate(ctx, cfg); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		log.Errorw("Initial generation failed", logger.FieldError, err)
	}

	var configFiles []string
	for _, src := range config.Sources() {
		if src.Exists {
			configFiles = append(configFiles, src.Path)
		}
	}

	files := append([]string{cfg.InputPath(), cfg.PackagePath()}, configFiles...)
	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond

	w, err := watch.New(files, debounce, func(ctx context.Context, changed []string) error {
		if touchesAny(changed, configFiles) {
			config.Reset()
			reloaded, err := loadConfig(cmd)
			if err != nil {
				return errors.Wrap(err, "config reload")
			}
			log.Infow("Config reloaded")
			cfg = reloaded
		}
		return regenerate(ctx, cfg)
	})
	if err != nil {
		return err
	}
	w.WithLogger(log)

	emitter.EmitStage("watch", "watching for changes, press Ctrl+C to stop")
	for _, f := range w.Files() {
		log.Infow("Watching", logger.FieldFile, f)
	}
	return w.Run(ctx)
}

// touchesAny reports whether any changed path is one of files
func touchesAny(changed, files []string) bool {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			set[abs] = true
		}
	}
	for _, c := range changed {
		if set[c] {
			return true
		}
	}
	return false
}
