package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/lcapgen/internal/util/jsonutil"
	"github.com/teranos/lcapgen/journal"
	"github.com/teranos/lcapgen/logger"
)

// HistoryCmd represents the history command
var HistoryCmd = newHistoryCmd()

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generation runs",
		Long: `List the runs recorded in the history database, newest first.

Examples:
  lcapgen history                 # last 10 runs
  lcapgen history -n 0 --json     # every run as JSON
  lcapgen history --run <id>      # components of one run`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}
	cmd.Flags().IntP("limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().BoolP("json", "j", false, "Output as JSON")
	cmd.Flags().String("run", "", "Show the components of one run")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path := cfg.JournalPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(out, "No runs recorded (%s does not exist)\n", path)
		return nil
	}

	j, err := journal.Open(path, logger.Named("journal"))
	if err != nil {
		return err
	}
	defer j.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")
	runID, _ := cmd.Flags().GetString("run")

	if runID != "" {
		entries, err := j.Entries(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintf(out, "No components recorded for run %s\n", runID)
			return nil
		}
		data := pterm.TableData{{"component", "name", "tag", "status", "exported", "ms", "error"}}
		for _, e := range entries {
			data = append(data, []string{e.Name, e.CompName, e.TagName, e.Status, yesNo(e.Registered), fmt.Sprint(e.DurationMS), e.Error})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render()
	}

	runs, err := j.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}

	data := pterm.TableData{{"run", "started", "trigger", "framework", "status", "ok", "failed"}}
	for _, r := range runs {
		data = append(data, []string{
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Trigger,
			r.Framework,
			r.Status,
			fmt.Sprintf("%d/%d", r.Succeeded, r.Total),
			fmt.Sprint(r.Failed),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := jsonutil.MarshalNoEscapeIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
