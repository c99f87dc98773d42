package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/history"
	"github.com/akoreshkov/adbhelper/internal/render"
)

func historyCmd(a *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Recent captures and analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := history.Open(a.cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer db.Close()

			captures, err := db.RecentCaptures(limit)
			if err != nil {
				return err
			}
			analyses, err := db.RecentAnalyses(limit)
			if err != nil {
				return err
			}

			if asJSON {
				return render.JSON(os.Stdout, map[string]interface{}{
					"captures": captures,
					"analyses": analyses,
				})
			}

			capRows := make([][]string, 0, len(captures))
			for _, c := range captures {
				capRows = append(capRows, []string{
					c.ID, c.Serial, c.Kind, c.File, c.StartedAt,
					strconv.Itoa(c.Duration), strconv.Itoa(c.ExitCode),
				})
			}
			render.Table(os.Stdout,
				[]string{"id", "serial", "kind", "file", "started", "duration", "exit"},
				capRows)

			anRows := make([][]string, 0, len(analyses))
			for _, an := range analyses {
				anRows = append(anRows, []string{
					strconv.FormatInt(an.ID, 10), an.File, an.AnalyzedAt,
					strconv.Itoa(an.Lines), strconv.Itoa(an.Fatals),
				})
			}
			render.Table(os.Stdout,
				[]string{"id", "file", "analyzed", "lines", "fatals"},
				anRows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max rows per section")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")
	return cmd
}
