package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/analyze"
	"github.com/akoreshkov/adbhelper/internal/cli"
	"github.com/akoreshkov/adbhelper/internal/history"
	"github.com/akoreshkov/adbhelper/internal/render"
)

func analyzeCmd(a *app) *cobra.Command {
	var file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze-logs",
		Short: "Offline analysis of a saved log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return cli.Argumentf("--file is required")
			}
			if _, err := os.Stat(file); err != nil {
				return cli.Argumentf("log file not found: %s", file)
			}

			rep, err := analyze.AnalyzeFile(file)
			if err != nil {
				return err
			}

			if raw, err := json.Marshal(rep); err == nil {
				a.recordAnalysis(history.Analysis{
					File:       rep.Source,
					AnalyzedAt: rep.AnalyzedAt,
					Lines:      rep.Lines,
					Fatals:     rep.Fatals,
					ReportJSON: string(raw),
				})
			}

			if asJSON {
				return render.JSON(os.Stdout, rep)
			}
			printReport(rep)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the log file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON output")
	return cmd
}

func printReport(rep *analyze.Report) {
	fmt.Println("Log analysis:")
	fmt.Println("  File:        ", rep.Source)
	fmt.Println("  Analyzed at: ", rep.AnalyzedAt)
	fmt.Println("  Lines:       ", rep.Lines)
	fmt.Println("  Fatals/ANRs: ", rep.Fatals)

	levelRow := make([]string, len(analyze.Levels))
	for i, l := range analyze.Levels {
		levelRow[i] = strconv.Itoa(rep.Levels[l])
	}
	fmt.Println()
	render.Table(os.Stdout, analyze.Levels, [][]string{levelRow})

	if len(rep.TopTags) > 0 {
		rows := make([][]string, 0, len(rep.TopTags))
		for _, tc := range rep.TopTags {
			rows = append(rows, []string{tc.Tag, strconv.Itoa(tc.Count)})
		}
		fmt.Println()
		render.Table(os.Stdout, []string{"tag", "count"}, rows)
	}
}

func (a *app) recordAnalysis(an history.Analysis) {
	db, err := history.Open(a.cfg.HistoryDB)
	if err != nil {
		a.log.Warn().Err(err).Msg("open history db")
		return
	}
	defer db.Close()
	if err := db.AddAnalysis(an); err != nil {
		a.log.Warn().Err(err).Msg("record analysis history")
	}
}
