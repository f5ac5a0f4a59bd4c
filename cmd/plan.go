/**************************************************************************************************
** Plan command implementation for the photo-reports CLI application.
** Runs discovery and sequencing without touching any file and prints the per-photo allocation
** as a table, one per session.
**************************************************************************************************/

package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/AlenaYashkina/photo-reports/pkg/dispatcher"
	"github.com/AlenaYashkina/photo-reports/pkg/render"
	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/AlenaYashkina/photo-reports/pkg/workspace"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

/**************************************************************************************************
** Main execution logic for the plan preview. Uses the same sequencing pipeline as the stamp
** command with the same seed handling, so the printed allocation matches what a subsequent
** stamp run with the same --seed would produce.
**
** @param cmd - Cobra command instance
** @param args - Command line arguments
**************************************************************************************************/
func runPlan(cmd *cobra.Command, args []string) {
	logger, cfg := loadEnv()

	sessions, report, err := workspace.NewScanner(cfg, logger).Scan()
	if err != nil {
		logger.Fatalf("Could not scan %s: %v", cfg.FolderPath, err)
	}
	if debugMode {
		utils.Pretty(sessions)
	}

	seq := newSequencer(cfg, logger)
	d := dispatcher.New(&render.Nop{}, utils.RemoveEmptyStrings(cfg.Locations), cfg.Locale,
		rand.New(rand.NewSource(seed+1)), false, logger)
	startSec, _ := utils.TimeToSeconds(cfg.StartTime)

	for _, session := range sessions {
		records, seqReport := seq.Run(session, float64(startSec))
		report.Merge(seqReport)
		d.Dispatch(records)
		fmt.Println(planTable(session, records))
	}

	for _, entry := range report.SkippedSessions {
		logger.Warnf("⚠️  Session %s: %s", entry.Item, entry.Reason)
	}
	for _, entry := range report.ScoreFallbacks {
		logger.Warnf("⚠️  Pair %s: %s", entry.Item, entry.Reason)
	}
}

/**************************************************************************************************
** planTable renders one session's allocation as a rounded table: every photo with its group,
** phase, assigned timestamp, gap to the previous photo and picked location. The footer totals
** the photo count and the session's elapsed span.
**
** @param session - Session the records belong to
** @param records - Sequenced records with locations assigned
** @return string - Rendered table
**************************************************************************************************/
func planTable(session utils.TSession, records []utils.TStampRecord) string {
	phaseByPath := make(map[string]string)
	for _, phase := range session.Phases {
		for _, group := range phase.Groups {
			for _, photo := range group.Photos {
				phaseByPath[photo.Path] = phase.Name
			}
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("%s (%s)", session.Name, session.Date.Format(utils.DateLayout))
	tw.AppendHeader(table.Row{"Photo", "Group", "Phase", "Timestamp", "Gap", "Location"})

	var prev time.Time
	var prevPhase string
	for i, rec := range records {
		gap := ""
		if i > 0 {
			gap = utils.SecondsToClock(int(rec.Timestamp.Sub(prev).Seconds()))
			if phaseByPath[rec.Photo.Path] != prevPhase {
				tw.AppendSeparator()
			}
		}
		prev = rec.Timestamp
		prevPhase = phaseByPath[rec.Photo.Path]
		tw.AppendRow(table.Row{
			rec.Photo.Name,
			rec.Photo.Prefix,
			phaseByPath[rec.Photo.Path],
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			gap,
			strings.ReplaceAll(rec.Location, "\n", " "),
		})
	}

	span := ""
	if len(records) > 1 {
		span = utils.SecondsToClock(int(records[len(records)-1].Timestamp.Sub(records[0].Timestamp).Seconds()))
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%d photo(s)", len(records)), "", "", "", span, ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
