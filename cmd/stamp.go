/**************************************************************************************************
** Stamp command implementation for the photo-reports CLI application.
** Runs the full pipeline: cleanup of old copies, landscape rotation, session discovery,
** timestamp sequencing and stamped copy rendering.
**************************************************************************************************/

package main

import (
	"fmt"
	"math/rand"
	"runtime"

	"github.com/AlenaYashkina/photo-reports/pkg/dispatcher"
	"github.com/AlenaYashkina/photo-reports/pkg/imagediff"
	"github.com/AlenaYashkina/photo-reports/pkg/render"
	"github.com/AlenaYashkina/photo-reports/pkg/sequencer"
	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/AlenaYashkina/photo-reports/pkg/workspace"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

/**************************************************************************************************
** Builds the timestamp sequencer with the production image estimator. The sequencer's random
** source is derived from the run seed, so a fixed --seed reproduces the exact same timestamps.
**
** @param cfg - Validated run configuration
** @param logger - Logger instance
** @return *sequencer.Sequencer - Ready-to-run sequencer
**************************************************************************************************/
func newSequencer(cfg *utils.TConfig, logger *logrus.Logger) *sequencer.Sequencer {
	estimator := imagediff.NewEstimator(imagediff.FileDecoder{}, cfg.FallbackDistance(), runtime.NumCPU(), logger)
	return sequencer.New(estimator, cfg.JitterFraction, cfg.MinDelta, rand.New(rand.NewSource(seed)), logger)
}

/**************************************************************************************************
** Sequences every session and hands the records to the dispatcher. The dispatcher draws its
** locations from a second random stream (seed+1), so decode fallbacks during scoring never
** shift which location a photo receives.
**
** @param cfg - Validated run configuration
** @param sessions - Discovered sessions in processing order
** @param d - Dispatcher the records are handed to
** @param logger - Logger instance
** @return utils.TRunReport - Combined sequencing and dispatch failures
**************************************************************************************************/
func sequenceSessions(cfg *utils.TConfig, sessions []utils.TSession, d *dispatcher.Dispatcher, logger *logrus.Logger) utils.TRunReport {
	report := utils.TRunReport{}
	seq := newSequencer(cfg, logger)
	startSec, _ := utils.TimeToSeconds(cfg.StartTime)

	for _, session := range sessions {
		logger.Infof("📚 Session %s (%s)", session.Name, session.Date.Format(utils.DateLayout))
		records, seqReport := seq.Run(session, float64(startSec))
		report.Merge(seqReport)
		report.Merge(d.Dispatch(records))
	}
	return report
}

/**************************************************************************************************
** Main execution logic for the stamp process. Handles the core workflow of cleaning stale
** copies, rotating landscape photos, discovering sessions, sequencing timestamps and producing
** stamped copies. Includes detailed logging and error handling throughout the process.
**
** @param cmd - Cobra command instance
** @param args - Command line arguments
**************************************************************************************************/
func runStamp(cmd *cobra.Command, args []string) {
	logger, cfg := loadEnv()

	report := utils.TRunReport{RunID: uuid.New().String()}
	logger.Infof("🟢 Run %s (seed %d)", report.RunID, seed)

	/**********************************************************************************************
	** Remove leftovers of previous runs and normalize photo orientation before anything is
	** listed or measured.
	**********************************************************************************************/
	removed, err := workspace.RemoveStamped(cfg.FolderPath, dryRun, logger)
	if err != nil {
		logger.Fatalf("Cleanup failed: %v", err)
	}
	if removed > 0 {
		logger.Infof("🗑️  Removed %d stale stamped copy(ies)", removed)
	}
	if cfg.RotateEnabled() {
		rotated, err := workspace.RotateLandscape(cfg.FolderPath, dryRun, logger)
		if err != nil {
			logger.Fatalf("Rotation failed: %v", err)
		}
		if rotated > 0 {
			logger.Infof("🔄 Rotated %d landscape photo(s)", rotated)
		}
	}

	/**********************************************************************************************
	** Discover the sessions, then sequence and stamp them.
	**********************************************************************************************/
	sessions, scanReport, err := workspace.NewScanner(cfg, logger).Scan()
	if err != nil {
		logger.Fatalf("Could not scan %s: %v", cfg.FolderPath, err)
	}
	report.Merge(scanReport)
	if debugMode {
		utils.Pretty(sessions)
	}

	renderer, err := render.NewOverlay(logger)
	if err != nil {
		logger.Fatalf("Could not initialize renderer: %v", err)
	}
	d := dispatcher.New(renderer, utils.RemoveEmptyStrings(cfg.Locations), cfg.Locale,
		rand.New(rand.NewSource(seed+1)), dryRun, logger)
	report.Merge(sequenceSessions(cfg, sessions, d, logger))

	summarize(logger, report)
	if len(sessions) > 0 && report.Stamped == 0 {
		logger.Fatal("No photo was stamped")
	}
}

/**************************************************************************************************
** Prints the end-of-run summary: the stamped count, then every recoverable failure the run
** collected. The failure report is surfaced even when the run succeeded overall.
**
** @param logger - Logger instance
** @param report - Combined run report
**************************************************************************************************/
func summarize(logger *logrus.Logger, report utils.TRunReport) {
	utils.Success(fmt.Sprintf("Run %s: %d photo(s) stamped", report.RunID, report.Stamped))
	if !report.HasFailures() {
		return
	}

	utils.Warning(fmt.Sprintf("%d score fallback(s), %d render failure(s), %d skipped session(s)",
		len(report.ScoreFallbacks), len(report.RenderFailures), len(report.SkippedSessions)))
	for _, entry := range report.SkippedSessions {
		logger.Warnf("⚠️  Session %s: %s", entry.Item, entry.Reason)
	}
	for _, entry := range report.ScoreFallbacks {
		logger.Warnf("⚠️  Pair %s: %s", entry.Item, entry.Reason)
	}
	for _, entry := range report.RenderFailures {
		logger.Warnf("⚠️  Photo %s: %s", entry.Item, entry.Reason)
	}
}
