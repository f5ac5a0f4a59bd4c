/**************************************************************************************************
** Main entry point for the photo-reports CLI application. This tool assigns plausible capture
** timestamps and locations to work session photos and burns them into stamped copies.
**************************************************************************************************/

package main

import (
	"os"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/spf13/cobra"
)

/**************************************************************************************************
** Application entry point. Sets up the CLI command structure using Cobra, including all
** available commands and their associated flags. Handles command execution and error
** reporting.
**************************************************************************************************/
func main() {
	var rootCmd = &cobra.Command{
		Use:   "photo-reports",
		Short: "Photo report timestamp stamper",
		Long:  "A tool to assign plausible capture timestamps and locations to work session photos and produce stamped copies.",
		Run:   runStamp,
	}

	var planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Preview the timestamp allocation",
		Long:  "Compute timestamps and locations for every photo and print them as a table without writing any file.",
		Run:   runPlan,
	}

	var cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Remove previously produced stamped copies",
		Long:  "Recursively delete every stamped copy under the configured root folder.",
		Run:   runClean,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (or set CONFIG_PATH env var)")
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", "", "Root folder with session folders (or set FOLDER_PATH env var)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Dry run (or set DRY_RUN=true)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Debug output with full structure dumps")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed, 0 derives one from the clock (or set SEED env var)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (or set LOG_LEVEL env var)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format, text or json (or set LOG_FORMAT env var)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Stamp locale, ru or en (or set LOCALE env var)")
	rootCmd.PersistentFlags().BoolVar(&pickOne, "pick-one", false, "Keep only the best photo of each group")
	rootCmd.PersistentFlags().BoolVar(&noRotate, "no-rotate", false, "Skip landscape rotation")
	rootCmd.PersistentFlags().StringVar(&extensions, "extensions", utils.DefaultImageExtensionsString, "Comma-separated photo extensions considered for stamping")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(cleanCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
