/**************************************************************************************************
** Clean command implementation for the photo-reports CLI application.
** Removes every previously produced stamped copy under the configured root folder.
**************************************************************************************************/

package main

import (
	"fmt"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/AlenaYashkina/photo-reports/pkg/workspace"
	"github.com/spf13/cobra"
)

/**************************************************************************************************
** Main execution logic for the clean command. Only files carrying the stamped marker are ever
** removed; source photos are never touched.
**
** @param cmd - Cobra command instance
** @param args - Command line arguments
**************************************************************************************************/
func runClean(cmd *cobra.Command, args []string) {
	logger, cfg := loadEnv()

	removed, err := workspace.RemoveStamped(cfg.FolderPath, dryRun, logger)
	if err != nil {
		logger.Fatalf("Cleanup failed: %v", err)
	}
	if dryRun {
		utils.Success(fmt.Sprintf("%d stamped copy(ies) would be removed", removed))
		return
	}
	utils.Success(fmt.Sprintf("%d stamped copy(ies) removed", removed))
}
