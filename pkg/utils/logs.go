// Package utils provides some simple 'prettier' logs for a basic go usage.
// Workflow logging goes through logrus; these helpers only dress up the final
// run summary and the --debug plan dumps.
package utils

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

var colorGreen = color.New(color.FgGreen).Add(color.Bold).SprintFunc()
var colorYellow = color.New(color.FgYellow).Add(color.Bold).SprintFunc()
var colorCyan = color.New(color.FgCyan).SprintFunc()

// Success function logs a success message
func Success(success interface{}) {
	t := time.Now().Format("2006/01/02 15:04:05")

	spew.Printf("%s %s %s\n", t, colorGreen(`[SUCCESS]`), colorCyan(success))
}

// Warning function logs a warning message
func Warning(warning interface{}) {
	t := time.Now().Format("2006/01/02 15:04:05")

	spew.Printf("%s %s %s\n", t, colorYellow(`[WARNING]`), colorYellow(warning))
}

// Pretty function disasemble a variable and display it's struct and values
func Pretty(variable ...interface{}) {
	spew.Config.Indent = "    "
	fmt.Printf("%s", colorYellow("----------------------------------\n"))
	for _, each := range variable {
		spew.Dump(each)
	}
	fmt.Printf("%s", colorYellow("----------------------------------\n"))
}
