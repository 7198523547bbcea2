package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Enumeration of log levels, mirroring the teacher's report.LogLevel* /
// src/logging verbosity tiers.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

var (
	errorBanner = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnBanner  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorText   = pterm.NewStyle(pterm.FgRed)
	warnText    = pterm.NewStyle(pterm.FgYellow)
)

// Render prints every collected diagnostic to the terminal using the
// teacher's banner-then-message style (src/logging/display.go's
// displayBanner + ErrorStyleBG/WarnStyleBG), respecting the given log level.
func Render(path string, c *Collector, logLevel int) {
	if logLevel <= LogLevelSilent {
		return
	}

	for _, d := range c.Diagnostics() {
		if d.IsError {
			errorBanner.Print(" error ")
			fmt.Print(" ")
			errorText.Println(formatMessage(path, d))
		} else if logLevel >= LogLevelWarn {
			warnBanner.Print(" warning ")
			fmt.Print(" ")
			warnText.Println(formatMessage(path, d))
		}
	}
}

func formatMessage(path string, d Diagnostic) string {
	if d.Pos == nil {
		return fmt.Sprintf("%s: %s", path, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", path, d.Pos.StartLn+1, d.Pos.StartCol+1, d.Message)
}
