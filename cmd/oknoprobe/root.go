// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	flagLogFile string
)

var rootCmd = &cobra.Command{
	Use:   "oknoprobe",
	Short: "Probe window activation and installer state",
	Long: `oknoprobe drives the window management core against a backend and
reads installer state hives.

Usage:
  oknoprobe active          Run an activation scenario and report transitions
  oknoprobe state --hive f  Print a product's install state from a hive file`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write logs to this file instead of stderr")
}
