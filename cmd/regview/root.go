package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	logPath string
)

var rootCmd = &cobra.Command{
	Use:     "regview",
	Short:   "Inspect Windows registry hive files",
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "write debug logs (enabled by --verbose) to this file instead of stderr")
	cobra.OnInitialize(func() {
		initLogger(logOptions{Enabled: verbose, Path: logPath})
	})

	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newGetCmd())
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
