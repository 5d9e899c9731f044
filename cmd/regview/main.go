// Command regview is a minimal read-only explorer for Windows registry
// hive files: print a key's subtree, or fetch a single value.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
