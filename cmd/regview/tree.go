package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NikKazakov/Windows-10-Registry-Parser/hive"
)

var treeShowValues bool

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <hive> [path]",
		Short: "Print a key's subtree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	cmd.Flags().BoolVar(&treeShowValues, "values", false, "also print each key's values")
	return cmd
}

func runTree(args []string) error {
	hivePath := args[0]
	var keyPath string
	if len(args) > 1 {
		keyPath = args[1]
	}

	printVerbose("opening %s\n", hivePath)
	h, err := hive.FromPath(hivePath, hive.OpenOptions{})
	if err != nil {
		return fmt.Errorf("open hive: %w", err)
	}
	log.Debug("hive opened", "path", hivePath, "bins", h.BinCount())

	start, err := h.Get(keyPath)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", keyPath, err)
	}

	return hive.Walk(start, func(k *hive.Key, path string) error {
		depth := strings.Count(path, `\`)
		if path != "" {
			depth++
		}
		name, err := k.Name()
		if err != nil {
			return err
		}
		fmt.Printf("%s%s\n", strings.Repeat("  ", depth), name)

		if !treeShowValues {
			return nil
		}
		values, err := k.Values()
		if err != nil {
			return err
		}
		for i := 0; i < values.Len(); i++ {
			v, err := values.At(i)
			if err != nil {
				return err
			}
			vname, err := v.Name()
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s = %s\n", strings.Repeat("  ", depth), vname, v.String())
		}
		return nil
	})
}
