package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NikKazakov/Windows-10-Registry-Parser/hive"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <hive> <path> <name>",
		Short: "Print a single value's decoded data",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
}

func runGet(args []string) error {
	hivePath, keyPath, valueName := args[0], args[1], args[2]

	printVerbose("opening %s\n", hivePath)
	h, err := hive.FromPath(hivePath, hive.OpenOptions{})
	if err != nil {
		return fmt.Errorf("open hive: %w", err)
	}

	k, err := h.Get(keyPath)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", keyPath, err)
	}
	v, err := k.Value(valueName)
	if err != nil {
		return fmt.Errorf("resolve value %q: %w", valueName, err)
	}
	log.Debug("value resolved", "key", keyPath, "value", valueName, "type", v.Type())

	decoded, err := v.Decoded()
	if err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	if b, ok := decoded.([]byte); ok {
		fmt.Println(hex.EncodeToString(b))
		return nil
	}
	fmt.Println(decoded)
	return nil
}
