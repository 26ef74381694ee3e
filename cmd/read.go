// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openfoc/tmc4671/pkg/tmc4671"
)

var readCmd = &cobra.Command{
	Use:   "read <register>...",
	Short: "Read one or more registers",
	Long: `Read registers and display their values.

Registers are addressed by datasheet name (case-insensitive, e.g.
PID_VELOCITY_ACTUAL) or by numeric address (decimal or 0x-prefixed
hex).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	addrs := make([]uint8, 0, len(args))
	for _, arg := range args {
		addr, err := resolveRegister(arg)
		if err != nil {
			return err
		}
		addrs = append(addrs, addr)
	}

	dev, closer, _, err := OpenDevice()
	if err != nil {
		return err
	}
	defer closer.Close()

	for _, addr := range addrs {
		value, err := dev.ReadRegister(addr)
		if err != nil {
			return fmt.Errorf("reading 0x%02X: %w", addr, err)
		}
		printRegister(addr, value)
	}

	return nil
}

// printRegister shows one register in the common list format.
func printRegister(addr uint8, value uint32) {
	fmt.Printf("0x%02X %-32s 0x%08X (%d)\n", addr, tmc4671.RegisterName(addr), value, int32(value))
}
