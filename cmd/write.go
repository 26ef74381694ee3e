// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var writeVerify bool

var writeCmd = &cobra.Command{
	Use:   "write <register> <value>",
	Short: "Write a register",
	Long: `Write a 32-bit value to a register.

The register is addressed by datasheet name or numeric address; the
value is decimal or 0x-prefixed hex. Note that the chip does not
confirm writes on the wire. Use --verify to read the register back,
which only makes sense for plain read/write registers.`,
	Args: cobra.ExactArgs(2),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().BoolVar(&writeVerify, "verify", false, "Read the register back after writing")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	addr, err := resolveRegister(args[0])
	if err != nil {
		return err
	}

	value, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid value %q: %v", args[1], err)
	}

	dev, closer, _, err := OpenDevice()
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := dev.WriteRegister(addr, uint32(value)); err != nil {
		return fmt.Errorf("writing 0x%02X: %w", addr, err)
	}
	printRegister(addr, uint32(value))

	if writeVerify {
		readback, err := dev.ReadRegister(addr)
		if err != nil {
			return fmt.Errorf("reading back 0x%02X: %w", addr, err)
		}
		if readback != uint32(value) {
			return fmt.Errorf("verify failed: wrote 0x%08X, read back 0x%08X", value, readback)
		}
		fmt.Println("Verified.")
	}

	return nil
}
