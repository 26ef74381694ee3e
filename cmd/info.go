// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openfoc/tmc4671/pkg/tmc4671"
)

var infoCmd = &cobra.Command{
	Use:   "info [field]",
	Short: "Display chip identification",
	Long: `Read the CHIPINFO bank and display chip identification.

Without arguments all six fields are shown. A single field can be
selected by name (SI_TYPE, SI_VERSION, SI_DATE, SI_TIME, SI_VARIANT,
SI_BUILD; the SI_ prefix is optional).

A healthy SPI link reports SI_TYPE as "4671", which makes this command
the quickest communication test.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	fields := tmc4671.ChipInfoFields
	if len(args) == 1 {
		field, ok := tmc4671.LookupChipInfo(args[0])
		if !ok {
			return fmt.Errorf("unknown chip info field %q", args[0])
		}
		fields = []tmc4671.ChipInfo{field}
	}

	dev, closer, connInfo, err := OpenDevice()
	if err != nil {
		return err
	}
	defer closer.Close()

	fmt.Printf("Connection: %s\n\n", connInfo)

	for _, field := range fields {
		value, err := dev.GetChipInfo(field)
		if err != nil {
			return fmt.Errorf("reading %s: %w", field, err)
		}
		fmt.Printf("%-12s %s\n", field.String()+":", tmc4671.FormatChipInfo(field, value))
	}

	return nil
}
