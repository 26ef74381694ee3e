// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/openfoc/tmc4671/pkg/tmc4671"
)

var dumpProfile string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump register banks",
	Long: `Read and display every documented register, or the groups named by
a TOML profile.

A profile groups registers under headings, which keeps tuning sessions
focused on one subsystem:

  [[group]]
  name = "Velocity PID"
  registers = ["PID_VELOCITY_P_VELOCITY_I", "PID_VELOCITY_TARGET", "0x6A"]

Registers whose value depends on a separate selector register (such as
ADC_RAW_DATA and INTERIM_DATA) are read as-is; set the selector first
if a specific channel is wanted.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpProfile, "profile", "", "TOML profile of register groups to dump")
	rootCmd.AddCommand(dumpCmd)
}

// profileGroup is one named register set in a dump profile.
type profileGroup struct {
	Name      string   `toml:"name"`
	Registers []string `toml:"registers"`
}

type dumpProfileFile struct {
	Groups []profileGroup `toml:"group"`
}

// resolvedGroup is a profileGroup with its register references resolved
// to addresses.
type resolvedGroup struct {
	Name  string
	Addrs []uint8
}

// loadProfile parses a dump profile and resolves every register
// reference, so bad profiles fail before the bus is touched.
func loadProfile(path string) ([]resolvedGroup, error) {
	var file dumpProfileFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %v", path, err)
	}
	if len(file.Groups) == 0 {
		return nil, fmt.Errorf("profile %s defines no groups", path)
	}

	groups := make([]resolvedGroup, 0, len(file.Groups))
	for _, g := range file.Groups {
		resolved := resolvedGroup{Name: g.Name}
		for _, ref := range g.Registers {
			addr, err := resolveRegister(ref)
			if err != nil {
				return nil, fmt.Errorf("profile group %q: %v", g.Name, err)
			}
			resolved.Addrs = append(resolved.Addrs, addr)
		}
		groups = append(groups, resolved)
	}

	return groups, nil
}

func runDump(cmd *cobra.Command, args []string) error {
	var groups []resolvedGroup
	if dumpProfile != "" {
		var err error
		groups, err = loadProfile(dumpProfile)
		if err != nil {
			return err
		}
	} else {
		all := resolvedGroup{Name: "All registers"}
		for _, def := range tmc4671.Registers() {
			all.Addrs = append(all.Addrs, def.Addr)
		}
		groups = []resolvedGroup{all}
	}

	dev, closer, connInfo, err := OpenDevice()
	if err != nil {
		return err
	}
	defer closer.Close()

	fmt.Printf("Connection: %s\n", connInfo)

	for _, group := range groups {
		fmt.Printf("\n%s\n", group.Name)
		for _, addr := range group.Addrs {
			value, err := dev.ReadRegister(addr)
			if err != nil {
				return fmt.Errorf("reading 0x%02X: %w", addr, err)
			}
			printRegister(addr, value)
		}
	}

	return nil
}
