// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Local SPI flags
	spidevPath string
	spiSpeed   int
	spiMode    int

	// Serial bridge flags
	portName string
	baudRate int

	// Remote bus flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Transaction flags
	strictReplies bool
	traceFile     string
)

var rootCmd = &cobra.Command{
	Use:   "tmcctl",
	Short: "TMC4671 register access tool",
	Long: `tmcctl - Register-level access to the TMC4671 servo controller IC.

Provides commands to identify the chip, read and write individual
registers, dump register banks, and watch registers live while tuning.

Connection modes:
  Local SPI:  --spidev /dev/spidev0.0 [--speed 1000000] [--mode 3]
  Bridge:     --port /dev/ttyUSB0 [--baud 115200]
  Remote bus: --url ws://host/bus [--username user]

For remote bus authentication, the password is read from the TMC_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history.`,
	Version: "1.0.0",
}

func init() {
	// Local SPI flags
	rootCmd.PersistentFlags().StringVarP(&spidevPath, "spidev", "d", "", "spidev device (e.g. /dev/spidev0.0)")
	rootCmd.PersistentFlags().IntVar(&spiSpeed, "speed", 1000000, "SPI clock rate in Hz (spidev only)")
	rootCmd.PersistentFlags().IntVar(&spiMode, "mode", 3, "SPI clock mode 0-3 (spidev only)")

	// Serial bridge flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port of an SPI bridge")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// Remote bus flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "Remote bus URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Transaction flags
	rootCmd.PersistentFlags().BoolVar(&strictReplies, "strict", false, "Fail on reply address mismatches")
	rootCmd.PersistentFlags().StringVar(&traceFile, "trace", "", "Record all bus exchanges to a CBOR trace file")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
