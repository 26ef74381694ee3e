// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors
//
// tmcctl - TMC4671 register access tool
//
// A CLI tool for reading and writing TMC4671 registers over a local
// SPI bus, a serial SPI bridge, or a remote WebSocket bus bridge.

package main

import (
	"os"

	"github.com/openfoc/tmc4671/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
