// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/openfoc/tmc4671/pkg/bridge"
	"github.com/openfoc/tmc4671/pkg/remote"
	"github.com/openfoc/tmc4671/pkg/spidev"
	"github.com/openfoc/tmc4671/pkg/tmc4671"
	"github.com/openfoc/tmc4671/pkg/trace"
)

// closableTransport is what every connection mode hands back: a bus
// transport that must be closed when the command is done.
type closableTransport interface {
	tmc4671.Transport
	io.Closer
}

// traceTransport pairs a trace tap with the file and transport it has
// to tear down.
type traceTransport struct {
	*trace.Transport
	closers []io.Closer
}

func (t *traceTransport) Close() error {
	var firstErr error
	for _, c := range t.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// parseSpidevPath accepts "/dev/spidevB.C" or a bare "B.C" pair.
func parseSpidevPath(path string) (bus, chip int, err error) {
	spec := strings.TrimPrefix(path, "/dev/spidev")
	if _, err := fmt.Sscanf(spec, "%d.%d", &bus, &chip); err != nil {
		return 0, 0, fmt.Errorf("invalid spidev device %q (expected /dev/spidevB.C)", path)
	}
	return bus, chip, nil
}

// openSpidevTransport opens the local SPI device per the flags.
func openSpidevTransport() (closableTransport, error) {
	bus, chip, err := parseSpidevPath(spidevPath)
	if err != nil {
		return nil, err
	}

	dev, err := spidev.Open(bus, chip)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", spidevPath, err)
	}

	if err := dev.SetMode(uint8(spiMode)); err != nil {
		dev.Close()
		return nil, err
	}
	if err := dev.SetSpeed(uint32(spiSpeed)); err != nil {
		dev.Close()
		return nil, err
	}

	return dev, nil
}

// openRemoteTransport dials the remote bus server per the flags.
func openRemoteTransport() (closableTransport, error) {
	password := ""
	if wsUsername != "" {
		var err error
		password, err = GetPassword()
		if err != nil {
			return nil, err
		}
	}

	return remote.Dial(wsURL, wsUsername, password, wsNoSSLVerify)
}

// OpenTransport opens the bus transport selected by the connection
// flags and returns it with a human-readable description.
func OpenTransport() (closableTransport, string, error) {
	var (
		transport closableTransport
		info      string
		err       error
	)

	switch {
	case wsURL != "":
		transport, err = openRemoteTransport()
		info = fmt.Sprintf("Remote: %s", wsURL)
	case portName != "":
		transport, err = bridge.Open(portName, baudRate)
		info = fmt.Sprintf("Bridge: %s @ %d baud", portName, baudRate)
	case spidevPath != "":
		transport, err = openSpidevTransport()
		info = fmt.Sprintf("SPI: %s @ %d Hz, mode %d", spidevPath, spiSpeed, spiMode)
	default:
		return nil, "", fmt.Errorf("one of --spidev, --port or --url must be specified")
	}
	if err != nil {
		return nil, "", err
	}

	if traceFile != "" {
		f, err := os.Create(traceFile)
		if err != nil {
			transport.Close()
			return nil, "", fmt.Errorf("failed to create trace file: %v", err)
		}
		transport = &traceTransport{
			Transport: trace.NewTransport(transport, trace.NewWriter(f)),
			closers:   []io.Closer{transport, f},
		}
	}

	return transport, info, nil
}

// OpenDevice opens the selected transport and wraps it in a register
// transaction engine.
func OpenDevice() (*tmc4671.Device, io.Closer, string, error) {
	transport, info, err := OpenTransport()
	if err != nil {
		return nil, nil, "", err
	}

	dev := tmc4671.New(transport)
	dev.Strict = strictReplies
	return dev, transport, info, nil
}

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv("TMC_PASSWORD"); pw != "" {
		return pw, nil
	}

	return promptPassword()
}

// promptPassword reads a password from the terminal without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")

	// Read password without echo
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr) // newline after password
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr) // newline after password
	return string(passwordBytes), nil
}

// resolveRegister accepts a datasheet register name or a numeric
// address (decimal or 0x-prefixed hex).
func resolveRegister(arg string) (uint8, error) {
	if addr, ok := tmc4671.LookupRegister(arg); ok {
		return addr, nil
	}

	addr, err := strconv.ParseUint(arg, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown register %q", arg)
	}
	if addr > uint64(tmc4671.AddressMask) {
		return 0, fmt.Errorf("register address 0x%X out of range (max 0x%X)", addr, tmc4671.AddressMask)
	}
	return uint8(addr), nil
}
