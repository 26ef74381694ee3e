// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

// Package bridge is a tmc4671.Transport that reaches the chip through a
// serial-attached SPI bridge (a USB adapter that clocks raw frames onto
// the bus and streams the received octets back).
//
// The bridge protocol is transparent: the transport writes the frame
// bytes to the port and reads exactly the same number of bytes back.
// Framing is implicit in the fixed datagram size, so the caller must
// exchange whole frames only.
package bridge

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Transport shuttles frames over a serial SPI bridge.
type Transport struct {
	rw io.ReadWriteCloser
}

// Open opens the named serial port at the given baud rate and wraps it
// in a Transport.
func Open(portName string, baudRate int) (*Transport, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}

	return &Transport{rw: port}, nil
}

// New wraps an already-open byte stream. Used by tests and by callers
// with their own port configuration.
func New(rw io.ReadWriteCloser) *Transport {
	return &Transport{rw: rw}
}

// Exchange writes the buffer to the bridge and replaces its contents
// with the bytes the bridge clocked in during the transfer.
func (t *Transport) Exchange(buf []byte) error {
	if _, err := t.rw.Write(buf); err != nil {
		return fmt.Errorf("bridge write: %w", err)
	}

	if _, err := io.ReadFull(t.rw, buf); err != nil {
		return fmt.Errorf("bridge read: %w", err)
	}

	return nil
}

// Close closes the underlying port.
func (t *Transport) Close() error {
	return t.rw.Close()
}
