// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

// Package tmc4671 drives the Trinamic TMC4671 servo controller IC over
// its 40-bit SPI register interface.
//
// The package contains the wire-level datagram codec, the register
// transaction engine, and the register address table. It is transport
// agnostic: anything that can perform a full-duplex in-place exchange
// of a byte buffer (see Transport) can carry the protocol.
package tmc4671

import "encoding/binary"

// Wire layout of a datagram. Every exchange with the chip is exactly
// five octets in each direction: one address octet followed by a 32-bit
// big-endian data word. The top bit of the address octet selects the
// transfer direction, the low seven bits select the register.
const (
	DatagramSize = 5

	// WriteBit is set in the address octet for write transfers.
	WriteBit = 0x80
	// AddressMask covers the seven register address bits.
	AddressMask = 0x7F
)

// Datagram is one logical register transfer, request or reply.
type Datagram struct {
	Write   bool
	Address uint8
	Data    uint32
}

// Bytes encodes the datagram into its 5-octet wire form. Addresses
// above 127 are masked so the direction bit is never clobbered.
func (d Datagram) Bytes() [DatagramSize]byte {
	var out [DatagramSize]byte

	out[0] = d.Address & AddressMask
	if d.Write {
		out[0] |= WriteBit
	}
	binary.BigEndian.PutUint32(out[1:], d.Data)

	return out
}

// ParseDatagram decodes a received buffer into a datagram. Only the
// first DatagramSize bytes are consulted; a shorter buffer fails with
// *ParseError. Any full-length buffer decodes successfully, so the
// codec performs no semantic validation of the decoded fields.
func ParseDatagram(buf []byte) (Datagram, error) {
	if len(buf) < DatagramSize {
		return Datagram{}, &ParseError{Len: len(buf)}
	}

	return Datagram{
		Write:   buf[0]&WriteBit != 0,
		Address: buf[0] & AddressMask,
		Data:    binary.BigEndian.Uint32(buf[1:DatagramSize]),
	}, nil
}
