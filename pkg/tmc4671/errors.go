// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package tmc4671

import "fmt"

// ParseError reports a received buffer too short to hold a datagram.
// For a fixed five-octet frame this is the only way decoding can fail,
// and it points at a transport or framing bug rather than a device
// condition.
type ParseError struct {
	Len int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("short datagram: got %d bytes, need %d", e.Len, DatagramSize)
}

// CommunicationError reports a failed bus exchange. The transport's own
// error is carried unmodified for diagnostics; the driver never
// interprets it and never retries.
type CommunicationError struct {
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("bus exchange failed: %v", e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}

// ReplyMismatchError reports a reply whose echoed register address does
// not match the request. Only produced when Device.Strict is set.
type ReplyMismatchError struct {
	Requested uint8
	Received  uint8
}

func (e *ReplyMismatchError) Error() string {
	return fmt.Sprintf("reply address mismatch: requested 0x%02X, received 0x%02X", e.Requested, e.Received)
}
