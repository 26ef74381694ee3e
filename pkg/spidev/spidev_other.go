// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

//go:build !linux

package spidev

import "errors"

// Device is unavailable on this platform; the spidev interface only
// exists on Linux.
type Device struct {
	Speed uint32
}

var errUnsupported = errors.New("spidev: only supported on linux")

func Open(bus, chip int) (*Device, error) { return nil, errUnsupported }

func (d *Device) SetMode(mode uint8) error    { return errUnsupported }
func (d *Device) SetSpeed(speed uint32) error { return errUnsupported }
func (d *Device) Exchange(buf []byte) error   { return errUnsupported }
func (d *Device) Close() error                { return errUnsupported }
