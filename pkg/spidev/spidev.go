// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

//go:build linux

// Package spidev is a tmc4671.Transport backed by the Linux spidev
// userspace interface (/dev/spidevB.C).
package spidev

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"syscall"
	"unsafe"
)

const (
	iocWrMode       = 0x40016B01
	iocWrMaxSpeedHz = 0x40046B04
)

// Device is an open spidev handle. Exchange is safe for concurrent use;
// calls are serialized on an internal mutex.
type Device struct {
	mutex sync.Mutex
	file  *os.File

	// Speed is the clock rate in Hz applied to each transfer.
	Speed uint32
}

// Open opens /dev/spidev<bus>.<chip>. The TMC4671 samples on the
// trailing clock edge with the clock idle high, so callers normally
// follow up with SetMode(3).
func Open(bus, chip int) (*Device, error) {
	d := &Device{Speed: 1000000}

	var err error
	d.file, err = os.OpenFile(fmt.Sprintf("/dev/spidev%d.%d", bus, chip), syscall.O_RDWR|syscall.O_NOCTTY, 0600)
	if err != nil {
		return nil, err
	}

	return d, nil
}

// SetMode sets the SPI clock polarity/phase mode (0-3).
func (d *Device) SetMode(mode uint8) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	_, _, errNo := syscall.Syscall(syscall.SYS_IOCTL, d.file.Fd(), iocWrMode, uintptr(unsafe.Pointer(&mode)))
	if errNo != 0 {
		return fmt.Errorf("spidev: set mode %d failed: %s", mode, errNo.Error())
	}
	return nil
}

// SetSpeed sets the device default clock rate in Hz and uses it for
// subsequent transfers.
func (d *Device) SetSpeed(speed uint32) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	_, _, errNo := syscall.Syscall(syscall.SYS_IOCTL, d.file.Fd(), iocWrMaxSpeedHz, uintptr(unsafe.Pointer(&speed)))
	if errNo != 0 {
		return fmt.Errorf("spidev: set speed %d failed: %s", speed, errNo.Error())
	}

	d.Speed = speed
	return nil
}

func messageIoctl(numTransfers int) uintptr {
	const base uint32 = 0x40006B00
	return uintptr(base + uint32(numTransfers*0x200000))
}

// Exchange performs one full-duplex transfer, clocking out buf and
// overwriting it with the received octets.
func (d *Device) Exchange(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	type iocTransferRaw struct {
		TxBuf       uint64
		RxBuf       uint64
		Len         uint32
		Frequency   uint32
		DelayUs     uint16
		BitsPerWord uint8
		CsChange    uint8
		Pad         uint32
	}

	tr := iocTransferRaw{
		TxBuf:       uint64(uintptr(unsafe.Pointer(&buf[0]))),
		RxBuf:       uint64(uintptr(unsafe.Pointer(&buf[0]))),
		Len:         uint32(len(buf)),
		Frequency:   d.Speed,
		BitsPerWord: 8,
	}

	_, _, errNo := syscall.Syscall(syscall.SYS_IOCTL, d.file.Fd(), messageIoctl(1), uintptr(unsafe.Pointer(&tr)))

	runtime.KeepAlive(buf)

	if errNo != 0 {
		return fmt.Errorf("spidev: transfer failed: %s", errNo.Error())
	}

	return nil
}

// Close releases the spidev handle.
func (d *Device) Close() error {
	return d.file.Close()
}
