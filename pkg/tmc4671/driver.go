// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package tmc4671

// Transport is a full-duplex, in-place byte exchange over the bus. The
// implementation must clock out the buffer's current contents and
// overwrite it with the octets received during the same exchange. It
// has no notion of frame boundaries; the driver always exchanges
// exactly DatagramSize octets per call.
type Transport interface {
	Exchange(buf []byte) error
}

// Device is a TMC4671 reachable through a Transport.
//
// The device is stateless between calls and issues at most one exchange
// at a time; it never pipelines, retries, or logs. The transport handle
// is assumed to be exclusively owned by this device. Concurrent use of
// one Device, or of two Devices on the same physical bus, requires
// external synchronization by the caller.
type Device struct {
	transport Transport

	// Strict makes every transfer verify that the reply echoes the
	// requested register address, failing with *ReplyMismatchError on a
	// mismatch. Off by default: the chip's ordering guarantee makes the
	// check redundant on a healthy bus, but it catches shifted frames
	// on a misbehaving one.
	Strict bool
}

// New returns a device driving the given transport.
func New(transport Transport) *Device {
	return &Device{transport: transport}
}

// ReadRegister reads the 32-bit value of a register. The data field of
// the request is zero and ignored by the chip.
func (d *Device) ReadRegister(register uint8) (uint32, error) {
	reply, err := d.transfer(Datagram{
		Write:   false,
		Address: register,
	})
	if err != nil {
		return 0, err
	}

	return reply.Data, nil
}

// WriteRegister stores a 32-bit value into a register. The reply's data
// field is discarded: depending on the register it may echo the written
// value or carry the previous one, and the driver does not interpret
// it. A failed write leaves device state indeterminate.
func (d *Device) WriteRegister(register uint8, value uint32) error {
	_, err := d.transfer(Datagram{
		Write:   true,
		Address: register,
		Data:    value,
	})
	return err
}

// GetChipInfo reads one field of the chip identification block: it
// writes the field selector to CHIPINFO_ADDR, then reads CHIPINFO_DATA.
//
// The two steps are not atomic. The selector is device state, so
// another transaction on the same chip between the steps corrupts the
// result; callers sharing a bus must hold their own lock around the
// call.
func (d *Device) GetChipInfo(field ChipInfo) (uint32, error) {
	if err := d.WriteRegister(RegChipinfoAddr, uint32(field)); err != nil {
		return 0, err
	}
	return d.ReadRegister(RegChipinfoData)
}

// transfer performs one datagram exchange: encode, exchange in place,
// decode. All register operations funnel through here.
func (d *Device) transfer(request Datagram) (Datagram, error) {
	buf := request.Bytes()

	if err := d.transport.Exchange(buf[:]); err != nil {
		return Datagram{}, &CommunicationError{Err: err}
	}

	// Cannot fail for a full buffer, but checked so a broken Transport
	// implementation surfaces as ParseError instead of garbage data.
	reply, err := ParseDatagram(buf[:])
	if err != nil {
		return Datagram{}, err
	}

	if d.Strict && reply.Address != request.Address&AddressMask {
		return Datagram{}, &ReplyMismatchError{
			Requested: request.Address & AddressMask,
			Received:  reply.Address,
		}
	}

	return reply, nil
}
