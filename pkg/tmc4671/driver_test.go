// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package tmc4671

import (
	"errors"
	"testing"
)

// scriptTransport captures every outgoing frame and plays back scripted
// replies (or errors) in call order.
type scriptTransport struct {
	sent    [][]byte
	replies [][]byte
	errs    []error
}

func (s *scriptTransport) Exchange(buf []byte) error {
	idx := len(s.sent)
	sent := make([]byte, len(buf))
	copy(sent, buf)
	s.sent = append(s.sent, sent)

	if idx < len(s.errs) && s.errs[idx] != nil {
		return s.errs[idx]
	}
	if idx < len(s.replies) {
		copy(buf, s.replies[idx])
	}
	return nil
}

// chipSim emulates the chip-identification block of a real device:
// writes to CHIPINFO_ADDR latch the selector, reads of CHIPINFO_DATA
// return the field the selector currently points at.
type chipSim struct {
	selector  uint32
	exchanges int
}

func (c *chipSim) Exchange(buf []byte) error {
	c.exchanges++

	request, err := ParseDatagram(buf)
	if err != nil {
		return err
	}

	var data uint32
	if request.Write {
		if request.Address == RegChipinfoAddr {
			c.selector = request.Data
		}
		data = request.Data
	} else if request.Address == RegChipinfoData && c.selector == 0 {
		data = 0x41424344 // "ABCD"
	}

	reply := Datagram{Write: request.Write, Address: request.Address, Data: data}.Bytes()
	copy(buf, reply[:])
	return nil
}

// ============================================================
// ReadRegister / WriteRegister
// ============================================================

func TestReadRegister_WireBytes(t *testing.T) {
	reply := Datagram{Address: RegPidVelocityActual, Data: 0xDEADBEEF}.Bytes()
	transport := &scriptTransport{replies: [][]byte{reply[:]}}
	dev := New(transport)

	value, err := dev.ReadRegister(RegPidVelocityActual)
	if err != nil {
		t.Fatalf("ReadRegister error: %v", err)
	}
	if value != 0xDEADBEEF {
		t.Errorf("value mismatch: got 0x%08X, want 0xDEADBEEF", value)
	}

	if len(transport.sent) != 1 {
		t.Fatalf("expected exactly 1 exchange, got %d", len(transport.sent))
	}
	want := Datagram{Write: false, Address: RegPidVelocityActual, Data: 0}.Bytes()
	if string(transport.sent[0]) != string(want[:]) {
		t.Errorf("outgoing frame mismatch: got % X, want % X", transport.sent[0], want)
	}
}

func TestWriteRegister_WireBytes(t *testing.T) {
	transport := &scriptTransport{}
	dev := New(transport)

	if err := dev.WriteRegister(RegPidVelocityTarget, 0x00001234); err != nil {
		t.Fatalf("WriteRegister error: %v", err)
	}

	if len(transport.sent) != 1 {
		t.Fatalf("expected exactly 1 exchange, got %d", len(transport.sent))
	}
	want := Datagram{Write: true, Address: RegPidVelocityTarget, Data: 0x00001234}.Bytes()
	if string(transport.sent[0]) != string(want[:]) {
		t.Errorf("outgoing frame mismatch: got % X, want % X", transport.sent[0], want)
	}
}

func TestWriteRegister_DiscardsReplyPayload(t *testing.T) {
	// The reply carries an arbitrary payload; write success must depend
	// only on the transport succeeding.
	reply := Datagram{Write: true, Address: RegOpenloopMode, Data: 0xCAFEF00D}.Bytes()
	transport := &scriptTransport{replies: [][]byte{reply[:]}}
	dev := New(transport)

	if err := dev.WriteRegister(RegOpenloopMode, 0); err != nil {
		t.Errorf("write should succeed regardless of reply payload, got %v", err)
	}
}

func TestReadRegister_TransportError(t *testing.T) {
	busFault := errors.New("spi: transfer failed: EIO")
	transport := &scriptTransport{errs: []error{busFault}}
	dev := New(transport)

	_, err := dev.ReadRegister(RegStatusFlags)
	if err == nil {
		t.Fatal("expected error from failing transport")
	}
	var commErr *CommunicationError
	if !errors.As(err, &commErr) {
		t.Fatalf("expected *CommunicationError, got %T", err)
	}
	if !errors.Is(err, busFault) {
		t.Error("CommunicationError should wrap the transport error")
	}
}

func TestWriteRegister_TransportError(t *testing.T) {
	transport := &scriptTransport{errs: []error{errors.New("wire fault")}}
	dev := New(transport)

	err := dev.WriteRegister(RegOpenloopMode, 1)
	var commErr *CommunicationError
	if !errors.As(err, &commErr) {
		t.Fatalf("expected *CommunicationError, got %T (%v)", err, err)
	}
}

// ============================================================
// GetChipInfo
// ============================================================

func TestGetChipInfo_TwoExchangesInOrder(t *testing.T) {
	sim := &chipSim{selector: 0xFF} // force the selector write to matter
	dev := New(sim)

	value, err := dev.GetChipInfo(ChipInfoType)
	if err != nil {
		t.Fatalf("GetChipInfo error: %v", err)
	}
	if value != 0x41424344 {
		t.Errorf("SI_TYPE mismatch: got 0x%08X, want 0x41424344", value)
	}
	if sim.exchanges != 2 {
		t.Errorf("expected exactly 2 exchanges, got %d", sim.exchanges)
	}
}

func TestGetChipInfo_SelectorThenData(t *testing.T) {
	reply := Datagram{Address: RegChipinfoData, Data: 0x34363731}.Bytes()
	transport := &scriptTransport{replies: [][]byte{nil, reply[:]}}
	dev := New(transport)

	if _, err := dev.GetChipInfo(ChipInfoVersion); err != nil {
		t.Fatalf("GetChipInfo error: %v", err)
	}

	if len(transport.sent) != 2 {
		t.Fatalf("expected 2 exchanges, got %d", len(transport.sent))
	}
	wantFirst := Datagram{Write: true, Address: RegChipinfoAddr, Data: uint32(ChipInfoVersion)}.Bytes()
	wantSecond := Datagram{Write: false, Address: RegChipinfoData, Data: 0}.Bytes()
	if string(transport.sent[0]) != string(wantFirst[:]) {
		t.Errorf("first exchange mismatch: got % X, want % X", transport.sent[0], wantFirst)
	}
	if string(transport.sent[1]) != string(wantSecond[:]) {
		t.Errorf("second exchange mismatch: got % X, want % X", transport.sent[1], wantSecond)
	}
}

func TestGetChipInfo_StopsAfterFailedSelectorWrite(t *testing.T) {
	transport := &scriptTransport{errs: []error{errors.New("bus fault")}}
	dev := New(transport)

	_, err := dev.GetChipInfo(ChipInfoType)
	var commErr *CommunicationError
	if !errors.As(err, &commErr) {
		t.Fatalf("expected *CommunicationError, got %T", err)
	}
	if len(transport.sent) != 1 {
		t.Errorf("composite must stop after the failed step, got %d exchanges", len(transport.sent))
	}
}

// ============================================================
// Strict mode
// ============================================================

func TestStrictMode_ReplyAddressMismatch(t *testing.T) {
	reply := Datagram{Address: RegAdcRawData, Data: 7}.Bytes()
	transport := &scriptTransport{replies: [][]byte{reply[:]}}

	dev := New(transport)
	dev.Strict = true

	_, err := dev.ReadRegister(RegStatusFlags)
	var mismatch *ReplyMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *ReplyMismatchError, got %T (%v)", err, err)
	}
	if mismatch.Requested != RegStatusFlags || mismatch.Received != RegAdcRawData {
		t.Errorf("mismatch fields wrong: %+v", mismatch)
	}
}

func TestDefaultMode_TrustsReplyAddress(t *testing.T) {
	// Without strict mode the driver preserves the original behavior of
	// trusting the transport's ordering guarantee.
	reply := Datagram{Address: RegAdcRawData, Data: 7}.Bytes()
	transport := &scriptTransport{replies: [][]byte{reply[:]}}
	dev := New(transport)

	value, err := dev.ReadRegister(RegStatusFlags)
	if err != nil {
		t.Fatalf("non-strict read should succeed, got %v", err)
	}
	if value != 7 {
		t.Errorf("value mismatch: got %d, want 7", value)
	}
}

func TestStrictMode_MatchingReply(t *testing.T) {
	reply := Datagram{Address: RegStatusFlags, Data: 9}.Bytes()
	transport := &scriptTransport{replies: [][]byte{reply[:]}}

	dev := New(transport)
	dev.Strict = true

	value, err := dev.ReadRegister(RegStatusFlags)
	if err != nil {
		t.Fatalf("strict read with matching reply failed: %v", err)
	}
	if value != 9 {
		t.Errorf("value mismatch: got %d, want 9", value)
	}
}

// ============================================================
// Register and chip-info lookups
// ============================================================

func TestLookupRegister(t *testing.T) {
	addr, ok := LookupRegister("CHIPINFO_DATA")
	if !ok || addr != RegChipinfoData {
		t.Errorf("LookupRegister(CHIPINFO_DATA) = 0x%02X, %v", addr, ok)
	}

	addr, ok = LookupRegister("pid_velocity_actual")
	if !ok || addr != RegPidVelocityActual {
		t.Errorf("lookup should be case-insensitive, got 0x%02X, %v", addr, ok)
	}

	if _, ok := LookupRegister("NOT_A_REGISTER"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestRegisterName(t *testing.T) {
	if name := RegisterName(RegChipinfoAddr); name != "CHIPINFO_ADDR" {
		t.Errorf("RegisterName(0x01) = %q", name)
	}
	if name := RegisterName(0x7F); name != "UNKNOWN" {
		t.Errorf("undocumented address should map to UNKNOWN, got %q", name)
	}
}

func TestRegisterTable_NamesRoundTrip(t *testing.T) {
	for _, def := range Registers() {
		addr, ok := LookupRegister(def.Name)
		if !ok {
			t.Errorf("%s: name missing from lookup", def.Name)
			continue
		}
		if addr != def.Addr {
			t.Errorf("%s: lookup returned 0x%02X, table says 0x%02X", def.Name, addr, def.Addr)
		}
	}
}

func TestLookupChipInfo(t *testing.T) {
	tests := []struct {
		in   string
		want ChipInfo
		ok   bool
	}{
		{"SI_TYPE", ChipInfoType, true},
		{"type", ChipInfoType, true},
		{"si_build", ChipInfoBuild, true},
		{"VERSION", ChipInfoVersion, true},
		{"bogus", 0, false},
	}

	for _, tt := range tests {
		got, ok := LookupChipInfo(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LookupChipInfo(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatChipInfo_Type(t *testing.T) {
	out := FormatChipInfo(ChipInfoType, 0x34363731)
	if out != `"4671" (0x34363731)` {
		t.Errorf("SI_TYPE formatting mismatch: %q", out)
	}
}
