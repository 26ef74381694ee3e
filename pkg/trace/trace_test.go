// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package trace

import (
	"bytes"
	"errors"
	"testing"

	"github.com/openfoc/tmc4671/pkg/tmc4671"
)

type echoTransport struct {
	err error
}

func (e *echoTransport) Exchange(buf []byte) error {
	return e.err
}

func TestTransport_RecordsExchanges(t *testing.T) {
	var stream bytes.Buffer
	tap := NewTransport(&echoTransport{}, NewWriter(&stream))

	dev := tmc4671.New(tap)
	if err := dev.WriteRegister(tmc4671.RegOpenloopMode, 0x01020304); err != nil {
		t.Fatalf("WriteRegister error: %v", err)
	}
	if _, err := dev.ReadRegister(tmc4671.RegStatusFlags); err != nil {
		t.Fatalf("ReadRegister error: %v", err)
	}

	records, err := ReadAll(&stream)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	wantTX := tmc4671.Datagram{Write: true, Address: tmc4671.RegOpenloopMode, Data: 0x01020304}.Bytes()
	if !bytes.Equal(records[0].TX, wantTX[:]) {
		t.Errorf("record 0 TX mismatch: got % X, want % X", records[0].TX, wantTX)
	}
	if records[0].Err != "" {
		t.Errorf("record 0 should have no error, got %q", records[0].Err)
	}
	if len(records[0].RX) != tmc4671.DatagramSize {
		t.Errorf("record 0 RX length %d, want %d", len(records[0].RX), tmc4671.DatagramSize)
	}
	if records[0].Time.IsZero() {
		t.Error("record timestamp should be set")
	}
}

func TestTransport_RecordsFailures(t *testing.T) {
	var stream bytes.Buffer
	tap := NewTransport(&echoTransport{err: errors.New("bus fault")}, NewWriter(&stream))

	dev := tmc4671.New(tap)
	if _, err := dev.ReadRegister(tmc4671.RegChipinfoData); err == nil {
		t.Fatal("expected transport error to pass through the tap")
	}

	records, err := ReadAll(&stream)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Err != "bus fault" {
		t.Errorf("record error mismatch: %q", records[0].Err)
	}
	if len(records[0].RX) != 0 {
		t.Errorf("failed exchange should record no RX, got % X", records[0].RX)
	}
}

func TestReadAll_Empty(t *testing.T) {
	records, err := ReadAll(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("ReadAll on empty stream: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
