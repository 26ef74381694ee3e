// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package remote

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/openfoc/tmc4671/pkg/tmc4671"
)

// benchSim acts as the physical bus behind the server: it implements
// the chip-identification selector protocol well enough for end-to-end
// tests.
type benchSim struct {
	selector uint32
	err      error
}

func (b *benchSim) Exchange(buf []byte) error {
	if b.err != nil {
		return b.err
	}

	request, err := tmc4671.ParseDatagram(buf)
	if err != nil {
		return err
	}

	var data uint32
	if request.Write {
		if request.Address == tmc4671.RegChipinfoAddr {
			b.selector = request.Data
		}
	} else if request.Address == tmc4671.RegChipinfoData && b.selector == 0 {
		data = 0x34363731 // "4671"
	}

	reply := tmc4671.Datagram{Write: request.Write, Address: request.Address, Data: data}.Bytes()
	copy(buf, reply[:])
	return nil
}

func quietLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func startServer(t *testing.T, transport tmc4671.Transport, cfg ServerConfig) (*httptest.Server, string) {
	t.Helper()
	cfg.Logger = quietLogger()
	ts := httptest.NewServer(NewServer(transport, cfg))
	t.Cleanup(ts.Close)
	return ts, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestRemoteExchange_RoundTrip(t *testing.T) {
	_, wsURL := startServer(t, &benchSim{}, ServerConfig{})

	client, err := Dial(wsURL, "", "", false)
	if err != nil {
		t.Fatalf("Dial error: %v", err)
	}
	defer client.Close()

	dev := tmc4671.New(client)
	value, err := dev.GetChipInfo(tmc4671.ChipInfoType)
	if err != nil {
		t.Fatalf("GetChipInfo over remote bus: %v", err)
	}
	if value != 0x34363731 {
		t.Errorf("SI_TYPE mismatch: got 0x%08X, want 0x34363731", value)
	}
}

func TestRemoteExchange_BusErrorPropagates(t *testing.T) {
	_, wsURL := startServer(t, &benchSim{err: errors.New("chip select stuck")}, ServerConfig{})

	client, err := Dial(wsURL, "", "", false)
	if err != nil {
		t.Fatalf("Dial error: %v", err)
	}
	defer client.Close()

	dev := tmc4671.New(client)
	_, err = dev.ReadRegister(tmc4671.RegStatusFlags)
	if err == nil {
		t.Fatal("expected error from remote bus fault")
	}
	var commErr *tmc4671.CommunicationError
	if !errors.As(err, &commErr) {
		t.Fatalf("expected *CommunicationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "chip select stuck") {
		t.Errorf("server error text lost: %v", err)
	}
}

func TestRemoteAuth(t *testing.T) {
	cfg := ServerConfig{Username: "bench", Password: "secret"}
	_, wsURL := startServer(t, &benchSim{}, cfg)

	// Wrong credentials are refused at the handshake.
	if _, err := Dial(wsURL, "bench", "wrong", false); err == nil {
		t.Error("expected handshake failure with bad credentials")
	}
	if _, err := Dial(wsURL, "", "", false); err == nil {
		t.Error("expected handshake failure with missing credentials")
	}

	client, err := Dial(wsURL, "bench", "secret", false)
	if err != nil {
		t.Fatalf("Dial with valid credentials failed: %v", err)
	}
	defer client.Close()

	dev := tmc4671.New(client)
	if _, err := dev.ReadRegister(tmc4671.RegChipinfoData); err != nil {
		t.Errorf("authenticated exchange failed: %v", err)
	}
}

func TestDial_RejectsBadScheme(t *testing.T) {
	if _, err := Dial("http://localhost/bus", "", "", false); err == nil {
		t.Error("expected error for non-websocket scheme")
	}
}

func TestServer_RejectsMalformedFrame(t *testing.T) {
	_, wsURL := startServer(t, &benchSim{}, ServerConfig{})

	client, err := Dial(wsURL, "", "", false)
	if err != nil {
		t.Fatalf("Dial error: %v", err)
	}
	defer client.Close()

	err = client.Exchange([]byte{0x01, 0x02}) // not a full frame
	if err == nil {
		t.Fatal("expected error for short frame")
	}
	if !strings.Contains(err.Error(), "malformed frame") {
		t.Errorf("expected malformed frame rejection, got %v", err)
	}
}
