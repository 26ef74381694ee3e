// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

// Package trace records bus exchanges as a CBOR stream for offline
// protocol analysis. A Transport wrapper taps every exchange flowing
// through it; the resulting file is a plain concatenation of CBOR
// records readable with ReadAll.
package trace

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/openfoc/tmc4671/pkg/tmc4671"
)

// Record is one bus exchange: what was clocked out, what came back, and
// the transport error if the exchange failed (in which case RX is
// empty).
type Record struct {
	Time time.Time `cbor:"1,keyasint"`
	TX   []byte    `cbor:"2,keyasint"`
	RX   []byte    `cbor:"3,keyasint,omitempty"`
	Err  string    `cbor:"4,keyasint,omitempty"`
}

// Writer appends records to an underlying stream. Safe for concurrent
// use.
type Writer struct {
	mutex sync.Mutex
	enc   *cbor.Encoder
}

// NewWriter returns a Writer appending CBOR records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: cbor.NewEncoder(w)}
}

// Write appends one record.
func (w *Writer) Write(rec Record) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.enc.Encode(rec)
}

// Transport taps a bus transport, recording every exchange before
// passing the result through unchanged.
type Transport struct {
	next   tmc4671.Transport
	writer *Writer
}

// NewTransport wraps next so every exchange is recorded to writer.
func NewTransport(next tmc4671.Transport, writer *Writer) *Transport {
	return &Transport{next: next, writer: writer}
}

// Exchange forwards to the wrapped transport and records the outcome.
// Recording failures are deliberately swallowed: a broken trace file
// must not take the bus down with it.
func (t *Transport) Exchange(buf []byte) error {
	tx := make([]byte, len(buf))
	copy(tx, buf)

	err := t.next.Exchange(buf)

	rec := Record{Time: time.Now(), TX: tx}
	if err != nil {
		rec.Err = err.Error()
	} else {
		rec.RX = make([]byte, len(buf))
		copy(rec.RX, buf)
	}
	_ = t.writer.Write(rec)

	return err
}

// ReadAll decodes every record from a trace stream.
func ReadAll(r io.Reader) ([]Record, error) {
	dec := cbor.NewDecoder(r)

	var records []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return records, err
		}
		records = append(records, rec)
	}
}
