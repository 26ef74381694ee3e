// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

// Package remote exposes a physical TMC4671 bus over WebSocket so bench
// tooling can run against hardware attached to another host.
//
// Wire protocol: the client sends one binary message per exchange,
// carrying exactly the frame bytes. The server replies with one binary
// message: a status octet (0x00 success, 0x01 failure) followed by the
// received frame on success or an error string on failure. Exchanges on
// the shared bus are serialized server-side, but the selector state of
// composite transactions is still per-chip; clients interleaving
// multi-step transactions need their own coordination.
package remote

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/openfoc/tmc4671/pkg/tmc4671"
)

const (
	statusOK    = 0x00
	statusError = 0x01
)

// ServerConfig carries the optional knobs for a Server.
type ServerConfig struct {
	// Username/Password enable HTTP Basic auth when both are set.
	Username string
	Password string

	// Logger receives connection and exchange diagnostics. Defaults to
	// the standard logrus logger.
	Logger *logrus.Entry
}

// Server bridges WebSocket clients onto one local bus transport.
type Server struct {
	transport tmc4671.Transport
	cfg       ServerConfig
	log       *logrus.Entry
	upgrader  websocket.Upgrader

	// One exchange at a time on the physical bus.
	busMutex sync.Mutex
}

// NewServer returns a server bridging clients onto the given transport.
func NewServer(transport tmc4671.Transport, cfg ServerConfig) *Server {
	log := cfg.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Server{
		transport: transport,
		cfg:       cfg,
		log:       log,
	}
}

// ServeHTTP upgrades the request and services exchanges until the
// client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="tmc4671 bus"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		s.log.WithField("remote", r.RemoteAddr).Warn("Rejected unauthorized connection")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithField("remote", r.RemoteAddr).WithError(err).Error("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	log := s.log.WithField("remote", r.RemoteAddr)
	log.Info("Client connected")

	for {
		messageType, frame, err := conn.ReadMessage()
		if err != nil {
			log.WithError(err).Info("Client disconnected")
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}

		reply := s.exchange(frame, log)
		if err := conn.WriteMessage(websocket.BinaryMessage, reply); err != nil {
			log.WithError(err).Error("Reply write failed")
			return
		}
	}
}

// exchange runs one frame against the bus and builds the reply message.
func (s *Server) exchange(frame []byte, log *logrus.Entry) []byte {
	if len(frame) != tmc4671.DatagramSize {
		log.WithField("len", len(frame)).Warn("Rejected malformed frame")
		return append([]byte{statusError}, "malformed frame"...)
	}

	s.busMutex.Lock()
	err := s.transport.Exchange(frame)
	s.busMutex.Unlock()

	if err != nil {
		log.WithError(err).Warn("Bus exchange failed")
		return append([]byte{statusError}, err.Error()...)
	}

	return append([]byte{statusOK}, frame...)
}

func (s *Server) authorized(r *http.Request) bool {
	if s.cfg.Username == "" && s.cfg.Password == "" {
		return true
	}
	user, pass, ok := r.BasicAuth()
	return ok && user == s.cfg.Username && pass == s.cfg.Password
}
