// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package remote

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a tmc4671.Transport that forwards exchanges to a remote
// bus server. Exchange calls are serialized per connection by the
// request/reply protocol itself; the client issues one message and
// waits for its reply before returning.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to a bus server at a ws:// or wss:// URL with optional
// HTTP Basic auth. skipSSLVerify disables certificate verification for
// wss:// endpoints.
func Dial(wsURL, username, password string, skipSSLVerify bool) (*Client, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %v", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %v", err)
	}

	return &Client{conn: conn}, nil
}

// Exchange sends the frame to the server and replaces buf with the
// frame the remote bus clocked in.
func (c *Client) Exchange(buf []byte) error {
	if err := c.conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
		return fmt.Errorf("remote bus send: %w", err)
	}

	for {
		messageType, reply, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("remote bus receive: %w", err)
		}
		if messageType != websocket.BinaryMessage {
			continue
		}

		if len(reply) < 1 {
			return fmt.Errorf("remote bus: empty reply")
		}
		if reply[0] != statusOK {
			return fmt.Errorf("remote bus: %s", reply[1:])
		}
		if len(reply)-1 != len(buf) {
			return fmt.Errorf("remote bus: reply length %d, want %d", len(reply)-1, len(buf))
		}

		copy(buf, reply[1:])
		return nil
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
