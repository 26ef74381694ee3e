// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openfoc/tmc4671/pkg/remote"
)

var (
	serveListen   string
	serveUsername string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the local bus to remote clients",
	Long: `Run a WebSocket server bridging remote clients onto the local bus.

The local bus is selected with the usual --spidev or --port flags.
Remote clients connect with 'tmcctl --url ws://host:port/ ...'.

With --auth-username set, clients must authenticate via HTTP Basic
auth. The server password is read from the TMC_SERVE_PASSWORD
environment variable, or prompted at startup if not set. Run behind a
TLS-terminating proxy when serving beyond a trusted network.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", ":8471", "Listen address")
	serveCmd.Flags().StringVar(&serveUsername, "auth-username", "", "Require HTTP Basic auth with this username")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if wsURL != "" {
		return fmt.Errorf("serve requires a local bus; use --spidev or --port")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := remote.ServerConfig{
		Username: serveUsername,
		Logger:   logrus.NewEntry(log),
	}
	if serveUsername != "" {
		password := os.Getenv("TMC_SERVE_PASSWORD")
		if password == "" {
			var err error
			password, err = promptPassword()
			if err != nil {
				return err
			}
		}
		if password == "" {
			return fmt.Errorf("empty password; set TMC_SERVE_PASSWORD or enter one at the prompt")
		}
		cfg.Password = password
	}

	transport, connInfo, err := OpenTransport()
	if err != nil {
		return err
	}
	defer transport.Close()

	log.WithFields(logrus.Fields{
		"listen": serveListen,
		"bus":    connInfo,
		"auth":   serveUsername != "",
	}).Info("Serving bus")

	return http.ListenAndServe(serveListen, remote.NewServer(transport, cfg))
}
