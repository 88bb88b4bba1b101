package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/spf13/cobra"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
	"github.com/HanHach/Codex-Numeris/internal/server"
)

var serveAPI bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explorer over SSH and the catalog over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port := os.Getenv("PORT"); port != "" {
			cfg.WithPort(port)
		}
		opts, err := frameOptions(cfg)
		if err != nil {
			return err
		}

		// Generate host key if it doesn't exist
		if err := ensureHostKey(cfg.SSH.HostKey); err != nil {
			return fmt.Errorf("host key: %w", err)
		}

		source, closeSource, err := openSource(cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var api *server.HTTPServer
		if serveAPI {
			// The API serves the same catalog as the SSH sessions.
			var apiCatalog server.Catalog = catalog.Lookup{Source: source}
			if store, ok := source.(*catalog.Store); ok {
				apiCatalog = store
				if n, err := store.Count(ctx); err == nil {
					log.Printf("Catalog: %s (%d projects)", store.Path(), n)
				}
			}
			api = server.NewHTTPServer(server.HTTPConfig{
				Addr:     cfg.HTTP.Addr,
				AllowAll: cfg.HTTP.AllowAllOrigins,
			}, apiCatalog)
			go func() {
				if err := api.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("HTTP server error: %v", err)
					stop()
				}
			}()
		}

		sshServer := server.NewSSHServer(server.SSHConfig{
			Addr:    cfg.SSH.Addr,
			HostKey: cfg.SSH.HostKey,
			Frame:   opts,
		}, source)

		go func() {
			<-ctx.Done()
			log.Println("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if api != nil {
				api.Shutdown(shutdownCtx)
			}
			sshServer.Shutdown(shutdownCtx)
		}()

		log.Printf("Starting Codex Numeris: connect with: ssh -p %s localhost", portOf(cfg.SSH.Addr))
		if err := sshServer.Start(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("SSH server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveAPI, "api", true, "also serve the catalog HTTP API")
	addSourceFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
