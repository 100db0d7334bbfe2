// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Gramrelay is an HTTP relay for Instagram and Threads media.

It fetches images from the platform CDNs on behalf of clients that the
origin servers would otherwise reject, and serves the bytes back with
cache-friendly headers.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	config "codeberg.org/gramrelay/gramrelay/configs"
	"codeberg.org/gramrelay/gramrelay/core/audit"
	"codeberg.org/gramrelay/gramrelay/core/fetch"
	"codeberg.org/gramrelay/gramrelay/server/router"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 15 * time.Second
	idleTimeout       time.Duration = 30 * time.Second

	// The write deadline must outlast a full strategy chain of three
	// 25-second upstream attempts.
	writeTimeout time.Duration = 80 * time.Second

	serverShutdownDeadline time.Duration = 5 * time.Second
)

var (
	errChmodSocket = errors.New("failed to change unix socket permissions")
	errChownSocket = errors.New("failed to change unix socket ownership")
)

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run orchestrates the application startup and graceful shutdown.
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if config.Global.Upstream.ProbeStartup {
		// Log-only reachability check; the server comes up regardless.
		go fetch.ProbeUpstream(context.Background())
	}

	router := router.NewRouter()
	router.DefineRoutes()
	router.RegisterMiddleware()

	// Create http.Server instance
	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	// Channel to listen for server errors
	serverErrors := make(chan error, 1)

	// Start main server in a goroutine
	go func() {
		listener, err := chooseListener()
		if err != nil {
			serverErrors <- fmt.Errorf("failed to create listener: %w", err)

			return
		}

		serverErrors <- server.Serve(listener)
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until a shutdown signal or a server error is received
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case s := <-quit:
		log.Info().Str("signal", s.String()).Msg("Shutdown signal received")
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), serverShutdownDeadline)

		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

// chooseListener prefers a Unix domain socket when one is configured and
// falls back to TCP otherwise.
func chooseListener() (net.Listener, error) {
	if socket := config.Global.Basic.UnixSocket; socket != "" {
		return listenUnix(socket)
	}

	return listenTCP(net.JoinHostPort(config.Global.Basic.Host, config.Global.Basic.Port))
}

func listenUnix(socket string) (net.Listener, error) {
	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", socket)
	if err != nil {
		return nil, fmt.Errorf("failed to start Unix socket listener on %v: %w", socket, err)
	}

	// The socket file exists now; ownership and permissions apply to it,
	// not the listener.
	if err = setupSocket(socket); err != nil {
		_ = listener.Close()

		return nil, err
	}

	log.Info().
		Str("address", socket).
		Msg("Listening on Unix domain socket")

	return listener, nil
}

func listenTCP(addr string) (net.Listener, error) {
	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	addr = listener.Addr().String()

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		_ = listener.Close()

		return nil, fmt.Errorf("failed to parse listener address %q: %w", addr, err)
	}

	// Log the address and a convenient URL for local development
	log.Info().
		Str("address", addr).
		Str("port", port).
		Str("url", fmt.Sprintf("http://gramrelay.localhost:%v/", port)).
		Msg("Listening on address")

	return listener, nil
}

// setupSocket applies the configured ownership and permissions to the
// socket file.
func setupSocket(socket string) error {
	cfg := config.Global.Basic

	uid, gid := -1, -1

	var err error

	if cfg.UnixSocketUser != "" {
		uid, err = parseUserID(cfg.UnixSocketUser)
		if err != nil {
			return err
		}
	}

	if cfg.UnixSocketGroup != "" {
		gid, err = parseGroupID(cfg.UnixSocketGroup)
		if err != nil {
			return err
		}
	}

	if uid != -1 || gid != -1 {
		if err := os.Chown(socket, uid, gid); err != nil {
			return fmt.Errorf("%w: %w", errChownSocket, err)
		}
	}

	if err := os.Chmod(socket, cfg.UnixSocketPermissions); err != nil {
		return fmt.Errorf("%w: %w", errChmodSocket, err)
	}

	return nil
}

// parseUserID resolves a numeric ID or user name to a uid.
func parseUserID(value string) (int, error) {
	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	u, err := user.Lookup(value)
	if err != nil {
		return -1, fmt.Errorf("failed to look up user %q: %w", value, err)
	}

	id, err := strconv.Atoi(u.Uid)
	if err != nil {
		return -1, fmt.Errorf("failed to parse uid %q of user %q: %w", u.Uid, value, err)
	}

	return id, nil
}

// parseGroupID resolves a numeric ID or group name to a gid.
func parseGroupID(value string) (int, error) {
	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	g, err := user.LookupGroup(value)
	if err != nil {
		return -1, fmt.Errorf("failed to look up group %q: %w", value, err)
	}

	id, err := strconv.Atoi(g.Gid)
	if err != nil {
		return -1, fmt.Errorf("failed to parse gid %q of group %q: %w", g.Gid, value, err)
	}

	return id, nil
}
