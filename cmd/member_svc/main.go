// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/linuxfoundation/lfx-v2-member-search-service/cmd/service"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/api"
	logging "github.com/linuxfoundation/lfx-v2-member-search-service/pkg/log"

	"github.com/joho/godotenv"
	"goa.design/clue/debug"
)

const (
	defaultPort = "8080"
	// gracefulShutdownSeconds should be higher than the NATS flush
	// timeout, and lower than the pod's terminationGracePeriodSeconds.
	gracefulShutdownSeconds = 25
)

func init() {
	// Variables already set in the environment take precedence over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env file: %v\n", err)
	}
	logging.InitStructureLogConfig()
}

func main() {
	var (
		dbgF = flag.Bool("d", false, "enable debug logging")
		port = flag.String("p", defaultPort, "listen port")
		bind = flag.String("bind", "*", "interface to bind on")
	)
	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	ctx := context.Background()
	slog.InfoContext(ctx, "Starting member search service",
		"bind", *bind,
		"http-port", *port,
		"graceful-shutdown-seconds", gracefulShutdownSeconds,
	)

	memberStore := service.MemberStoreImpl(ctx)
	eventPublisher := service.EventPublisherImpl(ctx)
	authService := service.AuthServiceImpl(ctx)
	vocabulary := service.VocabularyImpl(ctx)
	rateLimiter := service.RateLimiterImpl(ctx)

	// Initialize the services.
	var (
		memberSvc api.Service
	)
	{
		memberSvc = service.NewMemberSvc(memberStore, eventPublisher, authService, vocabulary)
	}

	// Wrap the services in endpoints that can be invoked from other services
	// potentially running in different processes.
	memberEndpoints := api.NewEndpoints(memberSvc)
	memberEndpoints.Use(debug.LogPayloads())

	// Create channel used by both the signal handler and server goroutines
	// to notify the main goroutine when to stop the server.
	errc := make(chan error)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)

	addr := ":" + *port
	if *bind != "*" {
		addr = *bind + ":" + *port
	}

	handleHTTPServer(ctx, addr, memberEndpoints, rateLimiter, &wg, errc, *dbgF)

	// Wait for signal.
	slog.InfoContext(ctx, "received shutdown signal, stopping servers",
		"signal", <-errc,
	)

	// Send cancellation signal to the goroutines.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
	defer shutdownCancel()

	// Wait for the HTTP server to drain before closing its dependencies.
	done := make(chan struct{})
	go func() {
		wg.Wait()

		slog.InfoContext(shutdownCtx, "closing member event publisher")
		if err := eventPublisher.Close(); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to close member event publisher", "error", err)
		}
		if closer, ok := memberStore.(io.Closer); ok {
			slog.InfoContext(shutdownCtx, "closing member store")
			if err := closer.Close(); err != nil {
				slog.ErrorContext(shutdownCtx, "failed to close member store", "error", err)
			}
		}
		close(done)
	}()

	select {
	case <-done:
		slog.InfoContext(ctx, "graceful shutdown completed")
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "graceful shutdown timed out")
	}

	slog.InfoContext(ctx, "exited")
}
