package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	naco "github.com/baditaflorin/go_naco"
	nacolog "github.com/baditaflorin/go_naco/internal/adapters/logger"
	"github.com/baditaflorin/go_naco/internal/warmup"
	"github.com/baditaflorin/go_naco/pkg/streaming"
)

var (
	// Server configuration, set once in main
	serverConfig = DefaultConfig()

	// Logger instance
	logger l.Logger
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(2)
	}
	serverConfig = cfg

	// Set up logger
	var closeLog func() error
	logger, closeLog, err = createLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting NACO HTTP server",
		"port", cfg.Port,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"concurrency", cfg.Concurrency,
		"default_case", cfg.DefaultCase,
	)

	if cfg.WarmUp {
		warmUpNormalizers()
	}

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		Name:                  "NACOServer",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		MaxRequestBodySize:    cfg.MaxRequestSize,
		Concurrency:           cfg.Concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxConnsPerIP:         0, // unlimited
		MaxRequestsPerConn:    0, // unlimited
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		logger.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// warmUpNormalizers runs both case modes and the stream path over sample
// headings so the first requests do not pay for cold pools.
func warmUpNormalizers() {
	log := nacolog.FromExisting(logger)
	mgr := warmup.NewManager(log, warmup.DefaultWarmupConfig())

	for _, c := range []string{naco.CaseUpper, naco.CaseLower} {
		mgr.RegisterNormalizer(naco.New(naco.WithCase(c)))
	}

	sn, err := newStreamNormalizer(serverConfig.DefaultCase, "")
	if err != nil {
		logger.Error("Failed to create stream normalizer for warm-up", "error", err)
	} else {
		mgr.RegisterStreamProcessor(streamAdapter{sn})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	headings := mgr.WarmUp(ctx)

	logger.Info("Normalizers warmed up",
		"headings", headings,
		"cpus", runtime.NumCPU(),
	)
}

// createLogger creates the JSON server logger, writing to stdout unless a
// log file is named.
func createLogger(logFile string) (l.Logger, func() error, error) {
	return nacolog.OpenLogger(logFile, nacolog.Options{JSON: true, Async: true})
}

// newStreamNormalizer builds a stream normalizer for one request.
func newStreamNormalizer(caseMode, encoding string) (*streaming.Normalizer, error) {
	sc := serverConfig.Stream
	return streaming.NewNormalizer(
		streaming.WithLogger(logger),
		streaming.WithCase(caseMode),
		streaming.WithEncoding(encoding),
		streaming.WithFastNormalizer(),
		streaming.WithParallel(sc.Parallel),
		streaming.WithWorkers(sc.Workers),
		streaming.WithBatchSize(sc.BatchSize),
		streaming.WithChunkSize(sc.ChunkSize),
	)
}
