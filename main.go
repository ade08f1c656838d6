package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/launchdarkly/sse-fragment-harness/framework"
	"github.com/launchdarkly/sse-fragment-harness/server"
	"github.com/launchdarkly/sse-fragment-harness/servicedef"
	"github.com/launchdarkly/sse-fragment-harness/stream"
	"github.com/launchdarkly/sse-fragment-harness/verify"
)

const defaultPort = 18767
const shutdownTimeout = time.Second * 5

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	zapLogger := framework.NewZapLogger(params.debug)
	defer func() { _ = zapLogger.Sync() }()

	if params.verifyURL != "" {
		os.Exit(runVerify(params))
	}
	if err := runServer(params, zapLogger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runServer(params commandParams, zapLogger *zap.Logger) error {
	shape := stream.DefaultShape()
	if params.profilePath != "" {
		profile, err := servicedef.LoadProfile(params.profilePath)
		if err != nil {
			return fmt.Errorf("could not load profile: %w", err)
		}
		if shape, err = profile.Shape(); err != nil {
			return err
		}
	}

	logger := framework.InfoLogger(zapLogger)
	handler := newHandler(shape, stream.WallClock{}, zapLogger)
	listener, err := server.Start(fmt.Sprintf("%s:%d", params.host, params.port), handler, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Fragmented SSE test server running on %s\n", listener.URL())
	fmt.Printf("Test with: %s\n", curlCommand(listener.URL()+server.FragmentedPath, true))
	fmt.Printf("Expected lengths: %s\n", curlCommand(listener.URL()+server.ExpectedPath, false))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return listener.Close(ctx)
}

// newHandler logs requests and stream outcomes at info level, and the fragments of each
// stream at debug level.
func newHandler(shape stream.Shape, pacer stream.Pacer, zapLogger *zap.Logger) *server.Handler {
	handler := server.NewHandler(shape, pacer, framework.InfoLogger(zapLogger))
	handler.StreamLogger = framework.DebugLogger(zapLogger)
	return handler
}

func runVerify(params commandParams) int {
	fmt.Printf("Checking fragmented stream harness at %s\n\n", params.verifyURL)
	framework.PrintFilterDescription(os.Stdout, params.filters)

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := verify.RunSuite(
		verify.Params{
			BaseURL:  params.verifyURL,
			Sentinel: params.sentinel,
			ReadSize: params.readSize,
		},
		params.filters.AsFilter,
		testLogger,
	)

	fmt.Println()
	printResults(results)
	if !results.OK() {
		return 1
	}
	return 0
}
