package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/mergington/activities/internal/testsignups"
)

// Default configuration constants.
const (
	defaultNumSignups  = 1000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8000", "Base URL of the service")
		numSignups = flag.Int("signups", defaultNumSignups, "Number of signups to generate and submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated signups (default: generated_signups_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: signup_test_TIMESTAMP.log)")
		cleanup    = flag.Bool("cleanup", true, "Unregister successful signups after verification")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testsignups.ShowHelp()
		return
	}

	// Setup logging
	if err := testsignups.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testsignups.Config{
		BaseURL:    *baseURL,
		NumSignups: *numSignups,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
		Cleanup:    *cleanup,
	}

	// Run the test
	if err := testsignups.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
