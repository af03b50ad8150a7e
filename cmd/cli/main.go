// Command waitlistctl inspects and exercises the waitlist notification
// channels without starting the HTTP server.
//
// Usage:
//
//	waitlistctl channels
//	waitlistctl send-test --email someone@example.com
package main

import (
	"os"

	"github.com/clixs/waitlist-api/config"
	"github.com/clixs/waitlist-api/internal/log"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	if err := newRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}
