// Command example demonstrates the orb SDK against a mock Orb device.
//
// It starts the mock device on localhost:7080, then polls the
// scores_1m dataset every few seconds, decoding records into typed
// models and printing the latest score.
//
// Run with:
//
//	go run ./example
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	orb "github.com/orbtools/orb-go"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	go StartMockOrbServer("localhost:7080")
	time.Sleep(200 * time.Millisecond) // let the mock server bind

	client, err := orb.New(
		orb.WithCallerID("example-client"),
		orb.WithTimeout(5*time.Second),
		orb.WithRetry(3, 500*time.Millisecond),
		orb.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Polling scores_1m from the mock device (Ctrl+C to stop)")

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("done")
			return
		case <-ticker.C:
		}

		records, err := client.Scores1m(ctx)
		if err != nil {
			logger.Warn("poll failed", "error", err)
			continue
		}

		scores, bad := orb.DecodeScores1m(records)
		for _, rerr := range bad {
			logger.Warn("skipping malformed record", "error", rerr.Error())
		}

		fmt.Printf("received %d new records\n", len(scores))
		if len(scores) > 0 {
			latest := scores[len(scores)-1]
			if latest.OrbScore != nil {
				fmt.Printf("  latest orb_score: %.1f at %s\n",
					*latest.OrbScore, latest.Time().Format(time.RFC3339))
			}
		}
	}
}
