package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	orb "github.com/orbtools/orb-go"
	"github.com/orbtools/orb-go/config"
)

// tailCmd polls one dataset continuously, printing records as they
// arrive.
var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Poll a dataset continuously",
	Long: `Poll one dataset at a fixed interval and print each new record to
stdout as newline-delimited JSON.

The dataset and interval come from the tail section of the config file
and can be overridden with flags. Because the device tracks delivery
per caller id, every record is printed exactly once even across slow
intervals, up to the device's retention buffer.

The command runs until interrupted (Ctrl+C) or it receives SIGTERM.

Example:
  orb tail -c orb.yaml
  orb tail -c orb.yaml --dataset responsiveness_1s --interval 5s`,
	RunE: runTail,
}

func init() {
	rootCmd.AddCommand(tailCmd)

	tailCmd.Flags().StringP("config", "c", "", "path to config file")
	tailCmd.Flags().String("dataset", "", "dataset to poll (overrides config)")
	tailCmd.Flags().Duration("interval", 0, "poll interval (overrides config)")
}

func runTail(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	client, cfg, err := buildClient(cmd, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	dataset, format, interval, err := tailSettings(cmd, cfg)
	if err != nil {
		return err
	}

	logger.Info("tailing dataset",
		"dataset", dataset.String(),
		"interval", interval.String(),
		"caller_id", client.CallerID(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// poll immediately, then on every tick
	for {
		records, err := client.FetchDataset(ctx, dataset, format)
		switch {
		case errors.Is(err, context.Canceled):
			logger.Info("tail stopped")
			return nil
		case err != nil:
			// a dead device mid-tail is worth a log line, not an exit
			logger.Warn("poll failed", "dataset", dataset.String(), "error", err.Error())
		default:
			if err := printRecords(records); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			logger.Info("tail stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// tailSettings resolves the dataset, format, and interval for tail
// mode, flags taking precedence over the config file's tail section.
func tailSettings(cmd *cobra.Command, cfg *config.Config) (orb.Dataset, orb.Format, time.Duration, error) {
	dataset, _ := cmd.Flags().GetString("dataset")
	interval, _ := cmd.Flags().GetDuration("interval")
	format := orb.FormatJSON

	if cfg != nil {
		if dataset == "" {
			dataset = cfg.Tail.Dataset
		}
		if interval == 0 {
			interval = cfg.Tail.Interval.Duration()
		}
		format = orb.Format(cfg.Tail.Format)
	}

	if dataset == "" {
		return "", "", 0, errors.New("no dataset configured: pass --dataset or set tail.dataset in the config file")
	}
	if interval <= 0 {
		interval = 60 * time.Second
	}
	if interval < time.Second {
		return "", "", 0, errors.New("interval must be at least 1 second")
	}

	return orb.Dataset(dataset), format, interval, nil
}
