// Package watch runs a foreground loop that periodically probes the
// compose services and the API server and appends the results to a
// JSONL sample log.
package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stringup/internal/logging"
	"stringup/internal/services"
)

// SampleFileName is the JSONL file under the state directory
const SampleFileName = "health_samples.jsonl"

// DefaultInterval is the probe interval when none is configured
const DefaultInterval = 30 * time.Second

// Watcher periodically generates health reports and records samples
type Watcher struct {
	reporter  *services.HealthReporter
	writer    *Writer
	logger    *logging.Logger
	interval  time.Duration
	startTime time.Time
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewWatcher creates a watcher over the given health reporter
func NewWatcher(reporter *services.HealthReporter, writer *Writer, interval time.Duration, logger *logging.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		reporter:  reporter,
		writer:    writer,
		logger:    logger,
		interval:  interval,
		startTime: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Run blocks until SIGINT or SIGTERM, probing once per interval. The
// first probe happens immediately.
func (w *Watcher) Run() error {
	w.logger.Info("watch.started", "Watch loop started", map[string]interface{}{
		"pid":      os.Getpid(),
		"interval": w.interval.String(),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.probe()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("watch.context_cancelled", "Watch context cancelled", nil)
			return w.ctx.Err()

		case sig := <-sigChan:
			w.logger.Info("watch.signal_received", "Received signal", map[string]interface{}{
				"signal": sig.String(),
			})
			return w.Shutdown()

		case <-ticker.C:
			uptime := time.Since(w.startTime)
			w.logger.Debug("watch.heartbeat", "Watch heartbeat", map[string]interface{}{
				"uptime_seconds": uptime.Seconds(),
			})
			w.probe()
		}
	}
}

// probe generates one health report and appends the sample
func (w *Watcher) probe() {
	report, err := w.reporter.GenerateReport()
	if err != nil {
		w.logger.Warn("watch.probe.failed", "Failed to generate health report", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	sample := SampleFromReport(report)

	if err := w.writer.Write(sample); err != nil {
		w.logger.Warn("watch.sample.write_failed", "Failed to write sample", map[string]interface{}{
			"error": err.Error(),
		})
	}

	w.logger.Debug("watch.sample.recorded", "Health sample recorded", map[string]interface{}{
		"api_ok":  sample.APIOK,
		"docs_ok": sample.DocsOK,
	})
}

// Shutdown stops the watch loop
func (w *Watcher) Shutdown() error {
	w.logger.Info("watch.stopping", "Stopping watch loop", nil)
	w.cancel()

	uptime := time.Since(w.startTime)
	w.logger.Info("watch.stopped", "Watch loop stopped", map[string]interface{}{
		"uptime_seconds": uptime.Seconds(),
	})

	return nil
}
