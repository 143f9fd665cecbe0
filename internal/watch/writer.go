package watch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"stringup/internal/logging"
	"stringup/internal/services"
)

// Sample is one health observation appended to the JSONL log
type Sample struct {
	Timestamp time.Time         `json:"ts"`
	APIOK     bool              `json:"api_ok"`
	DocsOK    bool              `json:"docs_ok"`
	Services  map[string]string `json:"services"`
}

// SampleFromReport flattens a health report into a watch sample
func SampleFromReport(report services.HealthReport) Sample {
	svc := make(map[string]string, len(report.Services))
	for _, s := range report.Services {
		svc[s.Name] = string(s.Health)
	}

	return Sample{
		Timestamp: report.Timestamp,
		APIOK:     report.API.OK,
		DocsOK:    report.API.DocsReachable,
		Services:  svc,
	}
}

// Writer appends health samples to a JSONL file
type Writer struct {
	path   string
	logger *logging.Logger
}

// NewWriter creates a sample writer targeting the given JSONL file
func NewWriter(path string, logger *logging.Logger) *Writer {
	return &Writer{
		path:   path,
		logger: logger,
	}
}

// Write appends one sample as a JSON line
func (w *Writer) Write(sample Sample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	data = append(data, '\n')

	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path is fixed under the state directory
	if err != nil {
		return fmt.Errorf("failed to open sample log: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write sample: %w", err)
	}

	return nil
}
