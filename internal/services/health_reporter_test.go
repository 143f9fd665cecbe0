package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stringup/internal/logging"
)

// MockAPIChecker implements APIHealthChecker for testing
type MockAPIChecker struct {
	ok      bool
	docs    bool
	message string
}

func (m *MockAPIChecker) CheckAPI() APIHealthStatus {
	return APIHealthStatus{
		OK:            m.ok,
		HealthURL:     "http://127.0.0.1:8000/health",
		DocsReachable: m.docs,
		Message:       m.message,
	}
}

func TestHealthReporter_GenerateReport(t *testing.T) {
	tests := []struct {
		name          string
		dbStatus      string
		apiOK         bool
		apiMessage    string
		expectedAPIOK bool
		expectedDB    HealthStatus
	}{
		{
			name:          "db running, API ok",
			dbStatus:      "running",
			apiOK:         true,
			expectedAPIOK: true,
			expectedDB:    HealthGreen,
		},
		{
			name:          "db stopped, API ok",
			dbStatus:      "exited",
			apiOK:         true,
			expectedAPIOK: true,
			expectedDB:    HealthRed,
		},
		{
			name:          "db running, API down",
			dbStatus:      "running",
			apiOK:         false,
			apiMessage:    "connection refused",
			expectedAPIOK: false,
			expectedDB:    HealthGreen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewLogger(logging.LevelError)
			runtime := &MockRuntime{
				running:           true,
				containerStatuses: map[string]string{"stringup-db": tt.dbStatus},
			}
			stack := NewStackManagerWithRuntime("/tmp/docker-compose.yaml", runtime, logger)

			apiChecker := &MockAPIChecker{ok: tt.apiOK, message: tt.apiMessage}
			reporter := NewHealthReporter(stack, apiChecker, logger)

			report, err := reporter.GenerateReport()
			if err != nil {
				t.Fatalf("GenerateReport() error = %v", err)
			}

			if report.Timestamp.IsZero() {
				t.Error("Expected timestamp to be set")
			}

			if len(report.Services) != 1 {
				t.Fatalf("Expected 1 service, got %d", len(report.Services))
			}
			if report.Services[0].Name != DBServiceName {
				t.Errorf("Expected db service, got %q", report.Services[0].Name)
			}
			if report.Services[0].Health != tt.expectedDB {
				t.Errorf("Expected db health %q, got %q", tt.expectedDB, report.Services[0].Health)
			}

			if report.API.OK != tt.expectedAPIOK {
				t.Errorf("Expected API OK=%v, got %v", tt.expectedAPIOK, report.API.OK)
			}
			if report.API.Message != tt.apiMessage {
				t.Errorf("Expected API message=%q, got %q", tt.apiMessage, report.API.Message)
			}
		})
	}
}

func TestHealthReporter_SaveReport(t *testing.T) {
	logger := logging.NewLogger(logging.LevelError)
	runtime := &MockRuntime{running: true}
	stack := NewStackManagerWithRuntime("/tmp/docker-compose.yaml", runtime, logger)
	reporter := NewHealthReporter(stack, &MockAPIChecker{ok: true, docs: true}, logger)

	tmpDir := t.TempDir()
	reportPath := filepath.Join(tmpDir, "health_report.json")

	report := HealthReport{
		Timestamp: time.Now().UTC(),
		Services: []ServiceHealthStatus{
			{Name: DBServiceName, Health: HealthGreen},
		},
		API: APIHealthStatus{
			OK:            true,
			HealthURL:     "http://127.0.0.1:8000/health",
			DocsReachable: true,
		},
	}

	if err := reporter.SaveReport(report, reportPath); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("Failed to read report file: %v", err)
	}

	var loadedReport HealthReport
	if err := json.Unmarshal(data, &loadedReport); err != nil {
		t.Fatalf("Failed to unmarshal report: %v", err)
	}

	if len(loadedReport.Services) != 1 {
		t.Errorf("Expected 1 service in loaded report, got %d", len(loadedReport.Services))
	}
	if !loadedReport.API.OK {
		t.Error("Expected API OK in loaded report")
	}
	if !loadedReport.API.DocsReachable {
		t.Error("Expected docs reachable in loaded report")
	}
}

func TestHealthReporter_CheckAllHealthy(t *testing.T) {
	tests := []struct {
		name            string
		dbStatus        string
		apiOK           bool
		expectedHealthy bool
	}{
		{"all healthy", "running", true, true},
		{"db unhealthy", "exited", true, false},
		{"API unhealthy", "running", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewLogger(logging.LevelError)
			runtime := &MockRuntime{
				running:           true,
				containerStatuses: map[string]string{"stringup-db": tt.dbStatus},
			}
			stack := NewStackManagerWithRuntime("/tmp/docker-compose.yaml", runtime, logger)
			reporter := NewHealthReporter(stack, &MockAPIChecker{ok: tt.apiOK}, logger)

			healthy, err := reporter.CheckAllHealthy()
			if err != nil {
				t.Fatalf("CheckAllHealthy() error = %v", err)
			}

			if healthy != tt.expectedHealthy {
				t.Errorf("Expected healthy=%v, got %v", tt.expectedHealthy, healthy)
			}
		})
	}
}
