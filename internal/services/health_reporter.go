package services

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"stringup/internal/logging"
)

// HealthReport represents the aggregated health report for the stack:
// compose services plus the detached API server.
type HealthReport struct {
	Timestamp time.Time             `json:"timestamp"`
	Services  []ServiceHealthStatus `json:"services"`
	API       APIHealthStatus       `json:"api"`
}

// ServiceHealthStatus represents health status of a single compose service
type ServiceHealthStatus struct {
	Name    string       `json:"name"`
	Health  HealthStatus `json:"health"`
	Message string       `json:"message,omitempty"`
}

// APIHealthStatus represents the health of the spawned API server
type APIHealthStatus struct {
	OK            bool   `json:"ok"`
	HealthURL     string `json:"health_url"`
	DocsReachable bool   `json:"docs_reachable"`
	Message       string `json:"message,omitempty"`
}

// APIHealthChecker probes the API server endpoints
type APIHealthChecker interface {
	CheckAPI() APIHealthStatus
}

// DefaultAPIHealthChecker implements APIHealthChecker via HTTP probes
type DefaultAPIHealthChecker struct {
	healthURL  string
	docsURL    string
	retries    int
	retryDelay time.Duration
	logger     *logging.Logger
}

// NewDefaultAPIHealthChecker creates an API health checker for the given
// endpoints. The health endpoint is probed up to retries times with
// retryDelay between attempts; the docs probe is single-shot.
func NewDefaultAPIHealthChecker(healthURL, docsURL string, retries int, retryDelay time.Duration, logger *logging.Logger) *DefaultAPIHealthChecker {
	if retries < 1 {
		retries = 1
	}
	return &DefaultAPIHealthChecker{
		healthURL:  healthURL,
		docsURL:    docsURL,
		retries:    retries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// CheckAPI probes the health endpoint and the docs page
func (c *DefaultAPIHealthChecker) CheckAPI() APIHealthStatus {
	c.logger.Info("health.api.check.start", "Probing API server", map[string]interface{}{
		"health_url": c.healthURL,
		"retries":    c.retries,
	})

	result := APIHealthStatus{HealthURL: c.healthURL}

	hc := DefaultHealthCheck(c.healthURL)
	var status HealthStatus
	var err error
	if c.retries > 1 {
		status, err = hc.CheckWithRetries(c.retries, c.retryDelay)
	} else {
		status, err = hc.Check()
	}
	if err != nil {
		c.logger.Warn("health.api.check.failed", "API health probe failed", map[string]interface{}{
			"error": err.Error(),
		})
		result.Message = err.Error()
	}
	result.OK = status == HealthGreen

	if c.docsURL != "" {
		docsStatus, _ := DefaultHealthCheck(c.docsURL).Check()
		result.DocsReachable = docsStatus == HealthGreen
	}

	if result.OK {
		c.logger.Info("health.api.check.success", "API server healthy", map[string]interface{}{
			"docs_reachable": result.DocsReachable,
		})
	}

	return result
}

// HealthReporter aggregates health checks across the stack and the API server
type HealthReporter struct {
	stack      *StackManager
	apiChecker APIHealthChecker
	logger     *logging.Logger
}

// NewHealthReporter creates a new health reporter
func NewHealthReporter(stack *StackManager, apiChecker APIHealthChecker, logger *logging.Logger) *HealthReporter {
	return &HealthReporter{
		stack:      stack,
		apiChecker: apiChecker,
		logger:     logger,
	}
}

// GenerateReport generates a comprehensive health report
func (r *HealthReporter) GenerateReport() (HealthReport, error) {
	r.logger.Info("health.report.start", "Generating health report", nil)

	report := HealthReport{
		Timestamp: time.Now().UTC(),
		Services:  make([]ServiceHealthStatus, 0),
	}

	for _, serviceName := range r.stack.ListServices() {
		serviceHealth := ServiceHealthStatus{
			Name: serviceName,
		}

		status, err := r.stack.Status(serviceName)
		if err != nil {
			serviceHealth.Health = HealthRed
			serviceHealth.Message = fmt.Sprintf("Status check failed: %v", err)
		} else {
			serviceHealth.Health = status.Health
			serviceHealth.Message = status.Message
		}

		report.Services = append(report.Services, serviceHealth)

		r.logger.Info("health.report.service", "Service health checked", map[string]interface{}{
			"service": serviceName,
			"health":  serviceHealth.Health,
		})
	}

	report.API = r.apiChecker.CheckAPI()

	r.logger.Info("health.report.complete", "Health report generated", map[string]interface{}{
		"service_count": len(report.Services),
		"api_ok":        report.API.OK,
	})

	return report, nil
}

// SaveReport saves the health report to a JSON file
func (r *HealthReporter) SaveReport(report HealthReport, path string) error {
	r.logger.Info("health.report.save", "Saving health report", map[string]interface{}{
		"path": path,
	})

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal health report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write health report: %w", err)
	}

	r.logger.Info("health.report.saved", "Health report saved successfully", map[string]interface{}{
		"path": path,
	})

	return nil
}

// CheckAllHealthy returns true if all services and the API server are healthy
func (r *HealthReporter) CheckAllHealthy() (bool, error) {
	report, err := r.GenerateReport()
	if err != nil {
		return false, err
	}

	if !report.API.OK {
		return false, nil
	}

	for _, service := range report.Services {
		if service.Health != HealthGreen {
			return false, nil
		}
	}

	return true, nil
}
