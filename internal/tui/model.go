package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stringup/internal/browser"
	"stringup/internal/config"
	"stringup/internal/diag"
	"stringup/internal/launch"
	"stringup/internal/logging"
	"stringup/internal/services"
)

const down = "down"

const runtimeNotAvailable = "Error: no container runtime available"

// Model represents the TUI application state
type Model struct {
	startTime time.Time
	quitting  bool

	logger      *logging.Logger
	cfg         config.Config
	composeFile string
	stateDir    string
	projectRoot string
	version     string

	// UI State
	currentScreen Screen
	selection     int
	lastError     string
	stateManager  *UIStateManager

	// Stack is created lazily: the menu must render even without a
	// container runtime.
	stack      *services.StackManager
	stackError string

	statusMessage string

	// Launch Screen State
	launchResult     string
	launchInProgress bool

	// Status Screen State
	serviceStatuses []services.ServiceStatus
	serverState     launch.State
	serverRunning   bool

	// Logs Screen State
	logsSelection int
	logsService   string
	logsContent   string

	// Health Screen State
	healthReport    services.HealthReport
	hasHealthReport bool
	healthError     string

	// Diagnostics Screen State
	diagResult string
}

// NewModel creates a new TUI model
func NewModel(cfg config.Config, composeFile, stateDir, projectRoot, version string, logger *logging.Logger) Model {
	m := Model{
		startTime:     time.Now(),
		logger:        logger,
		cfg:           cfg,
		composeFile:   composeFile,
		stateDir:      stateDir,
		projectRoot:   projectRoot,
		version:       version,
		currentScreen: ScreenMenu,
		selection:     0,
		stateManager:  NewUIStateManager(stateDir, logger),
	}

	// Load persisted UI state
	if state, err := m.stateManager.Load(); err == nil {
		m.currentScreen = state.CurrentScreen
		m.selection = state.Selection
		m.lastError = state.LastError
	}

	m.loadServerState()

	return m
}

// SetStack injects a pre-built stack manager; used by tests
func (m *Model) SetStack(stack *services.StackManager) {
	m.stack = stack
}

// ensureStack creates the stack manager on first use
func (m *Model) ensureStack() bool {
	if m.stack != nil {
		return true
	}

	stack, err := services.NewStackManager(m.composeFile, m.cfg.ContainerRuntime, m.logger)
	if err != nil {
		m.stackError = err.Error()
		return false
	}

	m.stack = stack
	m.stackError = ""
	return true
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if next, handled, cmd := m.handleQuitKeys(keyMsg.String()); handled {
		return next, cmd
	}

	if next, handled := m.handleEscapeKey(keyMsg.String()); handled {
		return next, nil
	}

	if next, handled := m.handleMenuNavigationKeys(keyMsg.String()); handled {
		return next, nil
	}

	if next, handled := m.handleMenuSelectionKey(keyMsg.String()); handled {
		return next, nil
	}

	if next, handled := m.handleShortcutKeys(keyMsg.String()); handled {
		return next, nil
	}

	if next, handled := m.handleLaunchScreenKeys(keyMsg.String()); handled {
		return next, nil
	}

	if next, handled := m.handleStatusScreenKeys(keyMsg.String()); handled {
		return next, nil
	}

	if next, handled := m.handleLogsScreenKeys(keyMsg.String()); handled {
		return next, nil
	}

	if next, handled := m.handleHealthScreenKeys(keyMsg.String()); handled {
		return next, nil
	}

	if next, handled := m.handleDiagScreenKeys(keyMsg.String()); handled {
		return next, nil
	}

	return m, nil
}

func (m Model) handleQuitKeys(key string) (tea.Model, bool, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		m.saveState()
		return m, true, tea.Quit
	}
	return m, false, nil
}

func (m Model) handleEscapeKey(key string) (tea.Model, bool) {
	if key == "esc" && m.currentScreen != ScreenMenu {
		m = m.returnToMenu()
		m.saveState()
		return m, true
	}
	return m, false
}

func (m Model) handleMenuNavigationKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenMenu {
		return m, false
	}

	switch key {
	case "up", "k":
		return m.navigateUp(), true
	case down, "j":
		return m.navigateDown(), true
	}
	return m, false
}

func (m Model) handleMenuSelectionKey(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenMenu {
		return m, false
	}

	if key == "enter" || key == " " {
		updated := m.selectMenuItem()
		updated.saveState()
		return updated, true
	}
	return m, false
}

func (m Model) handleShortcutKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenMenu {
		return m, false
	}

	switch key {
	case "1", "2", "3", "4", "5", "?":
		updated := m.selectMenuByKey(key)
		updated.saveState()
		return updated, true
	}
	return m, false
}

func (m Model) handleLaunchScreenKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenLaunch {
		return m, false
	}

	if m.launchInProgress {
		return m, false
	}

	if key == "enter" || key == " " {
		return m.runLaunch(), true
	}
	return m, false
}

func (m Model) handleStatusScreenKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenStatus {
		return m, false
	}

	if key == "r" {
		return m.refreshStatus(), true
	}
	return m, false
}

func (m Model) handleLogsScreenKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenLogs {
		return m, false
	}

	serviceCount := len(m.serviceNames())

	switch key {
	case "up", "k":
		if m.logsSelection > 0 {
			m.logsSelection--
		} else {
			m.logsSelection = serviceCount - 1
		}
		return m, true
	case down, "j":
		if m.logsSelection < serviceCount-1 {
			m.logsSelection++
		} else {
			m.logsSelection = 0
		}
		return m, true
	case "enter", " ", "r":
		return m.loadLogs(), true
	}
	return m, false
}

func (m Model) handleHealthScreenKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenHealth {
		return m, false
	}

	if key == "r" || key == "enter" {
		return m.runHealthCheck(), true
	}
	return m, false
}

func (m Model) handleDiagScreenKeys(key string) (tea.Model, bool) {
	if m.currentScreen != ScreenDiagnostics {
		return m, false
	}

	if key == "enter" || key == " " {
		return m.createDiagPackage(), true
	}
	return m, false
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.currentScreen {
	case ScreenMenu:
		return m.renderMenu()
	case ScreenLaunch:
		return m.renderLaunchScreen()
	case ScreenStatus:
		return m.renderStatusScreen()
	case ScreenLogs:
		return m.renderLogsScreen()
	case ScreenHealth:
		return m.renderHealthScreen()
	case ScreenDiagnostics:
		return m.renderDiagScreen()
	case ScreenHelp:
		return m.renderHelpScreen()
	default:
		return m.renderMenu()
	}
}

// saveState persists the current UI state
func (m *Model) saveState() {
	state := &UIState{
		CurrentScreen: m.currentScreen,
		Selection:     m.selection,
		LastError:     m.lastError,
		Updated:       time.Now().UTC(),
	}

	if err := m.stateManager.Save(state); err != nil {
		m.logger.Warn("tui.state.save_failed", "Failed to save UI state", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// loadServerState loads the recorded launch state from disk
func (m *Model) loadServerState() {
	stateManager := launch.NewStateManager(m.stateDir, m.logger)
	m.serverState, m.serverRunning = stateManager.ServerRunning()
}

// serviceNames returns the compose services shown on the logs screen
func (m Model) serviceNames() []string {
	if m.stack != nil {
		return m.stack.ListServices()
	}
	return []string{services.DBServiceName}
}

// runLaunch executes the launch sequence synchronously
func (m Model) runLaunch() Model {
	if !m.ensureStack() {
		m.launchResult = runtimeNotAvailable
		m.lastError = m.stackError
		return m
	}

	m.launchInProgress = true

	launcher := launch.NewLauncher(m.cfg, m.stack, launch.NewDetachedSpawner(), browser.NewDefaultOpener(), m.stateDir, m.projectRoot, m.logger)
	result := launcher.Run()

	if result.OK() {
		m.launchResult = fmt.Sprintf("Launch complete. Server PID %d, docs at %s", result.ServerPID, result.DocsURL)
		m.lastError = ""
	} else {
		m.launchResult = "Launch failed: " + result.Error()
		m.lastError = result.Error()
	}

	m.launchInProgress = false
	m.loadServerState()
	return m
}

// refreshStatus reloads stack and server status
func (m Model) refreshStatus() Model {
	m.loadServerState()

	if !m.ensureStack() {
		m.statusMessage = runtimeNotAvailable
		return m
	}

	statuses, err := m.stack.StatusAll()
	if err != nil {
		m.statusMessage = fmt.Sprintf("Status check failed: %v", err)
		return m
	}

	m.serviceStatuses = statuses
	m.statusMessage = "Refreshed stack status"
	return m
}

// loadLogs loads logs for the selected compose service
func (m Model) loadLogs() Model {
	if !m.ensureStack() {
		m.logsContent = runtimeNotAvailable
		return m
	}

	names := m.serviceNames()
	if m.logsSelection >= len(names) {
		m.logsSelection = 0
	}
	serviceName := names[m.logsSelection]
	m.logsService = serviceName

	logs, err := m.stack.Logs(serviceName, 50)
	if err != nil {
		m.logsContent = fmt.Sprintf("Error loading logs: %v", err)
	} else {
		m.logsContent = logs
	}

	return m
}

// runHealthCheck generates a fresh health report
func (m Model) runHealthCheck() Model {
	if !m.ensureStack() {
		m.healthError = m.stackError
		m.hasHealthReport = false
		return m
	}

	docsURL := launch.DocsURL(m.cfg.Backend, m.cfg.Browser)
	apiChecker := services.NewDefaultAPIHealthChecker(m.cfg.Health.URL, docsURL, m.cfg.Health.Retries, time.Duration(m.cfg.Health.RetryDelaySeconds)*time.Second, m.logger)
	reporter := services.NewHealthReporter(m.stack, apiChecker, m.logger)

	report, err := reporter.GenerateReport()
	if err != nil {
		m.healthError = err.Error()
		m.hasHealthReport = false
		return m
	}

	m.healthReport = report
	m.hasHealthReport = true
	m.healthError = ""
	return m
}

// createDiagPackage creates a diagnostic ZIP in the working directory
func (m Model) createDiagPackage() Model {
	// The stack is optional here: a diag package without container logs
	// is still useful.
	m.ensureStack()

	diagConfig := diag.NewConfig(m.stateDir, config.SystemConfigPath(), m.version)
	packager := diag.NewPackager(diagConfig, m.stack, m.logger)

	output, err := packager.CreatePackage()
	if err != nil {
		m.diagResult = fmt.Sprintf("Diagnostics failed: %v", err)
		m.lastError = m.diagResult
		return m
	}

	m.diagResult = "Diagnostic package created: " + output
	m.lastError = ""
	return m
}

// prettyDuration formats a duration for display
func (m Model) prettyDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	return d.Truncate(time.Second).String()
}

// renderServerSection renders the API server section of the status screen
func (m Model) renderServerSection(labelStyle, valueStyle, errorStyle lipgloss.Style) string {
	var b strings.Builder

	if !m.serverRunning {
		if m.serverState.ServerPID == 0 {
			b.WriteString(errorStyle.Render("API server not launched yet"))
		} else {
			b.WriteString(errorStyle.Render(fmt.Sprintf("API server not running (last PID %d)", m.serverState.ServerPID)))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render("PID: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.serverState.ServerPID)))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Docs: "))
	b.WriteString(valueStyle.Render(m.serverState.DocsURL))
	b.WriteString("\n")

	if !m.serverState.StartedAt.IsZero() {
		b.WriteString(labelStyle.Render("Up for: "))
		b.WriteString(valueStyle.Render(m.prettyDuration(time.Since(m.serverState.StartedAt))))
		b.WriteString("\n")
	}

	return b.String()
}

// renderStackSection renders the compose services section
func (m Model) renderStackSection(labelStyle, valueStyle, errorStyle lipgloss.Style) string {
	if m.stackError != "" {
		return errorStyle.Render(m.stackError) + "\n"
	}

	if len(m.serviceStatuses) == 0 {
		return valueStyle.Render("Press 'r' to query service status") + "\n"
	}

	var b strings.Builder
	for _, status := range m.serviceStatuses {
		b.WriteString(labelStyle.Render("  • " + status.Name + ": "))
		if status.Health == services.HealthGreen {
			b.WriteString(valueStyle.Render(status.State))
		} else {
			b.WriteString(errorStyle.Render(status.State))
		}
		if status.Message != "" {
			b.WriteString(valueStyle.Render(" (" + status.Message + ")"))
		}
		b.WriteString("\n")
	}

	return b.String()
}
