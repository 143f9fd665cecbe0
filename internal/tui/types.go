package tui

import "time"

// Screen represents different TUI screens
type Screen string

const (
	// ScreenMenu is the main menu screen
	ScreenMenu Screen = "menu"
	// ScreenLaunch runs the launch sequence
	ScreenLaunch Screen = "launch"
	// ScreenStatus shows stack and server status
	ScreenStatus Screen = "status"
	// ScreenLogs shows container logs
	ScreenLogs Screen = "logs"
	// ScreenHealth shows the aggregated health report
	ScreenHealth Screen = "health"
	// ScreenDiagnostics creates diagnostic packages
	ScreenDiagnostics Screen = "diagnostics"
	// ScreenHelp shows help overlay
	ScreenHelp Screen = "help"
)

// MenuItem represents a menu item
type MenuItem struct {
	Key         string // Number key (1-5) or letter
	Label       string // Display label
	Description string // Short description
	Screen      Screen // Target screen
}

// UIState represents the persisted UI state (ui_state.json)
type UIState struct {
	CurrentScreen Screen    `json:"menu"`
	Selection     int       `json:"selection"`
	LastError     string    `json:"last_error"`
	Updated       time.Time `json:"updated"`
}

// DefaultMenuItems returns the default main menu items
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Key: "1", Label: "Launch", Description: "Start database, API server and docs", Screen: ScreenLaunch},
		{Key: "2", Label: "Status", Description: "View stack and server status", Screen: ScreenStatus},
		{Key: "3", Label: "Logs", Description: "View container logs", Screen: ScreenLogs},
		{Key: "4", Label: "Health", Description: "Run health checks", Screen: ScreenHealth},
		{Key: "5", Label: "Diagnostics", Description: "Create a diagnostic package", Screen: ScreenDiagnostics},
		{Key: "?", Label: "Help", Description: "Show help", Screen: ScreenHelp},
	}
}
