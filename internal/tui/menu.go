package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stringup/internal/services"
)

// renderMenu renders the main menu screen
func (m Model) renderMenu() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	menuItemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	menuItemSelectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00d7ff")).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).PaddingLeft(2)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true).MarginTop(1)

	b.WriteString(titleStyle.Render("stringup — Main Menu"))
	b.WriteString("\n\n")

	menuItems := DefaultMenuItems()

	for i, item := range menuItems {
		prefix := fmt.Sprintf("[%s] ", item.Key)

		var itemText string
		if i == m.selection {
			itemText = menuItemSelectedStyle.Render(prefix + item.Label)
		} else {
			itemText = menuItemStyle.Render(prefix + item.Label)
		}

		b.WriteString(itemText)
		b.WriteString("\n")
		b.WriteString(descStyle.Render(item.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Navigate: ↑/↓ or numbers | Select: Enter/Space | Back: Esc | Quit: q"))
	b.WriteString("\n")

	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("⚠ " + m.lastError))
		b.WriteString("\n")
	}

	return b.String()
}

// renderLaunchScreen renders the launch screen
func (m Model) renderLaunchScreen() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)

	b.WriteString(titleStyle.Render("Launch"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Compose file: "))
	b.WriteString(valueStyle.Render(m.composeFile))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Backend dir:  "))
	b.WriteString(valueStyle.Render(m.cfg.Backend.Dir))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Server:       "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s on %s:%d", m.cfg.Backend.App, m.cfg.Backend.Host, m.cfg.Backend.Port)))
	b.WriteString("\n")

	if m.launchInProgress {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render("Launching..."))
		b.WriteString("\n")
	} else if m.launchResult != "" {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(m.launchResult))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press Enter to launch, Esc to return to menu, 'q' to quit"))
	b.WriteString("\n")

	return b.String()
}

// renderStatusScreen renders the status screen
func (m Model) renderStatusScreen() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")).MarginTop(1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)

	b.WriteString(titleStyle.Render("Stack Status"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("API Server"))
	b.WriteString("\n")
	b.WriteString(m.renderServerSection(labelStyle, valueStyle, errorStyle))

	b.WriteString(sectionStyle.Render("Compose Services"))
	b.WriteString("\n")
	b.WriteString(m.renderStackSection(labelStyle, valueStyle, errorStyle))

	if m.statusMessage != "" {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(m.statusMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press 'r' to refresh, Esc to return to menu, 'q' to quit"))
	b.WriteString("\n")

	return b.String()
}

// renderLogsScreen renders the container logs screen
func (m Model) renderLogsScreen() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	itemSelectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00d7ff")).Bold(true)
	contentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c0c0")).MarginTop(1)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)

	b.WriteString(titleStyle.Render("Container Logs"))
	b.WriteString("\n\n")

	for i, name := range m.serviceNames() {
		line := "  " + name
		if i == m.logsSelection {
			b.WriteString(itemSelectedStyle.Render("> " + name))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.logsContent != "" {
		b.WriteString(contentStyle.Render(fmt.Sprintf("--- %s ---", m.logsService)))
		b.WriteString("\n")
		b.WriteString(contentStyle.Render(m.logsContent))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Select: ↑/↓ | Load: Enter | Refresh: r | Back: Esc | Quit: q"))
	b.WriteString("\n")

	return b.String()
}

// renderHealthScreen renders the health report screen
func (m Model) renderHealthScreen() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)

	b.WriteString(titleStyle.Render("Health"))
	b.WriteString("\n\n")

	switch {
	case m.healthError != "":
		b.WriteString(errorStyle.Render(m.healthError))
		b.WriteString("\n")
	case !m.hasHealthReport:
		b.WriteString(valueStyle.Render("Press 'r' to run health checks"))
		b.WriteString("\n")
	default:
		b.WriteString(labelStyle.Render("API: "))
		if m.healthReport.API.OK {
			b.WriteString(valueStyle.Render("healthy"))
		} else {
			b.WriteString(errorStyle.Render("unhealthy"))
			if m.healthReport.API.Message != "" {
				b.WriteString(errorStyle.Render(" (" + m.healthReport.API.Message + ")"))
			}
		}
		b.WriteString("\n")

		b.WriteString(labelStyle.Render("Docs: "))
		if m.healthReport.API.DocsReachable {
			b.WriteString(valueStyle.Render("reachable"))
		} else {
			b.WriteString(errorStyle.Render("unreachable"))
		}
		b.WriteString("\n")

		for _, service := range m.healthReport.Services {
			b.WriteString(labelStyle.Render(service.Name + ": "))
			if service.Health == services.HealthGreen {
				b.WriteString(valueStyle.Render(string(service.Health)))
			} else {
				b.WriteString(errorStyle.Render(string(service.Health)))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press 'r' to refresh, Esc to return to menu, 'q' to quit"))
	b.WriteString("\n")

	return b.String()
}

// renderDiagScreen renders the diagnostics screen
func (m Model) renderDiagScreen() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).MarginTop(1)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(2)

	b.WriteString(titleStyle.Render("Diagnostics"))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render("Collect launcher logs, redacted configuration and container logs into a ZIP."))
	b.WriteString("\n")

	if m.diagResult != "" {
		b.WriteString(textStyle.Render(m.diagResult))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("Press Enter to create package, Esc to return to menu, 'q' to quit"))
	b.WriteString("\n")

	return b.String()
}

// renderHelpScreen renders the help screen
func (m Model) renderHelpScreen() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")).MarginTop(1)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af")).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(2)

	b.WriteString(titleStyle.Render("Help — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("1-5, ?      "))
	b.WriteString(descStyle.Render("Quick menu selection by number/key"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("↑ / ↓       "))
	b.WriteString(descStyle.Render("Navigate menu items"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Enter/Space "))
	b.WriteString(descStyle.Render("Select highlighted item"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Esc         "))
	b.WriteString(descStyle.Render("Return to main menu"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("q / Ctrl+C  "))
	b.WriteString(descStyle.Render("Quit stringup"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Screens"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Enter       "))
	b.WriteString(descStyle.Render("Run launch / load logs / create diag package"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("r           "))
	b.WriteString(descStyle.Render("Refresh status or health"))
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press Esc to return to menu"))
	b.WriteString("\n")

	return b.String()
}

// navigateUp moves selection up in the menu
func (m Model) navigateUp() Model {
	if m.selection > 0 {
		m.selection--
	} else {
		// Wrap to bottom
		m.selection = len(DefaultMenuItems()) - 1
	}
	return m
}

// navigateDown moves selection down in the menu
func (m Model) navigateDown() Model {
	maxIndex := len(DefaultMenuItems()) - 1
	if m.selection < maxIndex {
		m.selection++
	} else {
		// Wrap to top
		m.selection = 0
	}
	return m
}

// selectMenuItem handles menu item selection
func (m Model) selectMenuItem() Model {
	menuItems := DefaultMenuItems()
	if m.selection >= 0 && m.selection < len(menuItems) {
		m.currentScreen = menuItems[m.selection].Screen
		m.lastError = "" // Clear error on screen change
	}
	return m
}

// selectMenuByKey handles direct menu selection by key press (1-5, ?)
func (m Model) selectMenuByKey(key string) Model {
	menuItems := DefaultMenuItems()
	for i, item := range menuItems {
		if item.Key == key {
			m.selection = i
			m.currentScreen = item.Screen
			m.lastError = "" // Clear error on screen change
			break
		}
	}
	return m
}

// returnToMenu returns to the main menu
func (m Model) returnToMenu() Model {
	m.currentScreen = ScreenMenu
	m.lastError = "" // Clear error when returning to menu
	return m
}
