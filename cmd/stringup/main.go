package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"stringup/internal/browser"
	"stringup/internal/config"
	"stringup/internal/diag"
	"stringup/internal/fsutil"
	"stringup/internal/launch"
	"stringup/internal/logging"
	"stringup/internal/secrets"
	"stringup/internal/services"
	"stringup/internal/tui"
	"stringup/internal/watch"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) <= 1 {
		runLaunch()
		return
	}

	command := strings.ToLower(os.Args[1])
	if handler, ok := commandHandlers()[command]; ok {
		handler()
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
	printUsage()
	os.Exit(1)
}

func commandHandlers() map[string]func() {
	return map[string]func(){
		"launch":  runLaunch,
		"up":      runUp,
		"down":    runDown,
		"status":  runStatus,
		"logs":    runLogs,
		"health":  runHealth,
		"open":    runOpen,
		"config":  runConfig,
		"secret":  runSecret,
		"diag":    runDiag,
		"watch":   runWatch,
		"menu":    runMenu,
		"version": runVersion,
		"help":    printUsage,
		"--help":  printUsage,
		"-h":      printUsage,
	}
}

func runVersion() {
	fmt.Printf("stringup version %s\n", version)
}

// loadConfigOrExit loads the merged configuration or terminates
func loadConfigOrExit() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds a logger from the logging section of the config
func newLogger(cfg config.Config) *logging.Logger {
	return logging.NewLoggerWithFormat(logging.Level(cfg.Logging.Level), logging.Format(cfg.Logging.Format))
}

func stateDir() string {
	return fsutil.GetStateDir(fsutil.DefaultStateDir)
}

// projectRoot is the directory holding the compose manifest; relative
// backend paths resolve against it
func projectRoot(composeFile string) string {
	if abs, err := filepath.Abs(composeFile); err == nil {
		return filepath.Dir(abs)
	}
	return "."
}

// pauseOnError keeps the terminal open so double-click users can read
// the failure before the window closes. Skipped for pipes and when
// STRINGUP_NO_PAUSE is set.
func pauseOnError() {
	if os.Getenv("STRINGUP_NO_PAUSE") != "" {
		return
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return
	}

	fmt.Fprint(os.Stderr, "\nPress Enter to exit...")
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
}

func exitLaunchFailure(result launch.Result) {
	fmt.Fprintf(os.Stderr, "\n❌ %s\n", result.Failure.Message())
	if result.Detail != "" {
		fmt.Fprintf(os.Stderr, "   %s\n", result.Detail)
	}
	pauseOnError()
	os.Exit(1)
}

// runLaunch executes the full launch sequence: runtime check, compose
// up, detached server spawn, docs open
func runLaunch() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	composeFile := services.ResolveComposeFile()

	fmt.Println("Starting the stringing shop stack...")
	fmt.Println()

	stack, err := services.NewStackManager(composeFile, cfg.ContainerRuntime, logger)
	if err != nil {
		fmt.Println("[1/4] Checking container runtime... ❌")
		exitLaunchFailure(launch.Result{
			Failure: launch.FailureRuntimeUnavailable,
			Step:    launch.StepRuntimeCheck,
			Detail:  err.Error(),
		})
	}
	fmt.Printf("[1/4] Checking container runtime... ✓ (%s)\n", stack.Runtime().Binary())

	launcher := launch.NewLauncher(cfg, stack, launch.NewDetachedSpawner(), browser.NewDefaultOpener(), stateDir(), projectRoot(composeFile), logger)

	// Inject the staff key into the server environment when one is stored.
	if store, storeErr := secrets.NewSecretStore(secrets.DefaultSecretStoreConfig(), logger); storeErr == nil {
		if env, envErr := store.StaffKeyEnv(); envErr == nil && env != nil {
			launcher.SetExtraEnv(env)
		}
	}

	result := launcher.Run()

	reportStep(2, "Starting database container", result, launch.StepComposeUp)
	reportStep(3, "Starting API server", result, launch.StepStartServer)
	reportStep(4, "Opening API docs", result, launch.StepOpenDocs)

	if !result.OK() {
		exitLaunchFailure(result)
	}

	fmt.Println()
	fmt.Printf("✓ API server running (pid %d)\n", result.ServerPID)
	fmt.Printf("✓ Docs available at %s\n", result.DocsURL)
}

// reportStep prints the per-step launch progress line
func reportStep(number int, label string, result launch.Result, step launch.Step) {
	order := map[launch.Step]int{
		launch.StepRuntimeCheck: 1,
		launch.StepComposeUp:    2,
		launch.StepStartServer:  3,
		launch.StepOpenDocs:     4,
	}

	if !result.OK() {
		failedAt := order[result.Step]
		if failedAt < number {
			return // never reached
		}
		if failedAt == number {
			fmt.Printf("[%d/4] %s... ❌\n", number, label)
			return
		}
	}

	fmt.Printf("[%d/4] %s... ✓\n", number, label)
}

// runUp brings the compose services up without launching the server
func runUp() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	stack, err := services.NewStackManager(services.ResolveComposeFile(), cfg.ContainerRuntime, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Bringing compose services up...")
	if err := stack.Up(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Services started")
}

// runDown stops and removes the compose services
func runDown() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	stack, err := services.NewStackManager(services.ResolveComposeFile(), cfg.ContainerRuntime, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Taking compose services down...")
	if err := stack.Down(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Services stopped")
}

// runStatus displays stack and server status
func runStatus() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	stateManager := launch.NewStateManager(stateDir(), logger)
	state, running := stateManager.ServerRunning()

	fmt.Println("API Server:")
	switch {
	case running:
		fmt.Printf("  ✓ running (pid %d, started %s)\n", state.ServerPID, state.StartedAt.Format(time.RFC3339))
		fmt.Printf("    docs: %s\n", state.DocsURL)
	case state.ServerPID > 0:
		fmt.Printf("  ✗ not running (last pid %d)\n", state.ServerPID)
	default:
		fmt.Println("  - not launched yet")
	}
	fmt.Println()

	stack, err := services.NewStackManager(services.ResolveComposeFile(), cfg.ContainerRuntime, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compose services: unavailable (%v)\n", err)
		os.Exit(1)
	}

	statuses, err := stack.StatusAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting status: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Compose Services:")
	for _, status := range statuses {
		fmt.Printf("  %-8s State: %-10s Health: %s", status.Name, status.State, status.Health)
		if status.Message != "" {
			fmt.Printf(" (%s)", status.Message)
		}
		fmt.Println()
	}
}

// runLogs shows container logs for a compose service
func runLogs() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	stack, err := services.NewStackManager(services.ResolveComposeFile(), cfg.ContainerRuntime, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	service := services.DBServiceName
	tail := 100

	args := os.Args[2:]
	for _, arg := range args {
		if n, err := parsePositiveInt(arg); err == nil {
			tail = n
			continue
		}
		service = arg
	}

	fmt.Printf("=== Logs for %s (last %d lines) ===\n\n", service, tail)
	logs, err := stack.Logs(service, tail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting logs: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(logs)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("not positive: %d", n)
	}
	return n, nil
}

// runHealth generates a health report for the stack and the API server
func runHealth() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	stack, err := services.NewStackManager(services.ResolveComposeFile(), cfg.ContainerRuntime, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	docsURL := launch.DocsURL(cfg.Backend, cfg.Browser)
	apiChecker := services.NewDefaultAPIHealthChecker(cfg.Health.URL, docsURL, cfg.Health.Retries, time.Duration(cfg.Health.RetryDelaySeconds)*time.Second, logger)
	reporter := services.NewHealthReporter(stack, apiChecker, logger)

	fmt.Println("Generating health report...")
	report, err := reporter.GenerateReport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating health report: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Health Report ===")
	fmt.Printf("Timestamp: %s\n", report.Timestamp.Format(time.RFC3339))
	fmt.Println()

	fmt.Println("Services:")
	for _, service := range report.Services {
		icon := getHealthIcon(service.Health)
		fmt.Printf("  %s %-8s Health: %s", icon, service.Name, service.Health)
		if service.Message != "" {
			fmt.Printf(" (%s)", service.Message)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Println("API Server:")
	if report.API.OK {
		fmt.Printf("  ✓ %s\n", report.API.HealthURL)
	} else {
		fmt.Printf("  ✗ %s", report.API.HealthURL)
		if report.API.Message != "" {
			fmt.Printf(" (%s)", report.API.Message)
		}
		fmt.Println()
	}
	if report.API.DocsReachable {
		fmt.Println("  ✓ docs reachable")
	} else {
		fmt.Println("  ✗ docs unreachable")
	}

	if len(os.Args) > 2 && os.Args[2] == "--save" {
		reportPath := filepath.Join(stateDir(), "health_report.json")
		if err := reporter.SaveReport(report, reportPath); err != nil {
			fmt.Fprintf(os.Stderr, "\nWarning: Failed to save report: %v\n", err)
		} else {
			fmt.Printf("\nReport saved to: %s\n", reportPath)
		}
	}

	if !report.API.OK {
		os.Exit(1)
	}
	for _, service := range report.Services {
		if service.Health != services.HealthGreen {
			os.Exit(1)
		}
	}
}

func getHealthIcon(health services.HealthStatus) string {
	switch health {
	case services.HealthGreen:
		return "✓"
	case services.HealthYellow:
		return "⚠"
	case services.HealthRed:
		return "✗"
	default:
		return "?"
	}
}

// runOpen opens the API docs in the default browser
func runOpen() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	// Prefer the recorded docs URL from the last launch.
	docsURL := launch.DocsURL(cfg.Backend, cfg.Browser)
	stateManager := launch.NewStateManager(stateDir(), logger)
	if state, err := stateManager.Load(); err == nil && state.DocsURL != "" {
		docsURL = state.DocsURL
	}

	opener := browser.NewDefaultOpener()
	if err := opener.Open(docsURL); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open browser: %v\n", err)
		fmt.Fprintf(os.Stderr, "   Open %s manually.\n", docsURL)
		os.Exit(1)
	}

	fmt.Printf("✓ Opened %s\n", docsURL)
}

// runConfig performs configuration subcommands
func runConfig() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: stringup config <subcommand>\n")
		fmt.Fprintf(os.Stderr, "Subcommands:\n")
		fmt.Fprintf(os.Stderr, "  test [path]  Test configuration file for validity\n")
		os.Exit(1)
	}

	subcommand := strings.ToLower(os.Args[2])

	switch subcommand {
	case "test":
		runConfigTest()
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", subcommand)
		fmt.Fprintf(os.Stderr, "Valid subcommands: test\n")
		os.Exit(1)
	}
}

// runConfigTest validates configuration file(s)
func runConfigTest() {
	logger := logging.NewLogger(logging.LevelInfo)

	var cfg config.Config
	var configErr error

	if len(os.Args) > 3 {
		path := os.Args[3]
		fmt.Printf("Testing configuration file: %s\n", path)
		cfg, configErr = config.LoadFrom(path)
	} else {
		fmt.Println("Testing configuration (system + user merge):")
		systemPath := config.SystemConfigPath()
		userPath := config.UserConfigPath()
		fmt.Printf("  System config: %s\n", systemPath)
		if userPath != "" {
			fmt.Printf("  User config:   %s\n", userPath)
		}
		fmt.Println()

		cfg, configErr = config.Load()
	}

	if configErr != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration validation FAILED:\n")
		fmt.Fprintf(os.Stderr, "   %v\n", configErr)

		logger.Error("config.validation.error", "Configuration validation failed", map[string]interface{}{
			"error": configErr.Error(),
		})
		os.Exit(1)
	}

	fmt.Println("✓ Configuration is VALID")
	fmt.Println()
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Container Runtime:  %s\n", cfg.ContainerRuntime)
	fmt.Printf("  Backend Dir:        %s\n", cfg.Backend.Dir)
	fmt.Printf("  Venv Dir:           %s\n", cfg.Backend.VenvDir)
	fmt.Printf("  Server:             %s on %s:%d (reload: %t)\n", cfg.Backend.App, cfg.Backend.Host, cfg.Backend.Port, cfg.Backend.Reload)
	fmt.Printf("  Open Browser:       %t (delay %ds, path %s)\n", cfg.Browser.Open, cfg.Browser.DelaySeconds, cfg.Browser.DocsPath)
	fmt.Printf("  Health URL:         %s\n", cfg.Health.URL)
	fmt.Printf("  Log Level:          %s\n", cfg.Logging.Level)
	fmt.Printf("  Log Format:         %s\n", cfg.Logging.Format)

	logger.Info("config.validation.ok", "Configuration validation passed", map[string]interface{}{
		"runtime": cfg.ContainerRuntime,
	})
}

// runSecret manages the encrypted secret store
func runSecret() {
	if len(os.Args) < 3 {
		printSecretUsage()
		os.Exit(1)
	}

	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	store, err := secrets.NewSecretStore(secrets.DefaultSecretStoreConfig(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open secret store: %v\n", err)
		os.Exit(1)
	}

	subcommand := strings.ToLower(os.Args[2])

	switch subcommand {
	case "set":
		runSecretSet(store)
	case "get":
		runSecretGet(store)
	case "list":
		runSecretList(store)
	case "delete":
		runSecretDelete(store)
	default:
		fmt.Fprintf(os.Stderr, "Unknown secret subcommand: %s\n\n", subcommand)
		printSecretUsage()
		os.Exit(1)
	}
}

func printSecretUsage() {
	fmt.Println("Secret Management Commands:")
	fmt.Println()
	fmt.Println("  stringup secret set <name> [value]  Store a secret (reads stdin when no value given)")
	fmt.Println("  stringup secret get <name>          Print a secret value")
	fmt.Println("  stringup secret list                List stored secret names")
	fmt.Println("  stringup secret delete <name>       Delete a secret")
	fmt.Println()
	fmt.Println("The staff key the API server reads from STAFF_KEY is stored as:")
	fmt.Printf("  stringup secret set %s <value>\n", secrets.StaffKeyName)
}

func runSecretSet(store *secrets.SecretStore) {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: stringup secret set <name> [value]\n")
		os.Exit(1)
	}

	name := os.Args[3]

	var value string
	if len(os.Args) > 4 {
		value = os.Args[4]
	} else {
		fmt.Fprint(os.Stderr, "Enter secret value: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(os.Stderr, "❌ Failed to read value: %v\n", err)
			os.Exit(1)
		}
		value = strings.TrimRight(line, "\r\n")
	}

	if value == "" {
		fmt.Fprintf(os.Stderr, "❌ Empty secret value\n")
		os.Exit(1)
	}

	if err := store.StoreSecret(name, []byte(value)); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to store secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Secret %s stored\n", name)
}

func runSecretGet(store *secrets.SecretStore) {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: stringup secret get <name>\n")
		os.Exit(1)
	}

	value, err := store.RetrieveSecret(os.Args[3])
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(value))
}

func runSecretList(store *secrets.SecretStore) {
	names, err := store.ListSecrets()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to list secrets: %v\n", err)
		os.Exit(1)
	}

	if len(names) == 0 {
		fmt.Println("No secrets stored.")
		return
	}

	for _, name := range names {
		fmt.Println(name)
	}
}

func runSecretDelete(store *secrets.SecretStore) {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: stringup secret delete <name>\n")
		os.Exit(1)
	}

	if err := store.DeleteSecret(os.Args[3]); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Secret %s deleted\n", os.Args[3])
}

// runDiag creates a diagnostic package
func runDiag() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	diagConfig := diag.NewConfig(stateDir(), config.SystemConfigPath(), version)

	if len(os.Args) > 2 {
		for i := 2; i < len(os.Args); i++ {
			arg := os.Args[i]
			switch {
			case arg == "--output" && i+1 < len(os.Args):
				diagConfig.OutputPath = os.Args[i+1]
				i++
			case arg == "--no-logs":
				diagConfig.IncludeLogs = false
			case arg == "--no-config":
				diagConfig.IncludeConfig = false
			case arg == "--no-stack":
				diagConfig.IncludeStack = false
			}
		}
	}

	// Container logs are optional: diag must work when the runtime is the
	// thing being diagnosed.
	stack, err := services.NewStackManager(services.ResolveComposeFile(), cfg.ContainerRuntime, logger)
	if err != nil {
		logger.Warn("diag.stack.unavailable", "No container runtime, skipping stack logs", map[string]interface{}{
			"error": err.Error(),
		})
		stack = nil
	}

	fmt.Println("Creating diagnostic package...")
	fmt.Printf("  Version: %s\n", diagConfig.Version)
	fmt.Printf("  Logs: %v\n", diagConfig.IncludeLogs)
	fmt.Printf("  Config: %v\n", diagConfig.IncludeConfig)
	fmt.Printf("  Stack: %v\n", diagConfig.IncludeStack && stack != nil)
	fmt.Println()

	packager := diag.NewPackager(diagConfig, stack, logger)
	zipPath, err := packager.CreatePackage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to create diagnostic package: %v\n", err)
		os.Exit(1)
	}

	fileInfo, err := os.Stat(zipPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Package created but failed to get file info: %v\n", err)
		fmt.Printf("✓ Diagnostic package created: %s\n", zipPath)
		return
	}

	fmt.Printf("✓ Diagnostic package created successfully\n")
	fmt.Printf("  Path: %s\n", zipPath)
	fmt.Printf("  Size: %s\n", formatBytes(fileInfo.Size()))
	fmt.Println()
	fmt.Println("The package contains launcher logs, redacted configuration,")
	fmt.Println("container logs and a manifest with file checksums.")
	fmt.Println("All sensitive data has been redacted.")
}

// runWatch runs the foreground health sampling loop
func runWatch() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	interval := watch.DefaultInterval
	if len(os.Args) > 3 && os.Args[2] == "--interval" {
		if n, err := parsePositiveInt(os.Args[3]); err == nil {
			interval = time.Duration(n) * time.Second
		} else {
			fmt.Fprintf(os.Stderr, "❌ Invalid interval: %s\n", os.Args[3])
			os.Exit(1)
		}
	}

	stack, err := services.NewStackManager(services.ResolveComposeFile(), cfg.ContainerRuntime, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if err := fsutil.EnsureStateDirectory(stateDir()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	docsURL := launch.DocsURL(cfg.Backend, cfg.Browser)
	apiChecker := services.NewDefaultAPIHealthChecker(cfg.Health.URL, docsURL, cfg.Health.Retries, time.Duration(cfg.Health.RetryDelaySeconds)*time.Second, logger)
	reporter := services.NewHealthReporter(stack, apiChecker, logger)
	writer := watch.NewWriter(filepath.Join(stateDir(), watch.SampleFileName), logger)

	watcher := watch.NewWatcher(reporter, writer, interval, logger)

	fmt.Printf("Watching stack health every %s (Ctrl+C to stop)...\n", interval)
	if err := watcher.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// runMenu starts the interactive TUI
func runMenu() {
	cfg := loadConfigOrExit()
	logger := newLogger(cfg)

	startTime := time.Now()
	logger.Info("app.started", "Application started", map[string]interface{}{
		"version": version,
		"ts":      startTime.UTC().Format(time.RFC3339),
	})

	composeFile := services.ResolveComposeFile()

	p := tea.NewProgram(tui.NewModel(cfg, composeFile, stateDir(), projectRoot(composeFile), version, logger))

	_, err := p.Run()
	exitReason := "normal"

	if err != nil {
		exitReason = "error"
		logger.Error("app.error", "Application error", map[string]interface{}{
			"error": err.Error(),
		})
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	logger.Info("app.exited", "Application exited", map[string]interface{}{
		"ts":     time.Now().UTC().Format(time.RFC3339),
		"reason": exitReason,
	})
}

// formatBytes formats bytes to human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// printUsage displays usage information
func printUsage() {
	fmt.Printf(`stringup - Racket Stringing Shop Launcher (version %s)

Usage:
  stringup                         Launch the full stack (database, API server, docs)
  stringup launch                  Same as running without arguments
  stringup up                      Start the database container only
  stringup down                    Stop and remove the database container
  stringup status                  Show server and container status
  stringup logs [service] [lines]  Show container logs (default: db, 100 lines)
  stringup health [--save]         Check database and API server health
  stringup open                    Open the API docs in the browser
  stringup config test [path]      Test configuration file for validity
  stringup secret <subcommand>     Manage encrypted secrets (set, get, list, delete)
  stringup diag [--output path] [--no-logs] [--no-config] [--no-stack]
                                   Create diagnostic package (ZIP with logs, config, manifest)
  stringup watch [--interval s]    Sample stack health periodically to a JSONL log
  stringup menu                    Start the interactive TUI
  stringup version                 Print version information
  stringup help                    Show this help message

Environment:
  STRINGUP_CONFIG_DIR    Override the config directory (default /etc/stringup)
  STRINGUP_STATE_DIR     Override the state directory (default /var/lib/stringup)
  STRINGUP_RUNTIME       Force the container runtime (docker|podman|auto)
  STRINGUP_COMPOSE_FILE  Override the compose manifest location
  STRINGUP_NO_PAUSE      Disable the pause-on-failure prompt
`, version)
}
