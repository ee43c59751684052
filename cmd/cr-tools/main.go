package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ramonehamilton/cr-tools/internal/config"
	"github.com/ramonehamilton/cr-tools/internal/storage"
	"github.com/ramonehamilton/cr-tools/internal/tracker"
	"github.com/ramonehamilton/cr-tools/internal/version"
)

var (
	configPath     = flag.String("config", "", "Path to config file (default: ~/.cr-tools/config.toml)")
	debugMode      = flag.Bool("debug-mode", false, "Enable verbose debug logging")
	debugModeShort = flag.Bool("d", false, "Enable debug logging (shorthand for -debug-mode)")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if *debugModeShort {
		*debugMode = true
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	command, rest := args[0], args[1:]

	switch command {
	case "plan":
		runPlanCommand(rest)
	case "add":
		runAddCommand(rest)
	case "update":
		runUpdateCommand(rest)
	case "remove", "rm":
		runRemoveCommand(rest)
	case "list", "ls":
		runListCommand(rest)
	case "arena":
		runArenaCommand(rest)
	case "tables":
		runTablesCommand(rest)
	case "import":
		runImportCommand(rest)
	case "export":
		runExportCommand(rest)
	case "chart":
		runChartCommand(rest)
	case "watch":
		runWatchCommand(rest)
	case "migrate":
		runMigrationCommand(rest)
	case "config":
		runConfigCommand(rest)
	case "version":
		fmt.Println(version.String())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("cr-tools - Card Upgrade Planner")
	fmt.Println("===============================")
	fmt.Println()
	fmt.Println("Usage: cr-tools [-config path] [-d] <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  plan       - Show when each tracked card can be upgraded")
	fmt.Println("  add        - Track a card (add <name> <rarity> <level> <have>)")
	fmt.Println("  update     - Change a tracked card (update <name> [-level N] [-have N] [-rarity R] [-name N])")
	fmt.Println("  remove     - Stop tracking a card")
	fmt.Println("  list       - List tracked cards")
	fmt.Println("  arena      - Show or set your current arena")
	fmt.Println("  tables     - Show request and donation limits per arena")
	fmt.Println("  import     - Import cards from a TOML collection file")
	fmt.Println("  export     - Export the plan as CSV or JSON")
	fmt.Println("  chart      - Render the plan schedule as an HTML chart")
	fmt.Println("  watch      - Re-plan a collection file every time it changes")
	fmt.Println("  migrate    - Run database migrations")
	fmt.Println("  config     - Create or show the config file")
	fmt.Println("  version    - Show version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  cr-tools arena RoyalArena")
	fmt.Println("  cr-tools add Knight common 6 40")
	fmt.Println("  cr-tools update knight -have 55")
	fmt.Println("  cr-tools plan")
	fmt.Println("  cr-tools export -format json -o plan.json")
	fmt.Println()
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig() *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if *debugMode {
		cfg.App.DebugMode = true
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	return cfg
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openService opens the card database and builds the tracker on top of it.
// The returned func closes the database.
func openService(cfg *config.Config) (*tracker.Service, func()) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		log.Fatalf("Error resolving database path: %v", err)
	}

	dbConfig := storage.DefaultConfig(dbPath)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate

	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	arena, err := cfg.GetArena()
	if err != nil {
		log.Fatalf("Invalid arena in config: %v", err)
	}

	logger := newLogger(cfg)
	logger.Debug("database opened", "path", dbPath)

	service := tracker.New(db.Cards(), db.Settings(), nil, logger, tracker.WithDefaultArena(arena))
	return service, func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
}
