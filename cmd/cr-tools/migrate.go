package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ramonehamilton/cr-tools/internal/storage"
)

func runMigrationCommand(args []string) {
	if len(args) < 1 {
		printMigrationUsage()
		os.Exit(1)
	}

	cfg := loadConfig()
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		log.Fatalf("Error resolving database path: %v", err)
	}

	mgr, err := storage.NewMigrationManager(dbPath)
	if err != nil {
		log.Fatalf("Error creating migration manager: %v", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			log.Printf("Error closing migration manager: %v", err)
		}
	}()

	switch args[0] {
	case "up":
		fmt.Println("Applying all pending migrations...")
		if err := mgr.Up(); err != nil {
			log.Fatalf("Error applying migrations: %v", err)
		}
		printVersion(mgr)
		fmt.Println("All migrations applied successfully!")

	case "down":
		fmt.Println("Rolling back last migration...")
		if err := mgr.Steps(-1); err != nil {
			log.Fatalf("Error rolling back migration: %v", err)
		}
		printVersion(mgr)
		fmt.Println("Migration rolled back successfully!")

	case "status", "version":
		printVersion(mgr)

	case "force":
		if len(args) < 2 {
			fmt.Println("Error: force command requires a version number")
			fmt.Println("Usage: cr-tools migrate force <version>")
			os.Exit(1)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Invalid version number: %v", err)
		}
		fmt.Printf("Forcing migration version to %d...\n", version)
		fmt.Println("WARNING: This does not run migrations, only sets the version.")
		if err := mgr.Force(version); err != nil {
			log.Fatalf("Error forcing version: %v", err)
		}
		fmt.Println("Version forced successfully!")

	case "goto":
		if len(args) < 2 {
			fmt.Println("Error: goto command requires a version number")
			fmt.Println("Usage: cr-tools migrate goto <version>")
			os.Exit(1)
		}
		version, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			log.Fatalf("Invalid version number: %v", err)
		}
		fmt.Printf("Migrating to version %d...\n", version)
		if err := mgr.Goto(uint(version)); err != nil {
			log.Fatalf("Error migrating to version: %v", err)
		}
		printVersion(mgr)

	default:
		fmt.Printf("Unknown migration command: %s\n\n", args[0])
		printMigrationUsage()
		os.Exit(1)
	}
}

func printVersion(mgr *storage.MigrationManager) {
	version, dirty, err := mgr.Version()
	if err != nil {
		log.Fatalf("Error getting version: %v", err)
	}
	if dirty {
		fmt.Printf("Current version: %d (dirty - migration failed or interrupted)\n", version)
		fmt.Println("Use 'migrate force <version>' to recover")
		return
	}
	fmt.Printf("Current version: %d\n", version)
}

func printMigrationUsage() {
	fmt.Println("Usage: cr-tools migrate <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up              - Apply all pending migrations")
	fmt.Println("  down            - Roll back the last migration")
	fmt.Println("  status          - Show the current migration version")
	fmt.Println("  goto <version>  - Migrate up or down to a specific version")
	fmt.Println("  force <version> - Set the version without running migrations")
	fmt.Println()
}
