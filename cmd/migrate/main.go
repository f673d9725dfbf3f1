package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/chrissnell/tidalchannel/internal/log"
	"github.com/chrissnell/tidalchannel/pkg/config"
	"github.com/chrissnell/tidalchannel/pkg/migrate"
	_ "modernc.org/sqlite" // SQLite driver
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		dbPath        = flag.String("db", "", "Path to the SQLite configuration database")
		command       = flag.String("command", "up", "Migration command: up, down, to, version, status")
		targetVersion = flag.String("target", "", "Target version for down/to commands")
		debug         = flag.Bool("debug", false, "Log each migration as it runs")
		helpFlag      = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *helpFlag {
		showHelp()
		return 0
	}

	if *dbPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -db flag is required\n")
		showHelp()
		return 1
	}

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Errorf("Failed to open database: %v", err)
		return 1
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Errorf("Failed to ping database: %v", err)
		return 1
	}

	migrator := config.NewSchemaMigrator(db, log.GetSugaredLogger())

	switch *command {
	case "up":
		err = migrator.MigrateUp()
	case "down", "to":
		if *targetVersion == "" {
			fmt.Fprintf(os.Stderr, "Error: -target flag is required for %s command\n", *command)
			return 1
		}
		target, convErr := strconv.Atoi(*targetVersion)
		if convErr != nil {
			fmt.Fprintf(os.Stderr, "Invalid target version: %v\n", convErr)
			return 1
		}
		if *command == "down" {
			err = migrator.MigrateDown(target)
		} else {
			err = migrator.MigrateTo(target)
		}
	case "version":
		version, err := migrator.GetCurrentVersion()
		if err != nil {
			log.Errorf("Failed to get current version: %v", err)
			return 1
		}
		fmt.Printf("Current version: %d\n", version)
		return 0
	case "status":
		err = showStatus(migrator)
		if err == nil {
			return 0
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", *command)
		showHelp()
		return 1
	}

	if err != nil {
		log.Errorf("Migration command failed: %v", err)
		return 1
	}

	fmt.Println("Migration completed successfully")
	return 0
}

func showStatus(migrator *migrate.Migrator) error {
	status, err := migrator.Status()
	if err != nil {
		return err
	}

	fmt.Printf("Current version: %d\n", status.CurrentVersion)
	fmt.Printf("Latest version: %d\n", status.LatestVersion)
	fmt.Printf("Pending migrations: %d\n", len(status.Pending))

	if !status.UpToDate() {
		fmt.Println("\nPending migrations:")
		for _, migration := range status.Pending {
			fmt.Printf("  %d: %s\n", migration.Version, migration.Name)
		}
	}

	return nil
}

func showHelp() {
	fmt.Println("Configuration Database Migration Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  migrate [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -db string         Path to the SQLite configuration database (required)")
	fmt.Println("  -command string    Migration command (default: up)")
	fmt.Println("  -target string     Target version for down/to commands")
	fmt.Println("  -debug             Log each migration as it runs")
	fmt.Println("  -help              Show this help message")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up                 Apply all pending migrations")
	fmt.Println("  down               Roll back to target version")
	fmt.Println("  to                 Migrate to specific version (up or down)")
	fmt.Println("  version            Show current migration version")
	fmt.Println("  status             Show migration status")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  migrate -db channels.db -command up")
	fmt.Println("  migrate -db channels.db -command down -target 1")
	fmt.Println("  migrate -db channels.db -command status")
}
