package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/tidalchannel/pkg/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite configuration file")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <channels.yaml> -sqlite <channels.db>\n", os.Args[0])
		flag.PrintDefaults()
		return 1
	}

	fmt.Println("Configuration Comparison Test")
	fmt.Println("===========================")

	fmt.Printf("Loading YAML configuration: %s\n", *yamlFile)
	yamlConfig, err := config.NewYAMLProvider(*yamlFile).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML config: %v\n", err)
		return 1
	}

	fmt.Printf("Loading SQLite configuration: %s\n", *sqliteFile)
	sqliteProvider, err := config.NewSQLiteProvider(*sqliteFile, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SQLite provider: %v\n", err)
		return 1
	}
	defer sqliteProvider.Close()

	sqliteConfig, err := sqliteProvider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading SQLite config: %v\n", err)
		return 1
	}

	fmt.Println("\nComparison Results:")
	fmt.Println("==================")

	fmt.Printf("Channels - YAML: %d, SQLite: %d\n", len(yamlConfig.Channels), len(sqliteConfig.Channels))
	fmt.Printf("Constituents - YAML: %d, SQLite: %d\n", len(yamlConfig.Constituents), len(sqliteConfig.Constituents))

	diffs := config.Compare(yamlConfig, sqliteConfig)
	if len(diffs) == 0 {
		fmt.Println("✓ Configurations match")
		return 0
	}

	for _, d := range diffs {
		fmt.Printf("✗ %s\n", d)
	}
	fmt.Printf("\n%d difference(s) found\n", len(diffs))
	return 1
}
