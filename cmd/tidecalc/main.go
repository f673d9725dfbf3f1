package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chrissnell/tidalchannel/internal/constants"
	"github.com/chrissnell/tidalchannel/internal/log"
	"github.com/chrissnell/tidalchannel/internal/report"
	"github.com/chrissnell/tidalchannel/pkg/config"
)

// hazardWarning is logged once per hazard a channel reports
const hazardWarning = "channel parameters are not physical"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code so deferred cleanup, including the
// final log flush, happens before main exits.
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("tidecalc", flag.ContinueOnError)
	cfgFile := fs.String("config", "config.yaml", "Path to configuration source:\n\t\t\t  YAML: channels.yaml\n\t\t\t  SQLite: channels.db\n\t\t\t  Use 'config-convert' tool to convert YAML→SQLite")
	cfgBackend := fs.String("config-backend", "yaml", "Configuration backend type: 'yaml' for YAML files, 'sqlite' for SQLite databases")
	jsonOut := fs.Bool("json", false, "Write the report, including the full height series, as JSON")
	debug := fs.Bool("debug", false, "Turn on debugging output")
	showVersion := fs.Bool("version", false, "Show version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "tidecalc %s\n", constants.Version)
		return 0
	}

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	cfgData, err := loadConfig(*cfgFile, *cfgBackend)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		return 1
	}
	log.Debugw("loaded configuration", "channels", len(cfgData.Channels), "constituents", len(cfgData.Constituents), "samples", cfgData.Series.Count)

	r, err := report.Build(cfgData, *jsonOut)
	if err != nil {
		log.Errorf("Invalid configuration: %v", err)
		return 1
	}

	for _, c := range r.Channels {
		for _, h := range c.Hazards {
			log.Warnw(hazardWarning, "channel", c.Name, "hazard", h)
		}
	}

	if *jsonOut {
		err = r.WriteJSON(stdout)
	} else {
		err = r.WriteText(stdout)
	}
	if err != nil {
		log.Errorf("Failed to write report: %v", err)
		return 1
	}
	return 0
}

func loadConfig(cfgFile, cfgBackend string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.ConfigProvider
	var err error

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename, log.GetSugaredLogger())
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return cfgData, nil
}
