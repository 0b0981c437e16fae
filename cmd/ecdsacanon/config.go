package main

import (
	"fmt"
	"path/filepath"

	"github.com/decred/dcrd/dcrutil/v4"
)

const (
	defaultLogLevel    = "info"
	defaultLogFilename = "ecdsacanon.log"
)

var (
	defaultAppDir = dcrutil.AppDataDir("ecdsacanon", false)
	defaultLogDir = filepath.Join(defaultAppDir, "logs")
)

// config defines the global options shared by all commands.  The commands
// themselves are registered on the parser in main.
type config struct {
	DebugLevel    string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	LogDir        string `long:"logdir" description:"Directory to write the log file to"`
	NoFileLogging bool   `long:"nofilelogging" description:"Disable file logging"`
}

func defaultConfig() config {
	return config{
		DebugLevel: defaultLogLevel,
		LogDir:     defaultLogDir,
	}
}

// setupLogging applies the logging options.  It is run once the command line
// has been parsed and before any command executes.
func (cfg *config) setupLogging() error {
	if !setLogLevels(cfg.DebugLevel) {
		return fmt.Errorf("invalid debug level %q", cfg.DebugLevel)
	}
	if cfg.NoFileLogging {
		return nil
	}
	return initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))
}
