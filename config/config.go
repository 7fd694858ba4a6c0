// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/eramoss/ghostdagsim/logger"
	"github.com/eramoss/ghostdagsim/version"
)

const (
	defaultConfigFilename = "ghostdagsim.conf"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "ghostdagsim.log"
	defaultErrLogFilename = "ghostdagsim_err.log"
	defaultLogLevel       = "info"

	defaultK                   = 10
	defaultNumNodes            = 32
	defaultNumMiners           = 8
	defaultTargetBlockInterval = 1.0
	defaultTransactionInterval = 0.25
	defaultDuration            = 600.0
	defaultMaxPeers            = 32
	defaultMaxBlockSize        = 1_000_000
	defaultSeed                = 1
)

var activeConfig *Config

// Flags defines the configuration options for ghostdagsim.
//
// See LoadConfig for details on the configuration load process.
type Flags struct {
	ShowVersion         bool    `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile          string  `short:"C" long:"configfile" description:"Path to configuration file"`
	K                   uint32  `short:"k" long:"k" description:"GHOSTDAG anticone tolerance parameter"`
	NumNodes            int     `short:"n" long:"nodes" description:"Number of simulated nodes"`
	NumMiners           int     `short:"m" long:"miners" description:"Number of mining nodes (the first m nodes mine)"`
	TargetBlockInterval float64 `long:"blockinterval" description:"Network-wide mean seconds between blocks"`
	TransactionInterval float64 `long:"txinterval" description:"Network-wide mean seconds between injected transactions. 0 disables transaction traffic"`
	Duration            float64 `short:"t" long:"duration" description:"Simulated time horizon in seconds"`
	MaxPeers            int     `long:"maxpeers" description:"Max number of peers per node"`
	MaxBlockSize        int     `long:"maxblocksize" description:"Maximum mined block size in bytes"`
	Seed                int64   `short:"s" long:"seed" description:"Random seed. Equal seeds replay identical runs"`
	ArchiveDir          string  `short:"b" long:"archivedir" description:"Directory to archive the observer node's DAG into. Empty disables archiving"`
	LogDir              string  `long:"logdir" description:"Directory to log output"`
	NoLogFiles          bool    `long:"nologfiles" description:"Disable logging to files, log to stdout only"`
	DebugLevel          string  `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
}

// Config defines the configuration options for the simulator.
//
// See LoadConfig for details on the configuration load process.
type Config struct {
	*Flags
}

// ActiveConfig is a getter to the main config.
func ActiveConfig() *Config {
	return activeConfig
}

func defaultFlags() *Flags {
	return &Flags{
		ConfigFile:          defaultConfigFilename,
		K:                   defaultK,
		NumNodes:            defaultNumNodes,
		NumMiners:           defaultNumMiners,
		TargetBlockInterval: defaultTargetBlockInterval,
		TransactionInterval: defaultTransactionInterval,
		Duration:            defaultDuration,
		MaxPeers:            defaultMaxPeers,
		MaxBlockSize:        defaultMaxBlockSize,
		Seed:                defaultSeed,
		LogDir:              defaultLogDirname,
		DebugLevel:          defaultLogLevel,
	}
}

// LoadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1) Start with a default config with sane settings
//  2) Pre-parse the command line to check for an alternative config file
//  3) Load configuration file overwriting defaults with any specified options
//  4) Parse CLI options and overwrite/add any specified options
func LoadConfig() (*Config, error) {
	cfgFlags := defaultFlags()
	preParser := flags.NewParser(cfgFlags, flags.HelpFlag)
	_, err := preParser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		return nil, err
	}

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	if cfgFlags.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	// Load additional config from file, honouring a --configfile given
	// on the command line.
	configFile := cfgFlags.ConfigFile
	cfgFlags = defaultFlags()
	parser := flags.NewParser(cfgFlags, flags.Default)
	if fileExists(configFile) {
		err = flags.NewIniParser(parser).ParseFile(configFile)
		if err != nil {
			return nil, errors.Wrapf(err, "error parsing config file %s", configFile)
		}
	}

	// Parse command line options again to ensure they take precedence.
	_, err = parser.Parse()
	if err != nil {
		return nil, err
	}

	cfg := &Config{Flags: cfgFlags}
	err = validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	// Initialize log rotation. After the log rotation has been
	// initialized, the logger variables may be used.
	if cfg.NoLogFiles {
		logger.InitLog("", "")
	} else {
		logger.InitLog(
			filepath.Join(cfg.LogDir, defaultLogFilename),
			filepath.Join(cfg.LogDir, defaultErrLogFilename),
		)
	}
	err = logger.ParseAndSetDebugLevels(cfg.DebugLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", appName)
	}

	activeConfig = cfg
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.NumNodes < 1 {
		return errors.Errorf("nodes must be at least 1, got %d", cfg.NumNodes)
	}
	if cfg.NumMiners < 1 || cfg.NumMiners > cfg.NumNodes {
		return errors.Errorf("miners must be between 1 and nodes (%d), got %d",
			cfg.NumNodes, cfg.NumMiners)
	}
	if cfg.TargetBlockInterval <= 0 {
		return errors.Errorf("blockinterval must be positive, got %f", cfg.TargetBlockInterval)
	}
	if cfg.TransactionInterval < 0 {
		return errors.Errorf("txinterval must not be negative, got %f", cfg.TransactionInterval)
	}
	if cfg.Duration <= 0 {
		return errors.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.MaxPeers < 1 {
		return errors.Errorf("maxpeers must be at least 1, got %d", cfg.MaxPeers)
	}
	if cfg.MaxBlockSize < 1000 {
		return errors.Errorf("maxblocksize must be at least 1000 bytes, got %d", cfg.MaxBlockSize)
	}
	return nil
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}
