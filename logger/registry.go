package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem
// loggers.
var BackendLog = NewBackend()

// SubsystemTags is an enum of all subsystem tags.
var SubsystemTags = struct {
	GDSD,
	SIMU,
	DBAC string
}{
	GDSD: "GDSD",
	SIMU: "SIMU",
	DBAC: "DBAC",
}

// subsystemLoggers maps each subsystem identifier to its associated
// logger.
var subsystemLoggers = map[string]*Logger{
	SubsystemTags.GDSD: BackendLog.Logger(SubsystemTags.GDSD),
	SubsystemTags.SIMU: BackendLog.Logger(SubsystemTags.SIMU),
	SubsystemTags.DBAC: BackendLog.Logger(SubsystemTags.DBAC),
}

// Get returns a logger of a specific subsystem.
func Get(tag string) (logger *Logger, ok bool) {
	logger, ok = subsystemLoggers[tag]
	return
}

// InitLog attaches log file and error log file to the backend log and
// starts the backend goroutine. All loggers start out at the info level.
func InitLog(logFile, errLogFile string) {
	if logFile != "" {
		err := BackendLog.AddLogFile(logFile, LevelTrace)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, LevelTrace, err)
			os.Exit(1)
		}
	}
	if errLogFile != "" {
		err := BackendLog.AddLogFile(errLogFile, LevelWarn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, LevelWarn, err)
			os.Exit(1)
		}
	}
	err := BackendLog.AddLogWriter(os.Stdout, LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the logger: %s", err)
		os.Exit(1)
	}
	err = BackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
	SetLogLevels("info")
}

// SetLogLevel sets the logging level for the provided subsystem. Invalid
// subsystems are ignored.
func SetLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}

	// Defaults to info if the log level is invalid.
	level, _ := LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the
// passed level.
func SetLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		SetLogLevel(subsystemID, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported
// subsystems for logging purposes.
func SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsystemID := range subsystemLoggers {
		subsystems = append(subsystems, subsystemID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// validLogLevel returns whether or not logLevel is a valid debug log
// level.
func validLogLevel(logLevel string) bool {
	_, ok := LevelFromString(logLevel)
	return ok
}

// ParseAndSetDebugLevels attempts to parse the specified debug level and
// set the levels accordingly. An appropriate error is returned if
// anything is invalid.
func ParseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			return errors.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}

		// Change the logging level for all subsystems.
		SetLogLevels(debugLevel)
		return nil
	}

	// Split the specified string into subsystem/level pairs while
	// detecting issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return errors.Errorf("the specified debug level contains an invalid subsystem/level pair [%s]", logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsystemID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsystemID]; !exists {
			return errors.Errorf("the specified subsystem [%s] is invalid -- supported subsystems %s",
				subsystemID, strings.Join(SupportedSubsystems(), ", "))
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			return errors.Errorf("the specified debug level [%s] is invalid", logLevel)
		}

		SetLogLevel(subsystemID, logLevel)
	}

	return nil
}
