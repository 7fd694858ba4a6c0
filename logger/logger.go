package logger

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// logEntry is a single message routed from a subsystem logger to the
// backend's writers.
type logEntry struct {
	log   []byte
	level Level
}

// Logger is a subsystem logger backed by a Backend. All loggers created
// from the same backend share its writers.
type Logger struct {
	lvl       Level // lvl is read and written atomically
	tag       string
	b         *Backend
	writeChan chan<- logEntry
}

// Trace formats a message using the default formats for its operands
// and writes it with LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.print(LevelTrace, args...)
}

// Tracef formats a message according to a format specifier and writes it
// with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.printf(LevelTrace, format, args...)
}

// Debug formats a message using the default formats for its operands
// and writes it with LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.print(LevelDebug, args...)
}

// Debugf formats a message according to a format specifier and writes it
// with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, format, args...)
}

// Info formats a message using the default formats for its operands
// and writes it with LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.print(LevelInfo, args...)
}

// Infof formats a message according to a format specifier and writes it
// with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, format, args...)
}

// Warn formats a message using the default formats for its operands
// and writes it with LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.print(LevelWarn, args...)
}

// Warnf formats a message according to a format specifier and writes it
// with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printf(LevelWarn, format, args...)
}

// Error formats a message using the default formats for its operands
// and writes it with LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.print(LevelError, args...)
}

// Errorf formats a message according to a format specifier and writes it
// with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, format, args...)
}

// Critical formats a message using the default formats for its operands
// and writes it with LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	l.print(LevelCritical, args...)
}

// Criticalf formats a message according to a format specifier and writes it
// with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.printf(LevelCritical, format, args...)
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(level))
}

// Backend returns the backend of the logger.
func (l *Logger) Backend() *Backend {
	return l.b
}

func (l *Logger) print(level Level, args ...interface{}) {
	if level < l.Level() {
		return
	}
	l.write(level, fmt.Sprintln(args...))
}

func (l *Logger) printf(level Level, format string, args ...interface{}) {
	if level < l.Level() {
		return
	}
	l.write(level, fmt.Sprintf(format, args...)+"\n")
}

// write formats the message header (timestamp, level tag, subsystem tag
// and, if enabled by flags, the callsite) and hands the entry to the
// backend goroutine.
func (l *Logger) write(level Level, message string) {
	if !l.b.IsRunning() {
		panic(errors.New("the logger backend must be running before writing log entries"))
	}

	t := time.Now() // get as early as possible

	var file string
	var line int
	if l.b.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		file, line = callsite(l.b.flag)
	}

	buf := make([]byte, 0, normalLogSize)
	buf = t.AppendFormat(buf, "2006-01-02 15:04:05.000")
	buf = append(buf, " ["...)
	buf = append(buf, level.String()...)
	buf = append(buf, "] "...)
	buf = append(buf, l.tag...)
	if file != "" {
		buf = append(buf, ' ')
		buf = append(buf, file...)
		buf = append(buf, ':')
		buf = appendInt(buf, line)
	}
	buf = append(buf, ": "...)
	buf = append(buf, message...)

	l.writeChan <- logEntry{log: buf, level: level}
}

// callsite returns the file name and line number of the logging callsite
// according to the shortfile/longfile flags.
func callsite(flag uint32) (string, int) {
	// Ask runtime.Caller for the caller four stack frames up:
	// callsite <- write <- print/printf <- exported log method.
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return "???", 0
	}

	if flag&LogFlagShortFile != 0 {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if os.IsPathSeparator(file[i]) {
				short = file[i+1:]
				break
			}
		}
		file = short
	}

	return file, line
}

func appendInt(buf []byte, n int) []byte {
	return append(buf, []byte(fmt.Sprintf("%d", n))...)
}

