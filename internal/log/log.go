package log

import (
	"fmt"
	"os"
)

type level int

const (
	LevelDebug level = iota
	LevelLog
	LevelWarn
	LevelError
)

var logLevel = LevelLog

func init() {
	if os.Getenv("DEBUG") == "true" {
		logLevel = LevelDebug
	}
}

func (l level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "log"
	}
}

// SetLevel overrides the minimum level emitted by this package.
func SetLevel(l level) {
	logLevel = l
}

func Debugf(format string, args ...interface{}) int {
	return logf(LevelDebug, 1, format, args...)
}

func Printf(format string, args ...interface{}) int {
	return logf(LevelLog, 1, format, args...)
}

func Warnf(format string, args ...interface{}) int {
	return logf(LevelWarn, 1, format, args...)
}

func Errorf(format string, args ...interface{}) int {
	return logf(LevelError, 1, format, args...)
}

func logf(kind level, skip int, format string, args ...interface{}) int {
	if kind < logLevel {
		return 0
	}
	s := fmt.Sprintf(format, args...)
	if caller := getCaller(skip + 1); caller != "" {
		s = caller + " - " + s
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", kind.String(), s)
	return len(s)
}

func Debug(args ...interface{}) int {
	return log(LevelDebug, 1, args...)
}

func Print(args ...interface{}) int {
	return log(LevelLog, 1, args...)
}

func Warn(args ...interface{}) int {
	return log(LevelWarn, 1, args...)
}

func Error(args ...interface{}) int {
	return log(LevelError, 1, args...)
}

func log(kind level, skip int, args ...interface{}) int {
	if kind < logLevel {
		return 0
	}
	s := fmt.Sprint(args...)
	if caller := getCaller(skip + 1); caller != "" {
		s = caller + " - " + s
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", kind.String(), s)
	return len(s)
}
