package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls which messages are emitted.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	current = int32(LevelInfo)
	std     = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
)

// SetLevel sets the minimum level that is logged.
func SetLevel(l Level) { atomic.StoreInt32(&current, int32(l)) }

func enabled(l Level) bool { return int32(l) >= atomic.LoadInt32(&current) }

func output(l Level, tag, msg string) {
	if !enabled(l) {
		return
	}
	std.Printf("%s %s", tag, msg)
}

func Debug(args ...any)               { output(LevelDebug, "DEBUG", fmt.Sprint(args...)) }
func Debugf(format string, a ...any)  { output(LevelDebug, "DEBUG", fmt.Sprintf(format, a...)) }
func Info(args ...any)                { output(LevelInfo, "INFO", fmt.Sprint(args...)) }
func Infof(format string, a ...any)   { output(LevelInfo, "INFO", fmt.Sprintf(format, a...)) }
func Warn(args ...any)                { output(LevelWarn, "WARN", fmt.Sprint(args...)) }
func Warnf(format string, a ...any)   { output(LevelWarn, "WARN", fmt.Sprintf(format, a...)) }
func Error(args ...any)               { output(LevelError, "ERROR", fmt.Sprint(args...)) }
func Errorf(format string, a ...any)  { output(LevelError, "ERROR", fmt.Sprintf(format, a...)) }

// Fatal logs at error level and exits.
func Fatal(args ...any) {
	output(LevelError, "FATAL", fmt.Sprint(args...))
	os.Exit(1)
}

func Fatalf(format string, a ...any) {
	output(LevelError, "FATAL", fmt.Sprintf(format, a...))
	os.Exit(1)
}
