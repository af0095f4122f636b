package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
	WarnLogger  *log.Logger

	minLevel atomic.Int32
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	minLevel.Store(int32(LevelInfo))
}

// SetLevel accepts debug, info, warn or error. Unknown names fall back to info.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		minLevel.Store(int32(LevelDebug))
	case "warn", "warning":
		minLevel.Store(int32(LevelWarn))
	case "error":
		minLevel.Store(int32(LevelError))
	default:
		minLevel.Store(int32(LevelInfo))
	}
}

func enabled(l Level) bool {
	return int32(l) >= minLevel.Load()
}

func Info(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		InfoLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Error(format string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		DebugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		WarnLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// WithRequest prefixes a message with the request id so log lines from one
// HTTP exchange can be grepped together.
func WithRequest(requestID string, format string, v ...interface{}) string {
	msg := fmt.Sprintf(format, v...)
	if requestID == "" {
		return msg
	}
	return fmt.Sprintf("[req=%s] %s", requestID, msg)
}

func LogRequestError(requestID, action string, err error) {
	ErrorLogger.Output(2, WithRequest(requestID, "action=%s error=%v", action, err))
}

func LogPaymentError(orderID, action string, err error) {
	WarnLogger.Output(2, fmt.Sprintf("Payment log error: action=%s, orderID=%s, error=%v", action, orderID, err))
}
