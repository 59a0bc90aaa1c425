package logging

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/logutils"
)

// Levels lists the log levels accepted by SetLevel, from most to least
// verbose.
var Levels = []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERR"}

var (
	logger     *log.Logger
	loggerOnce sync.Once
	filter     *logutils.LevelFilter
)

func setup() {
	filter = &logutils.LevelFilter{
		Levels:   Levels,
		MinLevel: "INFO",
		Writer:   os.Stderr,
	}
	logger = log.New(filter, "", log.LstdFlags)
}

// SetLevel sets the minimum level at which log messages are emitted.
// Unknown levels fall back to INFO.
func SetLevel(level string) {
	loggerOnce.Do(setup)

	l := logutils.LogLevel(strings.ToUpper(level))
	for _, valid := range Levels {
		if l == valid {
			filter.SetMinLevel(l)
			return
		}
	}
	filter.SetMinLevel("INFO")
}

// Debug logs a message at DEBUG level.
func Debug(format string, v ...interface{}) {
	loggerOnce.Do(setup)
	logger.Printf("[DEBUG] "+format, v...)
}

// Info logs a message at INFO level.
func Info(format string, v ...interface{}) {
	loggerOnce.Do(setup)
	logger.Printf("[INFO] "+format, v...)
}

// Warning logs a message at WARN level.
func Warning(format string, v ...interface{}) {
	loggerOnce.Do(setup)
	logger.Printf("[WARN] "+format, v...)
}

// Error logs a message at ERR level.
func Error(format string, v ...interface{}) {
	loggerOnce.Do(setup)
	logger.Printf("[ERR] "+format, v...)
}
