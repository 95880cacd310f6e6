package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger creates a logger for the command line.
//   - Info messages are written to stdout.
//   - Warnings and errors are written to stderr.
//   - Debug messages are written to stdout only in the verbose mode.
//   - All messages are written to the log file, if any.
func NewCliLogger(stdout io.Writer, stderr io.Writer, logFile *File, format LogFormat, verbose bool) Logger {
	var cores []zapcore.Core

	// Log to file
	if logFile != nil {
		cores = append(cores, logFile.core())
	}

	// Log to stdout
	cores = append(cores, stdoutCore(stdout, format, verbose))

	// Log to stderr
	cores = append(cores, stderrCore(stderr, format, verbose))

	return loggerFromZapCore(zapcore.NewTee(cores...))
}

func stdoutCore(stdout io.Writer, format LogFormat, verbose bool) zapcore.Core {
	minLevel := InfoLevel
	if verbose {
		minLevel = DebugLevel
	}
	levels := levelRange(minLevel, InfoLevel)
	return consoleCore(stdout, format, verbose, levels)
}

func stderrCore(stderr io.Writer, format LogFormat, verbose bool) zapcore.Core {
	levels := levelRange(WarnLevel, zapcore.FatalLevel)
	return consoleCore(stderr, format, verbose, levels)
}

func consoleCore(w io.Writer, format LogFormat, verbose bool, levels zapcore.LevelEnabler) zapcore.Core {
	if format == LogFormatJSON {
		encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			LevelKey:    "level",
			MessageKey:  "message",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
		})
		return zapcore.NewCore(encoder, zapcore.AddSync(w), levels)
	}

	// Console shows only messages, the level prefix is printed in the verbose mode
	config := zapcore.EncoderConfig{MessageKey: "message", ConsoleSeparator: "\t"}
	if verbose {
		config.LevelKey = "level"
		config.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return &messageOnlyCore{Core: zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), levels)}
}

// messageOnlyCore drops all fields, console output contains only messages.
type messageOnlyCore struct {
	zapcore.Core
}

func (c *messageOnlyCore) With([]zapcore.Field) zapcore.Core {
	return c
}

func (c *messageOnlyCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *messageOnlyCore) Write(entry zapcore.Entry, _ []zapcore.Field) error {
	return c.Core.Write(entry, nil)
}

func levelRange(minLevel, maxLevel zapcore.Level) zapcore.LevelEnabler {
	return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l <= maxLevel
	})
}
