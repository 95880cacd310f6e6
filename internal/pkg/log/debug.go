package log

import (
	"io"

	"go.uber.org/zap/zapcore"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/ioutil"
)

type debugLogger struct {
	*zapLogger
	all         *ioutil.AtomicWriter
	debug       *ioutil.AtomicWriter
	info        *ioutil.AtomicWriter
	warn        *ioutil.AtomicWriter
	warnOrError *ioutil.AtomicWriter
	errorWriter *ioutil.AtomicWriter
}

// NewDebugLogger creates a logger which stores messages in memory, in the "LEVEL  message" format.
func NewDebugLogger() DebugLogger {
	l := &debugLogger{
		all:         ioutil.NewAtomicWriter(),
		debug:       ioutil.NewAtomicWriter(),
		info:        ioutil.NewAtomicWriter(),
		warn:        ioutil.NewAtomicWriter(),
		warnOrError: ioutil.NewAtomicWriter(),
		errorWriter: ioutil.NewAtomicWriter(),
	}

	l.zapLogger = loggerFromZapCore(zapcore.NewTee(
		debugCore(l.all, levelRange(DebugLevel, ErrorLevel)),
		debugCore(l.debug, levelRange(DebugLevel, DebugLevel)),
		debugCore(l.info, levelRange(InfoLevel, InfoLevel)),
		debugCore(l.warn, levelRange(WarnLevel, WarnLevel)),
		debugCore(l.warnOrError, levelRange(WarnLevel, ErrorLevel)),
		debugCore(l.errorWriter, levelRange(ErrorLevel, ErrorLevel)),
	))

	return l
}

func debugCore(w io.Writer, levels zapcore.LevelEnabler) zapcore.Core {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "message",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "  ",
	})
	return &messageOnlyCore{Core: zapcore.NewCore(encoder, zapcore.AddSync(w), levels)}
}

// ConnectTo copies all messages to the writer, for example to os.Stdout when debugging a test.
func (l *debugLogger) ConnectTo(writer io.Writer) {
	l.all.ConnectTo(writer)
}

func (l *debugLogger) Truncate() {
	l.all.Truncate()
	l.debug.Truncate()
	l.info.Truncate()
	l.warn.Truncate()
	l.warnOrError.Truncate()
	l.errorWriter.Truncate()
}

func (l *debugLogger) AllMessages() string {
	return l.read(l.all)
}

func (l *debugLogger) DebugMessages() string {
	return l.read(l.debug)
}

func (l *debugLogger) InfoMessages() string {
	return l.read(l.info)
}

func (l *debugLogger) WarnMessages() string {
	return l.read(l.warn)
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.read(l.warnOrError)
}

func (l *debugLogger) ErrorMessages() string {
	return l.read(l.errorWriter)
}

func (l *debugLogger) read(w *ioutil.AtomicWriter) string {
	out := w.String()
	l.Truncate()
	return out
}
