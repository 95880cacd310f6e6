package errors

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"
)

type FormatConfig struct {
	// WithStack adds "[file:line]" to each message, if the error has a stack trace.
	WithStack bool
	// WithUnwrap writes also wrapped errors hidden by Wrap/Wrapf.
	WithUnwrap bool
	// AsSentences capitalizes each message and adds a dot to the end.
	AsSentences bool
}

type FormatOption func(c *FormatConfig)

func FormatWithStack() FormatOption {
	return func(c *FormatConfig) {
		c.WithStack = true
	}
}

func FormatWithUnwrap() FormatOption {
	return func(c *FormatConfig) {
		c.WithUnwrap = true
	}
}

func FormatAsSentences() FormatOption {
	return func(c *FormatConfig) {
		c.AsSentences = true
	}
}

// Format error to a string, nested and multi errors are formatted as a bullet list.
func Format(err error, opts ...FormatOption) string {
	config := FormatConfig{}
	for _, o := range opts {
		o(&config)
	}
	w := newWriter(config)
	w.WriteError(err)
	return w.String()
}

func formatMessage(msg string, trace StackTrace, config FormatConfig) string {
	if config.AsSentences {
		msg = toSentence(msg)
	}
	if config.WithStack && len(trace) > 0 {
		frame, _ := runtime.CallersFrames([]uintptr{trace[0]}).Next()
		msg = fmt.Sprintf("%s [%s:%d]", msg, frame.File, frame.Line)
	}
	return msg
}

func formatPrefix(prefix string) string {
	return strings.TrimRight(prefix, ".,:") + ":"
}

func toSentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}

	runes := []rune(msg)
	runes[0] = unicode.ToUpper(runes[0])
	msg = string(runes)

	if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, "!") && !strings.HasSuffix(msg, "?") && !strings.HasSuffix(msg, ":") {
		msg += "."
	}
	return msg
}
