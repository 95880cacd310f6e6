package errors

import (
	"bufio"
	"fmt"
	"strings"
)

const (
	Indent = "  "
	Bullet = "- "
)

type writer struct {
	config FormatConfig
	out    strings.Builder
}

func newWriter(config FormatConfig) *writer {
	return &writer{config: config}
}

func (w *writer) WriteError(err error) {
	w.WriteErrorLevel(0, err, nil)
}

func (w *writer) WriteErrorLevel(level int, err error, trace StackTrace) {
	if err == nil {
		panic(Errorf("error cannot be nil"))
	}

	// Get trace, if it is present
	if v, ok := err.(stackTracer); ok { // nolint: errorlint
		trace = v.StackTrace()
	}

	// nolint:errorlint
	switch v := err.(type) {
	case nestedErrorGetter:
		w.WriteNestedError(level, v.MainError(), v.WrappedErrors(), trace)
		return
	case multiErrorGetter:
		w.WriteErrorsList(level, v.WrappedErrors())
		return
	case *withStack:
		// Skip the stack wrapper, keep the trace
		w.writeMessage(level, v.error, trace)
		return
	default:
		w.writeMessage(level, v, trace)
	}
}

func (w *writer) writeMessage(level int, err error, trace StackTrace) {
	// The wrapper can contain nested/multi error
	switch err.(type) { // nolint:errorlint
	case nestedErrorGetter, multiErrorGetter:
		w.WriteErrorLevel(level, err, trace)
		return
	}

	if w.config.WithUnwrap {
		if v, ok := err.(*wrappedError); ok { // nolint:errorlint
			// Write current error
			w.Write(formatMessage(v.msg, trace, w.config))
			w.Write(fmt.Sprintf(" (%T):", err))
			w.WriteNewLine()

			// Write wrapped error
			w.WriteIndent(level)
			w.Write(Bullet)
			w.WriteErrorLevel(level+1, v.err, nil)
			return
		}
	}

	// If the error contains more lines, align all lines
	scanner := bufio.NewScanner(strings.NewReader(formatMessage(err.Error(), trace, w.config)))
	scanner.Scan()
	w.Write(scanner.Text())
	for scanner.Scan() {
		w.WriteNewLine()
		w.WriteIndent(level)
		w.Write(scanner.Text())
	}
}

func (w *writer) WriteNestedError(level int, main error, errs []error, trace StackTrace) {
	// Convert main error to string
	mainWriter := w.clone()
	mainWriter.WriteErrorLevel(level, main, trace)
	mainStr := mainWriter.String()

	// Check if there is a sub error
	errsCount := len(errs)
	if errsCount == 0 {
		w.Write(mainStr)
		return
	}

	// Convert main error to prefix
	mainStr = formatPrefix(mainStr)

	// Convert sub errors to string
	subErrsWriter := w.clone()
	subErrsWriter.WriteErrorsList(level, errs)
	subErrsStr := subErrsWriter.String()

	// If there is more than one error or the message is long,
	// then break line and create bullet list
	w.Write(mainStr)
	if errsCount > 1 || len(mainStr)+len(subErrsStr) > 60 || strings.Contains(subErrsStr, "\n") {
		w.WriteNewLine()
		if errsCount == 1 {
			w.WriteIndent(level)
			w.Write(Bullet)
			w.WriteErrorLevel(level+1, errs[0], nil)
		} else {
			w.WriteErrorsList(level, errs)
		}
	} else {
		w.Write(" ")
		w.WriteErrorsList(level, errs)
	}
}

func (w *writer) WriteErrorsList(level int, errs []error) {
	indent := len(errs) > 1
	last := len(errs) - 1
	for i, err := range errs {
		if indent {
			w.WriteIndent(level)
			w.Write(Bullet)
		}
		w.WriteErrorLevel(level+1, err, nil)
		if i != last {
			w.WriteNewLine()
		}
	}
}

func (w *writer) WriteIndent(level int) {
	w.Write(strings.Repeat(Indent, level))
}

func (w *writer) WriteNewLine() {
	w.Write("\n")
}

func (w *writer) Write(s string) {
	_, _ = w.out.WriteString(s)
}

func (w *writer) String() string {
	return w.out.String()
}

func (w *writer) clone() *writer {
	return &writer{config: w.config}
}
