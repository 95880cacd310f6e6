package ioutil

import (
	"bytes"
	"io"
	"sync"
)

// AtomicWriter is a thread-safe buffer writer, it is used to capture output in tests.
type AtomicWriter struct {
	lock    *sync.Mutex
	writers []io.Writer
	buffer  *bytes.Buffer
}

func NewAtomicWriter() *AtomicWriter {
	buffer := &bytes.Buffer{}
	return &AtomicWriter{lock: &sync.Mutex{}, writers: []io.Writer{buffer}, buffer: buffer}
}

// ConnectTo allows writes to multiple targets.
func (w *AtomicWriter) ConnectTo(writer io.Writer) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.writers = append(w.writers, writer)
}

func (w *AtomicWriter) Write(p []byte) (n int, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	for _, writer := range w.writers {
		if _, err = writer.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (w *AtomicWriter) WriteString(s string) (n int, err error) {
	return w.Write([]byte(s))
}

func (w *AtomicWriter) Sync() error {
	return nil
}

func (w *AtomicWriter) Truncate() {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.buffer.Reset()
}

func (w *AtomicWriter) String() string {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.buffer.String()
}
