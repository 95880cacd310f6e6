package log

import (
	"context"
	"sync"

	"go.uber.org/zap/zapcore"
)

// MemoryLogger stores records until the real logger is ready, see CopyLogsTo.
type MemoryLogger struct {
	*zapLogger
	store *memoryStore
}

type memoryStore struct {
	lock    *sync.Mutex
	records []memoryRecord
}

type memoryRecord struct {
	entry  zapcore.Entry
	fields []zapcore.Field
}

type memoryCore struct {
	store  *memoryStore
	fields []zapcore.Field
}

func NewMemoryLogger() *MemoryLogger {
	store := &memoryStore{lock: &sync.Mutex{}}
	return &MemoryLogger{zapLogger: loggerFromZapCore(&memoryCore{store: store}), store: store}
}

// CopyLogsTo writes all stored records to the target logger and clears the store.
func (l *MemoryLogger) CopyLogsTo(target Logger) {
	l.store.lock.Lock()
	records := l.store.records
	l.store.records = nil
	l.store.lock.Unlock()

	for _, r := range records {
		if v, ok := target.(*zapLogger); ok {
			if ce := v.zap.Check(r.entry.Level, r.entry.Message); ce != nil {
				ce.Write(r.fields...)
			}
			continue
		}
		switch r.entry.Level {
		case DebugLevel:
			target.Debug(context.Background(), r.entry.Message)
		case WarnLevel:
			target.Warn(context.Background(), r.entry.Message)
		case ErrorLevel:
			target.Error(context.Background(), r.entry.Message)
		default:
			target.Info(context.Background(), r.entry.Message)
		}
	}
}

func (c *memoryCore) Enabled(zapcore.Level) bool {
	return true
}

func (c *memoryCore) With(fields []zapcore.Field) zapcore.Core {
	return &memoryCore{store: c.store, fields: append(append([]zapcore.Field{}, c.fields...), fields...)}
}

func (c *memoryCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return checked.AddCore(entry, c)
}

func (c *memoryCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	c.store.lock.Lock()
	defer c.store.lock.Unlock()
	c.store.records = append(c.store.records, memoryRecord{entry: entry, fields: append(append([]zapcore.Field{}, c.fields...), fields...)})
	return nil
}

func (c *memoryCore) Sync() error {
	return nil
}
