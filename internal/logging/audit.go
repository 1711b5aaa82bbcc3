package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// #region audit-log

// AuditLog appends alarm decision entries as JSON lines. Appends are
// serialized; a nil *AuditLog discards everything, so callers never
// branch on whether auditing is enabled.
type AuditLog struct {
	mu sync.Mutex
	w  io.Writer
}

// NewAuditLog wraps w. A nil writer yields a nil log, which is valid.
func NewAuditLog(w io.Writer) *AuditLog {
	if w == nil {
		return nil
	}
	return &AuditLog{w: w}
}

// Append writes one entry as a JSON line.
func (l *AuditLog) Append(entry AuditEntry) error {
	if l == nil {
		return nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	if _, err := l.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}
	return nil
}

// #endregion audit-log
