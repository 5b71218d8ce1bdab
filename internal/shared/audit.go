package shared

import (
	"errors"
	"sync"
	"time"
)

// AuditLog represents a single recorded mutation.
type AuditLog struct {
	Actor    string         `json:"actor"`
	Action   string         `json:"action"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entityId"`
	Meta     map[string]any `json:"meta,omitempty"`
	At       time.Time      `json:"at"`
}

// AuditLogger keeps a bounded, in-memory trail of mutations. The dataset is
// session-scoped, so the trail is too; it exists for operator inspection,
// not durable compliance storage.
type AuditLogger struct {
	mu      sync.Mutex
	entries []AuditLog
	limit   int
}

// NewAuditLogger returns a new AuditLogger retaining at most limit entries.
func NewAuditLogger(limit int) *AuditLogger {
	if limit <= 0 {
		limit = 1024
	}
	return &AuditLogger{limit: limit}
}

// Record appends the log entry, evicting the oldest beyond the limit.
func (l *AuditLogger) Record(log AuditLog) error {
	if l == nil {
		return errors.New("audit logger not initialised")
	}
	if log.Action == "" || log.Entity == "" || log.EntityID == "" {
		return errors.New("audit log requires action/entity/entity_id")
	}
	if log.At.IsZero() {
		log.At = time.Now().UTC()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, log)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
	return nil
}

// Entries returns a copy of the recorded trail, oldest first.
func (l *AuditLogger) Entries() []AuditLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditLog, len(l.entries))
	copy(out, l.entries)
	return out
}
