package memory

import (
	"context"
	"sync"

	"github.com/carrybid/carrybid/internal/domain/audit"
)

// AuditLog keeps audit entries in insertion order.
type AuditLog struct {
	mu      sync.Mutex
	entries []audit.Entry
}

var _ audit.Trail = (*AuditLog)(nil)

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (l *AuditLog) Record(_ context.Context, e audit.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *AuditLog) Recent(_ context.Context, limit int) ([]audit.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]audit.Entry, 0, limit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}
