package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MaxLogEntries bounds the autofill log ring.
const MaxLogEntries = 500

// LogEntry is one recorded autofill event.
type LogEntry struct {
	ID      string          `json:"id"`
	Time    time.Time       `json:"time"`
	Payload json.RawMessage `json:"payload"`
}

// LoggingEnabled reports whether autofill logging is on.
func (s *Store) LoggingEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	_, err := s.getOne(ctx, KeyAutofillLogging, &enabled)
	return enabled, err
}

// SetLogging toggles autofill logging.
func (s *Store) SetLogging(ctx context.Context, enabled bool) error {
	return s.kv.Set(ctx, map[string]any{KeyAutofillLogging: enabled})
}

// AppendLog records payload, dropping the oldest entries past MaxLogEntries.
func (s *Store) AppendLog(ctx context.Context, payload any) (*LogEntry, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Op: "encode", Key: KeyAutofillLogs, Cause: err}
	}
	entry := LogEntry{
		ID:      uuid.New().String(),
		Time:    time.Now().UTC(),
		Payload: body,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var logs []LogEntry
	if _, err := s.getOne(ctx, KeyAutofillLogs, &logs); err != nil {
		return nil, err
	}
	logs = append(logs, entry)
	if len(logs) > MaxLogEntries {
		logs = logs[len(logs)-MaxLogEntries:]
	}
	if err := s.kv.Set(ctx, map[string]any{KeyAutofillLogs: logs}); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Logs returns the recorded entries, oldest first.
func (s *Store) Logs(ctx context.Context) ([]LogEntry, error) {
	var logs []LogEntry
	if _, err := s.getOne(ctx, KeyAutofillLogs, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []LogEntry{}
	}
	return logs, nil
}

// ClearLogs removes every entry.
func (s *Store) ClearLogs(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(ctx, map[string]any{KeyAutofillLogs: []LogEntry{}})
}
