package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"pkt.systems/pslog"

	"github.com/abhisek/golfdrills/internal/metrics"
	"github.com/abhisek/golfdrills/internal/session"
)

// SessionsKey is the key holding the session collection.
const SessionsKey = "golfSessions"

var errCorrupt = errors.New("session payload corrupt")

// SessionStore persists session records as one JSON array under a single
// key. Records are only ever appended.
type SessionStore struct {
	kv      KV
	key     string
	metrics *metrics.Metrics
	now     func() time.Time

	mu sync.Mutex
}

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithMetrics counts saves and corrupt payloads on m.
func WithMetrics(m *metrics.Metrics) SessionOption {
	return func(s *SessionStore) { s.metrics = m }
}

// WithKey overrides SessionsKey.
func WithKey(key string) SessionOption {
	return func(s *SessionStore) { s.key = key }
}

// NewSessionStore creates a SessionStore over kv.
func NewSessionStore(kv KV, opts ...SessionOption) *SessionStore {
	s := &SessionStore{kv: kv, key: SessionsKey, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns all records in insertion order. A missing payload yields
// an empty list. A corrupt payload is logged and also yields an empty list.
func (s *SessionStore) Load(ctx context.Context) ([]session.Record, error) {
	data, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if !found {
		return []session.Record{}, nil
	}
	records, err := decodeRecords(data)
	if err != nil {
		s.corrupt(ctx, err)
		return []session.Record{}, nil
	}
	return records, nil
}

// Save appends rec to the stored collection and writes it back in one
// transaction. If the existing payload is corrupt it is copied to a backup
// key and the collection restarts with rec.
func (s *SessionStore) Save(ctx context.Context, rec *session.Record) error {
	if rec == nil {
		return errors.New("save session: nil record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.kv.Update(ctx, func(tx KVTx) error {
		data, found, err := tx.Get(s.key)
		if err != nil {
			return err
		}

		var records []session.Record
		if found {
			records, err = decodeRecords(data)
			if err != nil {
				s.corrupt(ctx, err)
				backup := s.key + ".corrupt." + strconv.FormatInt(s.now().UnixNano(), 10)
				if err := tx.Put(backup, data); err != nil {
					return err
				}
				pslog.Ctx(ctx).Info("corrupt session payload backed up", "key", s.key, "backup", backup)
				records = nil
			}
		}

		records = append(records, *rec)
		out, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("encode sessions: %w", err)
		}
		return tx.Put(s.key, out)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.metrics.SessionSaved()
	pslog.Ctx(ctx).Debug("session saved", "id", rec.ID, "drills", len(rec.Drills))
	return nil
}

func (s *SessionStore) corrupt(ctx context.Context, err error) {
	s.metrics.CorruptPayload()
	pslog.Ctx(ctx).Warn("session payload corrupt", "key", s.key, "err", err)
}

func decodeRecords(data []byte) ([]session.Record, error) {
	var records []session.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	if records == nil {
		records = []session.Record{}
	}
	return records, nil
}
