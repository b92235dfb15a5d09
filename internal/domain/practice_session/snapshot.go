package practicesession

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlo-prep/backend/internal/domain/questionbank"
)

// Snapshot is the persisted form of a session. Timestamps are Unix
// milliseconds. Pointer fields distinguish "missing" from zero so partial
// snapshots can be rejected.
type Snapshot struct {
	QSet    []questionbank.Question `json:"qset"`
	Cursor  *int                    `json:"cursor"`
	Correct int                     `json:"correct"`
	Locked  bool                    `json:"locked,omitempty"`
	StartTs *int64                  `json:"startTs"`
	EndTs   *int64                  `json:"endTs"`
}

// Valid reports whether the snapshot can be resumed: a non-empty question
// set, a cursor within bounds, and both timestamps.
func (s Snapshot) Valid() bool {
	if len(s.QSet) == 0 || s.Cursor == nil || s.StartTs == nil || s.EndTs == nil {
		return false
	}
	if *s.Cursor < 0 || *s.Cursor > len(s.QSet) {
		return false
	}
	if s.Correct < 0 || s.Correct > len(s.QSet) {
		return false
	}
	for _, q := range s.QSet {
		if q.Validate() != nil {
			return false
		}
	}
	return true
}

// KeyValue is the durable key-value collaborator snapshots are written to.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Persister saves and restores session snapshots.
type Persister interface {
	Save(ctx context.Context, key string, snap Snapshot) error
	Load(ctx context.Context, key string) (Snapshot, bool)
	Delete(ctx context.Context, key string) error
}

// KVPersister stores snapshots as JSON documents in a KeyValue store.
type KVPersister struct {
	kv     KeyValue
	logger *slog.Logger
}

func NewKVPersister(kv KeyValue, logger *slog.Logger) *KVPersister {
	if logger == nil {
		logger = slog.Default()
	}
	return &KVPersister{kv: kv, logger: logger}
}

func (p *KVPersister) Save(ctx context.Context, key string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := p.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// Load returns the snapshot under key. Missing, unreadable, malformed or
// partial snapshots all report false.
func (p *KVPersister) Load(ctx context.Context, key string) (Snapshot, bool) {
	data, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		p.logger.Warn("snapshot read failed", "key", key, "error", err)
		return Snapshot{}, false
	}
	if !ok {
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		p.logger.Warn("discarding malformed snapshot", "key", key, "error", err)
		return Snapshot{}, false
	}
	if !snap.Valid() {
		p.logger.Warn("discarding incomplete snapshot", "key", key)
		return Snapshot{}, false
	}
	return snap, true
}

func (p *KVPersister) Delete(ctx context.Context, key string) error {
	if err := p.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}

func toMillis(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}
