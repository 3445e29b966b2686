package store

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// KV is a local key-value store with atomic read-modify-write.
type KV interface {
	// Get returns the value for key; found is false when it was never set.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Update runs fn in a transaction. Writes made through tx become
	// visible together when fn returns nil, and not at all otherwise.
	Update(ctx context.Context, fn func(tx KVTx) error) error
}

// KVTx is the view of the store inside Update.
type KVTx interface {
	Get(key string) (value []byte, found bool, err error)
	Put(key string, value []byte) error
}

const kvTable = "kv"

var (
	kvColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	kvSchema = &schema.Table{
		Name:       kvTable,
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
	}
)

// migrate creates or upgrades the kv table.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	return m.Create(ctx, kvSchema)
}

// Get implements KV.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return getKV(ctx, s.drv, key)
}

// Update implements KV using a SQLite transaction.
func (s *Store) Update(ctx context.Context, fn func(tx KVTx) error) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&sqliteTx{ctx: ctx, tx: tx}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type sqliteTx struct {
	ctx context.Context
	tx  dialect.Tx
}

func (t *sqliteTx) Get(key string) ([]byte, bool, error) {
	return getKV(t.ctx, t.tx, key)
}

func (t *sqliteTx) Put(key string, value []byte) error {
	q, args := entsql.Dialect(dialect.SQLite).
		Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UnixNano()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := t.tx.Exec(t.ctx, q, args, nil); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func getKV(ctx context.Context, q dialect.ExecQuerier, key string) ([]byte, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("get %q: %w", key, err)
		}
		return nil, false, nil
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return nil, false, fmt.Errorf("scan %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// MemoryKV is an in-process KV for tests and throwaway runs.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get implements KV.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return slices.Clone(v), ok, nil
}

// Update implements KV. Writes are staged and applied only when fn succeeds.
func (m *MemoryKV) Update(_ context.Context, fn func(tx KVTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &memoryTx{base: m.data, staged: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	maps.Copy(m.data, tx.staged)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryKV) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.data))
}

type memoryTx struct {
	base   map[string][]byte
	staged map[string][]byte
}

func (t *memoryTx) Get(key string) ([]byte, bool, error) {
	if v, ok := t.staged[key]; ok {
		return slices.Clone(v), true, nil
	}
	v, ok := t.base[key]
	return slices.Clone(v), ok, nil
}

func (t *memoryTx) Put(key string, value []byte) error {
	t.staged[key] = slices.Clone(value)
	return nil
}
