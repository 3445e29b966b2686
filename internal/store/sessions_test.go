package store

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pkt.systems/pslog"

	"github.com/abhisek/golfdrills/internal/metrics"
	"github.com/abhisek/golfdrills/internal/session"
)

func record(id, date string) *session.Record {
	return &session.Record{
		ID:       id,
		Date:     date,
		Location: "range",
		Skills:   []string{"lag_putting"},
		Drills: []session.DrillResult{
			{DrillID: "ladder_drill", Name: "Ladder Drill", Score: session.TextScore("7/10")},
		},
		CreatedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func captureCtx(buf *bytes.Buffer) context.Context {
	logger := pslog.NewWithOptions(buf, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	return pslog.ContextWithLogger(context.Background(), logger)
}

func TestSessionStore_LoadEmpty(t *testing.T) {
	s := NewSessionStore(NewMemoryKV())

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSessionStore_SaveAppends(t *testing.T) {
	ctx := context.Background()
	for name, kv := range map[string]KV{"sqlite": testStore(t), "memory": NewMemoryKV()} {
		s := NewSessionStore(kv)
		require.NoError(t, s.Save(ctx, record("a", "2026-05-01")), name)
		require.NoError(t, s.Save(ctx, record("b", "2026-05-02")), name)

		got, err := s.Load(ctx)
		require.NoError(t, err, name)
		require.Len(t, got, 2, name)
		assert.Equal(t, "a", got[0].ID, name)
		assert.Equal(t, "b", got[1].ID, name)
		assert.Equal(t, "7/10", got[1].Drills[0].Score.String(), name)
		assert.True(t, got[0].CreatedAt.Equal(record("a", "").CreatedAt), name)
	}
}

func TestSessionStore_AppendsAfterExistingPayload(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	existing := `[{"id":"old","date":"2026-04-01","location":"home","skills":[],` +
		`"drills":[{"drillId":"x","name":"X","score":null,"notes":""}],"notes":""}]`
	require.NoError(t, kv.Update(ctx, func(tx KVTx) error {
		return tx.Put(SessionsKey, []byte(existing))
	}))

	s := NewSessionStore(kv)
	require.NoError(t, s.Save(ctx, record("new", "2026-05-01")))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "old", got[0].ID)
	assert.True(t, got[0].Drills[0].Score.IsNull())
	assert.True(t, got[0].CreatedAt.IsZero())
	assert.Equal(t, "new", got[1].ID)
}

func TestSessionStore_LoadCorrupt(t *testing.T) {
	var logs bytes.Buffer
	ctx := captureCtx(&logs)
	kv := NewMemoryKV()
	require.NoError(t, kv.Update(ctx, func(tx KVTx) error {
		return tx.Put(SessionsKey, []byte("{not json"))
	}))

	m := metrics.New()
	s := NewSessionStore(kv, WithMetrics(m))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, strings.Contains(logs.String(), "session payload corrupt"), "log: %s", logs.String())
}

func TestSessionStore_SaveOverCorruptBacksUp(t *testing.T) {
	var logs bytes.Buffer
	ctx := captureCtx(&logs)
	kv := NewMemoryKV()
	require.NoError(t, kv.Update(ctx, func(tx KVTx) error {
		return tx.Put(SessionsKey, []byte(`{"not":"a list"}`))
	}))

	s := NewSessionStore(kv)
	s.now = func() time.Time { return time.Unix(0, 42) }
	require.NoError(t, s.Save(ctx, record("fresh", "2026-05-01")))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ID)

	backup, found, err := kv.Get(ctx, SessionsKey+".corrupt.42")
	require.NoError(t, err)
	require.True(t, found, "keys: %v", kv.Keys())
	assert.Equal(t, `{"not":"a list"}`, string(backup))
}

func TestSessionStore_NullPayloadIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Update(ctx, func(tx KVTx) error {
		return tx.Put(SessionsKey, []byte("null"))
	}))

	got, err := NewSessionStore(kv).Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSessionStore_SaveNil(t *testing.T) {
	err := NewSessionStore(NewMemoryKV()).Save(context.Background(), nil)
	assert.Error(t, err)
}

func TestSessionStore_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(NewMemoryKV())

	const n = 20
	errs := make(chan error, n)
	for i := range n {
		go func() {
			errs <- s.Save(ctx, record(string(rune('a'+i)), "2026-05-01"))
		}()
	}
	for range n {
		require.NoError(t, <-errs)
	}

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, n)
}

func TestSessionStore_CustomKey(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := NewSessionStore(kv, WithKey("other"))
	require.NoError(t, s.Save(ctx, record("a", "2026-05-01")))

	assert.Equal(t, []string{"other"}, kv.Keys())
}
