package comments_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/zonekeeper/internal/comments"
	"github.com/jroosing/zonekeeper/internal/database"
)

type fixture struct {
	db   *database.DB
	sync *comments.Synchronizer
	zone int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "zonekeeper.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	zone, err := db.CreateZone(context.Background(), database.Zone{
		Name: "example.com",
		Type: database.ZoneKindMaster,
	})
	require.NoError(t, err)

	return &fixture{db: db, sync: comments.NewSynchronizer(db), zone: zone}
}

func (f *fixture) addRecord(t *testing.T, name, rtype, content string) int64 {
	t.Helper()
	id, err := f.db.InsertRecord(context.Background(), database.Record{
		DomainID: f.zone, Name: name, Type: rtype, Content: content, TTL: 3600,
	})
	require.NoError(t, err)
	return id
}

func TestFindReturnsNilWhenAbsent(t *testing.T) {
	f := newFixture(t)
	c, err := f.sync.Find(context.Background(), f.zone, "www.example.com", "A")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestSetAndFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.sync.Set(ctx, f.zone, "www.example.com", "A", "alice", "web frontend"))
	c, err := f.sync.Find(ctx, f.zone, "www.example.com", "A")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "web frontend", c.Comment)
}

func TestRecordMovedLastRecordCarriesComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.addRecord(t, "old.example.com", "A", "192.0.2.1")
	require.NoError(t, f.sync.Set(ctx, f.zone, "old.example.com", "A", "alice", "moving host"))

	require.NoError(t, f.sync.RecordMoved(ctx, f.zone, id, "old.example.com", "A", "new.example.com", "A"))

	old, err := f.sync.Find(ctx, f.zone, "old.example.com", "A")
	require.NoError(t, err)
	assert.Nil(t, old, "comment must leave the old rrset when its last record moves")

	moved, err := f.sync.Find(ctx, f.zone, "new.example.com", "A")
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, "moving host", moved.Comment)
}

func TestRecordMovedSiblingsKeepComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	moving := f.addRecord(t, "www.example.com", "A", "192.0.2.1")
	f.addRecord(t, "www.example.com", "A", "192.0.2.2")
	require.NoError(t, f.sync.Set(ctx, f.zone, "www.example.com", "A", "alice", "round robin"))

	// Simulate the rename: the moving record already has its new name.
	require.NoError(t, f.db.UpdateRecord(ctx, database.Record{
		ID: moving, DomainID: f.zone, Name: "www2.example.com", Type: "A", Content: "192.0.2.1", TTL: 3600,
	}))
	require.NoError(t, f.sync.RecordMoved(ctx, f.zone, moving, "www.example.com", "A", "www2.example.com", "A"))

	old, err := f.sync.Find(ctx, f.zone, "www.example.com", "A")
	require.NoError(t, err)
	require.NotNil(t, old, "siblings still share the old comment")
	assert.Equal(t, "round robin", old.Comment)

	moved, err := f.sync.Find(ctx, f.zone, "www2.example.com", "A")
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, "round robin", moved.Comment)
}

func TestRecordMovedNoComment(t *testing.T) {
	f := newFixture(t)
	id := f.addRecord(t, "old.example.com", "A", "192.0.2.1")
	assert.NoError(t, f.sync.RecordMoved(context.Background(), f.zone, id, "old.example.com", "A", "new.example.com", "A"))
}

func TestRecordDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.addRecord(t, "www.example.com", "A", "192.0.2.1")
	second := f.addRecord(t, "www.example.com", "A", "192.0.2.2")
	require.NoError(t, f.sync.Set(ctx, f.zone, "www.example.com", "A", "alice", "round robin"))

	// Deleting one of two leaves the comment.
	require.NoError(t, f.db.DeleteRecord(ctx, first))
	require.NoError(t, f.sync.RecordDeleted(ctx, f.zone, first, "www.example.com", "A"))
	c, err := f.sync.Find(ctx, f.zone, "www.example.com", "A")
	require.NoError(t, err)
	assert.NotNil(t, c)

	// Deleting the last record removes it.
	require.NoError(t, f.db.DeleteRecord(ctx, second))
	require.NoError(t, f.sync.RecordDeleted(ctx, f.zone, second, "www.example.com", "A"))
	c, err = f.sync.Find(ctx, f.zone, "www.example.com", "A")
	require.NoError(t, err)
	assert.Nil(t, c)
}
