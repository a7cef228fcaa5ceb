package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/zonekeeper/internal/database"
)

func seedZone(t *testing.T, db *database.DB, name string) int64 {
	t.Helper()
	id, err := db.CreateZone(context.Background(), database.Zone{
		Name: name,
		Type: database.ZoneKindMaster,
	})
	require.NoError(t, err)
	return id
}

func TestRecordCRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	zone := seedZone(t, db, "example.com")

	id, err := db.InsertRecord(ctx, database.Record{
		DomainID: zone, Name: "www.example.com", Type: "A", Content: "192.0.2.1", TTL: 3600,
	})
	require.NoError(t, err)

	r, err := db.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", r.Name)
	assert.Equal(t, "192.0.2.1", r.Content)
	assert.False(t, r.Disabled)

	r.Content = "192.0.2.2"
	r.TTL = 300
	require.NoError(t, db.UpdateRecord(ctx, *r))

	r, err = db.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.2", r.Content)
	assert.Equal(t, 300, r.TTL)

	require.NoError(t, db.DeleteRecord(ctx, id))
	_, err = db.GetRecord(ctx, id)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, db.DeleteRecord(ctx, id), database.ErrNotFound)
}

func TestRecordsByZoneOrdersSOAFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	zone := seedZone(t, db, "example.com")

	for _, r := range []database.Record{
		{DomainID: zone, Name: "www.example.com", Type: "A", Content: "192.0.2.1", TTL: 3600},
		{DomainID: zone, Name: "example.com", Type: "SOA", Content: "ns1.example.com hostmaster.example.com 2025090100 28800 7200 604800 86400", TTL: 86400},
		{DomainID: zone, Name: "example.com", Type: "NS", Content: "ns1.example.com", TTL: 86400},
	} {
		_, err := db.InsertRecord(ctx, r)
		require.NoError(t, err)
	}

	records, err := db.RecordsByZone(ctx, zone)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "SOA", records[0].Type)
}

func TestRRSet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	zone := seedZone(t, db, "example.com")

	for _, content := range []string{"192.0.2.2", "192.0.2.1"} {
		_, err := db.InsertRecord(ctx, database.Record{
			DomainID: zone, Name: "www.example.com", Type: "A", Content: content, TTL: 3600,
		})
		require.NoError(t, err)
	}
	_, err := db.InsertRecord(ctx, database.Record{
		DomainID: zone, Name: "www.example.com", Type: "AAAA", Content: "2001:db8::1", TTL: 3600,
	})
	require.NoError(t, err)

	set, err := db.RRSet(ctx, zone, "www.example.com", "A")
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, "192.0.2.1", set[0].Content)
	assert.Equal(t, "192.0.2.2", set[1].Content)
}

func TestRecordExists(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	zone := seedZone(t, db, "example.com")

	_, err := db.InsertRecord(ctx, database.Record{
		DomainID: zone, Name: "www.example.com", Type: "A", Content: "192.0.2.1", TTL: 3600,
	})
	require.NoError(t, err)

	exists, err := db.RecordExists(ctx, zone, "www.example.com", "A", "192.0.2.1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.RecordExists(ctx, zone, "www.example.com", "A", "192.0.2.9")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHasSimilarRecords(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	zone := seedZone(t, db, "example.com")

	first, err := db.InsertRecord(ctx, database.Record{
		DomainID: zone, Name: "www.example.com", Type: "A", Content: "192.0.2.1", TTL: 3600,
	})
	require.NoError(t, err)

	similar, err := db.HasSimilarRecords(ctx, zone, "www.example.com", "A", first)
	require.NoError(t, err)
	assert.False(t, similar, "the record itself does not count")

	_, err = db.InsertRecord(ctx, database.Record{
		DomainID: zone, Name: "www.example.com", Type: "A", Content: "192.0.2.2", TTL: 3600,
	})
	require.NoError(t, err)

	similar, err = db.HasSimilarRecords(ctx, zone, "www.example.com", "A", first)
	require.NoError(t, err)
	assert.True(t, similar)
}

func TestSOAContent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	zone := seedZone(t, db, "example.com")

	_, err := db.SOARecord(ctx, zone)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = db.InsertRecord(ctx, database.Record{
		DomainID: zone, Name: "example.com", Type: "SOA",
		Content: "ns1.example.com hostmaster.example.com 2025090100 28800 7200 604800 86400",
		TTL:     86400,
	})
	require.NoError(t, err)

	soa, err := db.SOARecord(ctx, zone)
	require.NoError(t, err)
	assert.Contains(t, soa.Content, "2025090100")

	updated := "ns1.example.com hostmaster.example.com 2025090101 28800 7200 604800 86400"
	require.NoError(t, db.UpdateSOAContent(ctx, zone, updated))

	soa, err = db.SOARecord(ctx, zone)
	require.NoError(t, err)
	assert.Equal(t, updated, soa.Content)
}

func TestCommentLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	zone := seedZone(t, db, "example.com")

	_, err := db.FindComment(ctx, zone, "www.example.com", "A")
	assert.ErrorIs(t, err, database.ErrNotFound)

	require.NoError(t, db.UpsertComment(ctx, zone, "www.example.com", "A", "alice", "web frontend"))
	c, err := db.FindComment(ctx, zone, "www.example.com", "A")
	require.NoError(t, err)
	assert.Equal(t, "web frontend", c.Comment)
	assert.Equal(t, "alice", c.Account)

	// Upsert replaces rather than duplicates.
	require.NoError(t, db.UpsertComment(ctx, zone, "www.example.com", "A", "bob", "now a proxy"))
	c, err = db.FindComment(ctx, zone, "www.example.com", "A")
	require.NoError(t, err)
	assert.Equal(t, "now a proxy", c.Comment)
	assert.Equal(t, "bob", c.Account)

	// Empty text deletes.
	require.NoError(t, db.UpsertComment(ctx, zone, "www.example.com", "A", "bob", ""))
	_, err = db.FindComment(ctx, zone, "www.example.com", "A")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

