package store

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse-ledger/internal/db"
	"warehouse-ledger/internal/model"
)

func addTestItem(t *testing.T, database *sql.DB, name string, stock int) *model.Item {
	t.Helper()
	item, err := AddItem(context.Background(), database, name, stock, "pcs")
	require.NoError(t, err)
	return item
}

func addTestTransaction(t *testing.T, database *sql.DB, itemID int64, qty int, action string, date time.Time) int64 {
	t.Helper()
	id, err := AddTransaction(context.Background(), database, model.Transaction{
		JobID:      "J1",
		PersonName: "Alice",
		ItemID:     itemID,
		ItemName:   "Bolt",
		Quantity:   qty,
		Action:     action,
		Task:       "Repair",
		Date:       date,
	})
	require.NoError(t, err)
	return id
}

func TestRecentActivityOrderAndLimit(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	item := addTestItem(t, database, "Bolt", 100)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		addTestTransaction(t, database, item.ID, i+1, model.ActionIssue, base.Add(time.Duration(i)*time.Minute))
	}

	// Default limit is 10, newest first.
	records, err := RecentActivity(ctx, database, 0)
	require.NoError(t, err)
	require.Len(t, records, 10)
	assert.Equal(t, 15, records[0].Quantity)
	assert.Equal(t, 6, records[9].Quantity)

	// Explicit limit larger than the log returns everything.
	records, err = RecentActivity(ctx, database, 100)
	require.NoError(t, err)
	assert.Len(t, records, 15)
}

func TestListByDateRangeInclusive(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	item := addTestItem(t, database, "Bolt", 100)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	addTestTransaction(t, database, item.ID, 1, model.ActionIssue, start.Add(-time.Second)) // before
	addTestTransaction(t, database, item.ID, 2, model.ActionIssue, start)                  // first instant
	addTestTransaction(t, database, item.ID, 3, model.ActionIssue, end)                    // last instant
	addTestTransaction(t, database, item.ID, 4, model.ActionIssue, end.Add(time.Second))   // after

	records, err := ListByDateRange(ctx, database, start, end)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Quantity)
	assert.Equal(t, 3, records[1].Quantity)
}

func TestListByJobAndItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	bolt := addTestItem(t, database, "Bolt", 100)
	cable := addTestItem(t, database, "Cable", 100)

	date := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	addTestTransaction(t, database, bolt.ID, 5, model.ActionIssue, date)
	addTestTransaction(t, database, cable.ID, 3, model.ActionIssue, date)

	_, err := AddTransaction(ctx, database, model.Transaction{
		JobID: "J2", PersonName: "Bob", ItemID: bolt.ID, ItemName: "Bolt",
		Quantity: 7, Action: model.ActionIssue, Date: date,
	})
	require.NoError(t, err)

	byJob, err := ListByJob(ctx, database, "J1")
	require.NoError(t, err)
	assert.Len(t, byJob, 2)

	byItem, err := ListByItem(ctx, database, bolt.ID)
	require.NoError(t, err)
	assert.Len(t, byItem, 2)
}

func TestSummarizeOrderIndependent(t *testing.T) {
	records := []model.Transaction{
		{Quantity: 10, Action: model.ActionIssue},
		{Quantity: 4, Action: model.ActionReturn},
		{Quantity: 7, Action: model.ActionIssue},
		{Quantity: 7, Action: model.ActionReturn},
		{Quantity: 2, Action: model.ActionIssue},
	}

	want := model.Summary{TotalIssued: 19, TotalReturned: 11, NetChange: -8}
	assert.Equal(t, want, Summarize(records))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(records), func(a, b int) {
			records[a], records[b] = records[b], records[a]
		})
		assert.Equal(t, want, Summarize(records))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, model.Summary{}, Summarize(nil))
}
