package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse-ledger/internal/db"
	"warehouse-ledger/internal/model"
)

func createTestJob(t *testing.T, database *sql.DB, jobID string, items []model.JobItem) {
	t.Helper()
	err := CreateJob(context.Background(), database, model.ActiveJob{
		JobID:      jobID,
		PersonName: "Alice",
		Items:      items,
		Task:       "Repair",
		Date:       time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestCreateAndGetJob(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	bolt := addTestItem(t, database, "Bolt", 100)
	cable := addTestItem(t, database, "Cable", 100)

	createTestJob(t, database, "J1", []model.JobItem{
		{ItemID: bolt.ID, ItemName: "Bolt", Quantity: 10, Unit: "pcs"},
		{ItemID: cable.ID, ItemName: "Cable", Quantity: 5, Unit: "m"},
	})

	job, err := GetJob(ctx, database, "J1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", job.PersonName)
	assert.Equal(t, "Repair", job.Task)
	require.Len(t, job.Items, 2)
	// Request order preserved.
	assert.Equal(t, "Bolt", job.Items[0].ItemName)
	assert.Equal(t, 10, job.Items[0].Quantity)
	assert.Equal(t, "Cable", job.Items[1].ItemName)
}

func TestCreateJobDuplicateID(t *testing.T) {
	database := db.NewTestDB(t)
	bolt := addTestItem(t, database, "Bolt", 100)

	items := []model.JobItem{{ItemID: bolt.ID, ItemName: "Bolt", Quantity: 1, Unit: "pcs"}}
	createTestJob(t, database, "J1", items)

	err := CreateJob(context.Background(), database, model.ActiveJob{
		JobID: "J1", PersonName: "Bob", Items: items, Date: time.Now(),
	})
	assert.ErrorIs(t, err, model.ErrDuplicateJobID)
}

func TestGetJobNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := GetJob(context.Background(), database, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListJobs(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	bolt := addTestItem(t, database, "Bolt", 100)

	require.NoError(t, CreateJob(ctx, database, model.ActiveJob{
		JobID: "J1", PersonName: "Alice",
		Items: []model.JobItem{{ItemID: bolt.ID, ItemName: "Bolt", Quantity: 2, Unit: "pcs"}},
		Date:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, CreateJob(ctx, database, model.ActiveJob{
		JobID: "J2", PersonName: "Bob",
		Items: []model.JobItem{{ItemID: bolt.ID, ItemName: "Bolt", Quantity: 3, Unit: "pcs"}},
		Date:  time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
	}))

	jobs, err := ListJobs(ctx, database)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	// Newest first, item lines attached.
	assert.Equal(t, "J2", jobs[0].JobID)
	require.Len(t, jobs[0].Items, 1)
	assert.Equal(t, 3, jobs[0].Items[0].Quantity)
	assert.Equal(t, "J1", jobs[1].JobID)
}

func TestReduceOrRemovePartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	bolt := addTestItem(t, database, "Bolt", 100)
	cable := addTestItem(t, database, "Cable", 100)

	createTestJob(t, database, "J1", []model.JobItem{
		{ItemID: bolt.ID, ItemName: "Bolt", Quantity: 10, Unit: "pcs"},
		{ItemID: cable.ID, ItemName: "Cable", Quantity: 5, Unit: "m"},
	})

	// Return 4 bolts and all cables: bolt line reduced, cable line dropped.
	err := ReduceOrRemove(ctx, database, "J1", map[int64]int{bolt.ID: 4, cable.ID: 5})
	require.NoError(t, err)

	job, err := GetJob(ctx, database, "J1")
	require.NoError(t, err)
	require.Len(t, job.Items, 1)
	assert.Equal(t, bolt.ID, job.Items[0].ItemID)
	assert.Equal(t, 6, job.Items[0].Quantity)
}

func TestReduceOrRemoveDeletesEmptyJob(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	bolt := addTestItem(t, database, "Bolt", 100)

	createTestJob(t, database, "J1", []model.JobItem{
		{ItemID: bolt.ID, ItemName: "Bolt", Quantity: 10, Unit: "pcs"},
	})

	require.NoError(t, ReduceOrRemove(ctx, database, "J1", map[int64]int{bolt.ID: 10}))

	_, err := GetJob(ctx, database, "J1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestReduceOrRemoveValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	bolt := addTestItem(t, database, "Bolt", 100)
	cable := addTestItem(t, database, "Cable", 100)

	createTestJob(t, database, "J1", []model.JobItem{
		{ItemID: bolt.ID, ItemName: "Bolt", Quantity: 10, Unit: "pcs"},
	})

	err := ReduceOrRemove(ctx, database, "missing", map[int64]int{bolt.ID: 1})
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = ReduceOrRemove(ctx, database, "J1", map[int64]int{cable.ID: 1})
	assert.ErrorIs(t, err, model.ErrItemNotOnJob)

	err = ReduceOrRemove(ctx, database, "J1", map[int64]int{bolt.ID: 11})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	err = ReduceOrRemove(ctx, database, "J1", map[int64]int{bolt.ID: -1})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	// A failed validation leaves the job untouched.
	job, err := GetJob(ctx, database, "J1")
	require.NoError(t, err)
	require.Len(t, job.Items, 1)
	assert.Equal(t, 10, job.Items[0].Quantity)
}

func TestStats(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	bolt := addTestItem(t, database, "Bolt", 100)
	cable := addTestItem(t, database, "Cable", 100)

	createTestJob(t, database, "J1", []model.JobItem{
		{ItemID: bolt.ID, ItemName: "Bolt", Quantity: 10, Unit: "pcs"},
		{ItemID: cable.ID, ItemName: "Cable", Quantity: 5, Unit: "m"},
	})

	stats, err := Stats(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 15, stats.TotalCheckedOut)
	assert.Equal(t, 1, stats.ActiveJobs)
}
