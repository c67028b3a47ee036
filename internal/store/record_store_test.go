package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStoreCreate(t *testing.T) {
	d := openTestDB(t)
	records := NewRecordStore(d)
	cars := NewCarStore(d)
	ctx := context.Background()
	userID := testUser(t, d)

	car, err := cars.Create(ctx, userID, "Ford", "Focus", "2018", "", "")
	require.NoError(t, err)

	when := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	rec, err := records.Create(ctx, car.ID, when, "Joe's Garage", "Brake pads front", 45000)
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, car.ID, rec.CarID)
	assert.Equal(t, "Joe's Garage", rec.ShopName)
	assert.Equal(t, int64(45000), rec.CostHUF)
	assert.Equal(t, "2026-03-15", rec.HappenedOn.Format("2006-01-02"))
}

func TestRecordStoreListNewestFirst(t *testing.T) {
	d := openTestDB(t)
	records := NewRecordStore(d)
	cars := NewCarStore(d)
	ctx := context.Background()
	userID := testUser(t, d)

	car, err := cars.Create(ctx, userID, "Ford", "Focus", "2018", "", "")
	require.NoError(t, err)

	older := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err = records.Create(ctx, car.ID, older, "", "Oil change", 25000)
	require.NoError(t, err)
	_, err = records.Create(ctx, car.ID, newer, "", "Timing belt", 180000)
	require.NoError(t, err)

	list, err := records.ListByCarID(ctx, car.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Timing belt", list[0].Description)
	assert.Equal(t, "Oil change", list[1].Description)
}

func TestRecordStoreDelete(t *testing.T) {
	d := openTestDB(t)
	records := NewRecordStore(d)
	cars := NewCarStore(d)
	ctx := context.Background()
	userID := testUser(t, d)

	car, err := cars.Create(ctx, userID, "Ford", "Focus", "2018", "", "")
	require.NoError(t, err)

	rec, err := records.Create(ctx, car.ID, time.Now(), "", "Battery", 40000)
	require.NoError(t, err)

	require.NoError(t, records.Delete(ctx, rec.ID))

	got, err := records.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
