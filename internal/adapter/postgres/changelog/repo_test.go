package changelog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/changelog"
	"github.com/mkulagin/fencing-club-backend/internal/adapter/postgres/testhelper"
	"github.com/mkulagin/fencing-club-backend/internal/domain"
)

func TestRepo_Add_JSONBRoundTrip(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := changelog.New(pool)
	ctx := context.Background()

	inst := testhelper.SeedInstance(t, pool, domain.TrainingInstance{
		Date: time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	ts := time.Date(2024, 6, 3, 12, 30, 0, 0, time.UTC)
	id, err := repo.Add(ctx, domain.ChangeLogEntry{
		TrainingID:  inst.ID,
		AdminUserID: 42,
		ChangeType:  domain.ChangeCanceled,
		OldValue:    map[string]any{"status": "planned", "duration_minutes": float64(90)},
		NewValue:    map[string]any{"status": "canceled", "comment": "trainer sick"},
		Timestamp:   ts,
	})
	require.NoError(t, err)
	require.Positive(t, id)

	entries, err := repo.GetByTraining(ctx, inst.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, id, e.ID)
	assert.Equal(t, inst.ID, e.TrainingID)
	assert.Equal(t, int64(42), e.AdminUserID)
	assert.Equal(t, domain.ChangeCanceled, e.ChangeType)
	assert.Equal(t, "planned", e.OldValue["status"])
	assert.Equal(t, float64(90), e.OldValue["duration_minutes"])
	assert.Equal(t, "canceled", e.NewValue["status"])
	assert.True(t, ts.Equal(e.Timestamp), "timestamp should survive the roundtrip")
}

func TestRepo_Add_NilOldValue(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := changelog.New(pool)
	ctx := context.Background()

	inst := testhelper.SeedInstance(t, pool, domain.TrainingInstance{
		Date:   time.Date(2031, 5, 2, 0, 0, 0, 0, time.UTC),
		Status: domain.StatusExtra,
	})

	_, err := repo.Add(ctx, domain.ChangeLogEntry{
		TrainingID:  inst.ID,
		AdminUserID: 42,
		ChangeType:  domain.ChangeAdded,
		OldValue:    nil,
		NewValue:    map[string]any{"status": "extra"},
		Timestamp:   time.Now().UTC(),
	})
	require.NoError(t, err)

	entries, err := repo.GetByTraining(ctx, inst.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].OldValue, "NULL old_value maps back to nil")
	assert.NotNil(t, entries[0].NewValue)
}

func TestRepo_GetByTraining_NewestFirst(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := changelog.New(pool)
	ctx := context.Background()

	inst := testhelper.SeedInstance(t, pool, domain.TrainingInstance{
		Date: time.Date(2031, 5, 3, 0, 0, 0, 0, time.UTC),
	})

	base := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	types := []domain.ChangeType{domain.ChangeTimeChanged, domain.ChangeTrainerChanged, domain.ChangeCanceled}
	for i, ct := range types {
		_, err := repo.Add(ctx, domain.ChangeLogEntry{
			TrainingID:  inst.ID,
			AdminUserID: 42,
			ChangeType:  ct,
			NewValue:    map[string]any{"n": float64(i)},
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := repo.GetByTraining(ctx, inst.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.ChangeCanceled, entries[0].ChangeType)
	assert.Equal(t, domain.ChangeTrainerChanged, entries[1].ChangeType)
	assert.Equal(t, domain.ChangeTimeChanged, entries[2].ChangeType)
}

func TestRepo_GetAll_RespectsLimit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := changelog.New(pool)
	ctx := context.Background()

	inst := testhelper.SeedInstance(t, pool, domain.TrainingInstance{
		Date: time.Date(2031, 5, 4, 0, 0, 0, 0, time.UTC),
	})

	for i := 0; i < 5; i++ {
		_, err := repo.Add(ctx, domain.ChangeLogEntry{
			TrainingID:  inst.ID,
			AdminUserID: 42,
			ChangeType:  domain.ChangeTimeChanged,
			NewValue:    map[string]any{"n": float64(i)},
			Timestamp:   time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	entries, err := repo.GetAll(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
