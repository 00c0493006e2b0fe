package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/demography"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDemographyRepository_Profile(t *testing.T) {
	repo := NewGormDemographyRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.GetProfile(ctx)
	assert.ErrorIs(t, err, demography.ErrProfileNotFound)

	p, err := demography.NewVillageProfile(demography.ProfileDetails{
		VillageName: "Laiyolo Baru",
		Regency:     "Kepulauan Selayar",
		AreaKm2:     decimal.RequireFromString("12.5"),
	})
	require.NoError(t, err)
	require.NoError(t, repo.SaveProfile(ctx, p))

	found, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Laiyolo Baru", found.VillageName)
	assert.True(t, decimal.RequireFromString("12.5").Equal(found.AreaKm2))
}

func TestGormDemographyRepository_DusunSummaryUpsert(t *testing.T) {
	repo := NewGormDemographyRepository(newTestDB(t))
	ctx := context.Background()

	s, err := demography.NewDusunSummary(shared.Dusun2, 100, 210, 205)
	require.NoError(t, err)
	require.NoError(t, repo.SaveDusunSummary(ctx, s))

	s, err = demography.NewDusunSummary(shared.Dusun2, 104, 212, 208)
	require.NoError(t, err)
	require.NoError(t, repo.SaveDusunSummary(ctx, s))

	summaries, err := repo.ListDusunSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 104, summaries[0].Households)
	assert.Equal(t, 420, summaries[0].Total())
}

func TestGormDemographyRepository_Stats(t *testing.T) {
	repo := NewGormDemographyRepository(newTestDB(t))
	ctx := context.Background()

	for _, row := range []struct {
		category demography.StatCategory
		label    string
		dusun    shared.Dusun
	}{
		{demography.CategoryEducation, "SD", shared.Dusun1},
		{demography.CategoryEducation, "SMA", shared.Dusun1},
		{demography.CategoryReligion, "Islam", shared.Dusun1},
	} {
		s, err := demography.NewPopulationStat(row.category, row.label, row.dusun, 10, 12)
		require.NoError(t, err)
		require.NoError(t, repo.SaveStat(ctx, s))
	}

	filter := shared.DefaultFilter()
	filter.Filters["category"] = "education"
	stats, err := repo.ListStats(ctx, filter)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "SD", stats[0].Label)

	found, err := repo.FindStatByKey(ctx, demography.CategoryReligion, "Islam", shared.Dusun1)
	require.NoError(t, err)
	assert.Equal(t, 22, found.Total())

	require.NoError(t, repo.DeleteStat(ctx, found.ID))
	_, err = repo.FindStatByID(ctx, found.ID)
	assert.ErrorIs(t, err, demography.ErrStatNotFound)
	assert.ErrorIs(t, repo.DeleteStat(ctx, uuid.New()), demography.ErrStatNotFound)
}

func TestGormLogRepository(t *testing.T) {
	repo := NewGormLogRepository(newTestDB(t))
	actorID := uuid.New()
	ctx := auditlog.WithActor(context.Background(), auditlog.Actor{ID: actorID, Name: "Kades", IP: "10.0.0.1"})

	for _, action := range []auditlog.Action{auditlog.ActionCreate, auditlog.ActionUpdate, auditlog.ActionLogin} {
		l, err := auditlog.NewLog(ctx, action, auditlog.EntityArticle, nil, "ubah artikel")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, l))
	}

	t.Run("filter by action", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["action"] = string(auditlog.ActionLogin)
		logs, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, logs, 1)
		require.NotNil(t, logs[0].ActorID)
		assert.Equal(t, actorID, *logs[0].ActorID)
	})

	t.Run("filter by actor", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["actor_id"] = actorID
		_, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("future from excludes everything", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["from"] = time.Now().Add(24 * time.Hour)
		_, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}
