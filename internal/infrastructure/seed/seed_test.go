package seed

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/demography"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const adminYAML = `
admins:
  - name: Administrator Desa
    username: superadmin
    email: admin@laiyolobaru.desa.id
    password: ${SEED_TEST_PASSWORD}
`

const dataYAML = `
village_profile:
  village_name: Laiyolo Baru
  regency: Kepulauan Selayar
  area_km2: "12.75"
  altitude_m: 25
travel_categories:
  - name: Wisata Pantai
    description: Pantai
dusun_summaries:
  - { dusun: dusun_1, households: 10, male: 20, female: 22 }
  - { dusun: Dusun II, households: 5, male: 9, female: 11 }
population_stats:
  - { category: religion, label: Islam, dusun: dusun_1, male: 20, female: 22 }
`

func newSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(persistence.Models()...))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewSeeder(
		persistence.NewGormAdminRepository(db),
		persistence.NewGormTravelCategoryRepository(db),
		persistence.NewGormDemographyRepository(db),
		zaptest.NewLogger(t),
	), db
}

func seedFS() fstest.MapFS {
	return fstest.MapFS{
		"01_admin.yaml": {Data: []byte(adminYAML)},
		"02_data.yml":   {Data: []byte(dataYAML)},
		"README.md":     {Data: []byte("ignored")},
	}
}

func TestLoad_MergesFilesAndExpandsEnv(t *testing.T) {
	t.Setenv("SEED_TEST_PASSWORD", "rahasia123")

	data, err := Load(seedFS())
	require.NoError(t, err)

	require.Len(t, data.Admins, 1)
	assert.Equal(t, "rahasia123", data.Admins[0].Password)
	require.NotNil(t, data.VillageProfile)
	assert.Equal(t, "12.75", data.VillageProfile.AreaKm2.String())
	assert.Len(t, data.TravelCategories, 1)
	assert.Len(t, data.DusunSummaries, 2)
	assert.Len(t, data.PopulationStats, 1)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(fstest.MapFS{"bad.yaml": {Data: []byte("writers:\n  - name: x\n")}})
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	data, err := Load(fstest.MapFS{"empty.yaml": {Data: []byte("")}})
	require.NoError(t, err)
	assert.Empty(t, data.Admins)
}

func TestSeeder_Run_IsIdempotent(t *testing.T) {
	t.Setenv("SEED_TEST_PASSWORD", "rahasia123")
	data, err := Load(seedFS())
	require.NoError(t, err)

	seeder, db := newSeeder(t)
	ctx := context.Background()

	first, err := seeder.Run(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Admins)
	assert.True(t, first.Profile)
	assert.Equal(t, 1, first.Categories)
	assert.Equal(t, 2, first.DusunSummaries)
	assert.Equal(t, 1, first.Stats)

	data.PopulationStats[0].Male = 25
	second, err := seeder.Run(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Admins)
	assert.False(t, second.Profile)
	assert.Equal(t, 0, second.Categories)

	repo := persistence.NewGormDemographyRepository(db)
	stat, err := repo.FindStatByKey(ctx, demography.CategoryReligion, "Islam", shared.Dusun1)
	require.NoError(t, err)
	assert.Equal(t, 25, stat.Male)

	var statCount int64
	require.NoError(t, db.Model(&demography.PopulationStat{}).Count(&statCount).Error)
	assert.Equal(t, int64(1), statCount)

	admin, err := persistence.NewGormAdminRepository(db).FindByLogin(ctx, "superadmin")
	require.NoError(t, err)
	assert.True(t, admin.IsSuperAdmin())
	assert.True(t, admin.VerifyPassword("rahasia123"))
}

func TestSeeder_Run_MissingPassword(t *testing.T) {
	seeder, _ := newSeeder(t)

	_, err := seeder.Run(context.Background(), &Data{Admins: []AdminSeed{{
		Name: "Admin", Username: "admin", Email: "admin@example.com",
	}}})
	assert.Error(t, err)
}
