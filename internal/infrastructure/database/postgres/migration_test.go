package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/product"
	"github.com/your-org/boutique-store/internal/domain/user"
	"github.com/your-org/boutique-store/internal/pkg/auth"
	"github.com/your-org/boutique-store/internal/testutil"
)

func TestMigrationAndSeed(t *testing.T) {
	db := testutil.NewDB(t)
	m := NewMigration(db)

	require.NoError(t, m.RunAutoMigrations())
	require.NoError(t, m.CreateIndexes())

	seed := config.SeedConfig{
		Enabled:           true,
		AdminUsername:     "admin",
		AdminEmail:        "Admin@Store.test",
		AdminPassword:     "S3cure!Passw0rd",
		DefaultCategories: []string{"abaya:Abaya", "niqab:Niqab"},
	}
	passwords := auth.NewPasswordManager(bcrypt.MinCost)
	ctx := context.Background()

	require.NoError(t, m.SeedInitialData(ctx, seed, passwords))
	// running the seed again changes nothing
	require.NoError(t, m.SeedInitialData(ctx, seed, passwords))

	var categories []product.Category
	require.NoError(t, db.Order("slug").Find(&categories).Error)
	require.Len(t, categories, 2)
	assert.Equal(t, "abaya", categories[0].Slug)
	assert.Equal(t, "Niqab", categories[1].Name)

	var admins []user.User
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsAdmin)
	assert.Equal(t, "admin@store.test", admins[0].Email)
	assert.NoError(t, passwords.VerifyPassword(seed.AdminPassword, admins[0].PasswordHash))

	require.NoError(t, m.GetTableInfo())
}

func TestSeedSkipsCategoriesWhenCatalogExists(t *testing.T) {
	db := testutil.NewDB(t, Models()...)
	ctx := context.Background()

	require.NoError(t, product.NewCategoryService(db).EnsureCategory(ctx, "kids", "Kids"))

	m := NewMigration(db)
	seed := config.SeedConfig{
		AdminUsername:     "admin",
		AdminEmail:        "admin@store.test",
		AdminPassword:     "S3cure!Passw0rd",
		DefaultCategories: []string{"abaya:Abaya"},
	}
	require.NoError(t, m.SeedInitialData(ctx, seed, auth.NewPasswordManager(bcrypt.MinCost)))

	var count int64
	require.NoError(t, db.Model(&product.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
