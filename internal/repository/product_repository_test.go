package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/nhalm/pgxkit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/catalogadmin/internal/models"
)

// newTestDB connects to TEST_DATABASE_URL and applies the migrations.
func newTestDB(t *testing.T) *pgxkit.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	m, err := migrate.New("file://../database/migrations", url)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}
	_, _ = m.Close()

	ctx := context.Background()
	db := pgxkit.NewDB()
	require.NoError(t, db.Connect(ctx, url))
	t.Cleanup(func() { _ = db.Shutdown(context.Background()) })
	return db
}

func createTestProduct(t *testing.T, repo *ProductRepository) *models.Product {
	t.Helper()

	categories, err := NewCategoryRepository(repo.db).List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	p, err := repo.Create(context.Background(), &models.CreateProductRequest{
		Name:        "Mug",
		Description: "Ceramic mug",
		Price:       decimal.RequireFromString("12.50"),
		Stock:       4,
		CategoryID:  categories[0].ID,
		Currency:    "USD",
	})
	require.NoError(t, err)
	return p
}

func TestProductRepositoryPartialUpdate(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	ctx := context.Background()
	created := createTestProduct(t, repo)

	name := "Big mug"
	updated, err := repo.Update(ctx, &models.UpdateProductRequest{ID: created.ID, Name: &name}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Big mug", updated.Name)
	assert.Equal(t, created.Description, updated.Description)
	assert.True(t, created.Price.Equal(updated.Price))
	assert.Equal(t, created.Stock, updated.Stock)
	assert.Equal(t, created.CategoryID, updated.CategoryID)
	assert.Empty(t, updated.Images)

	updated, err = repo.Update(ctx, &models.UpdateProductRequest{ID: created.ID}, []string{"img_a.png", "img_b.png"})
	require.NoError(t, err)
	assert.Equal(t, []string{"img_a.png", "img_b.png"}, updated.Images)

	stock := 9
	updated, err = repo.Update(ctx, &models.UpdateProductRequest{ID: created.ID, Stock: &stock}, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stock)
	assert.Equal(t, []string{"img_a.png", "img_b.png"}, updated.Images)
}

func TestProductRepositoryUpdateErrors(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	ctx := context.Background()

	name := "x"
	_, err := repo.Update(ctx, &models.UpdateProductRequest{ID: "prod_missing", Name: &name}, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	created := createTestProduct(t, repo)

	missing := int64(1 << 40)
	_, err = repo.Update(ctx, &models.UpdateProductRequest{ID: created.ID, CategoryID: &missing}, nil)
	assert.ErrorIs(t, err, ErrInvalidReference)

	negative := -1
	_, err = repo.Update(ctx, &models.UpdateProductRequest{ID: created.ID, Stock: &negative}, nil)
	var oor *OutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, "stock", oor.Field)

	wide := decimal.RequireFromString("12345678901")
	_, err = repo.Update(ctx, &models.UpdateProductRequest{ID: created.ID, Price: &wide}, nil)
	assert.True(t, errors.As(err, &oor))
}
