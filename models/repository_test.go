package models

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedCategory(t *testing.T, repo *CategoriesRepository, name string) *Category {
	t.Helper()
	c, err := repo.Save(context.Background(), &Category{Name: name})
	require.NoError(t, err)
	return c
}

func seedProduct(t *testing.T, repo *ProductsRepository, name string, categoryID uint) *Product {
	t.Helper()
	p, err := repo.Save(context.Background(), &Product{
		Name:       name,
		CategoryID: categoryID,
		Price:      price("10.00"),
	})
	require.NoError(t, err)
	return p
}

func TestCategoryCreateThenRead(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoriesRepository(newTestDB(t))

	saved, err := repo.Save(ctx, &Category{Name: "Electronics"})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.False(t, saved.UpdatedAt.IsZero())

	loaded, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", loaded.Name)

	byName, err := repo.FindByName(ctx, "Electronics")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byName.ID)

	_, err = repo.FindByName(ctx, "Garden")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryDuplicateNameIsConstraintViolation(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoriesRepository(newTestDB(t))

	seedCategory(t, repo, "Books")

	_, err := repo.Save(ctx, &Category{Name: "Books"})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	all, err := repo.FindAll(ctx, "name")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductPaging(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoriesRepository(db)
	products := NewProductsRepository(db)

	cat := seedCategory(t, categories, "Tools")
	for i := 12; i >= 1; i-- {
		seedProduct(t, products, fmt.Sprintf("Product %02d", i), cat.ID)
	}

	first, err := products.FindPage(ctx, PageRequest{Number: 0, Size: PageSize, Sort: "name"})
	require.NoError(t, err)
	assert.Len(t, first.Content, 5)
	assert.Equal(t, int64(12), first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.First)
	assert.False(t, first.Last)
	assert.Equal(t, "Product 01", first.Content[0].Name)
	require.NotNil(t, first.Content[0].Category)
	assert.Equal(t, "Tools", first.Content[0].Category.Name)

	last, err := products.FindPage(ctx, PageRequest{Number: 2, Size: PageSize, Sort: "name"})
	require.NoError(t, err)
	assert.Len(t, last.Content, 2)
	assert.Equal(t, int64(12), last.TotalElements)
	assert.True(t, last.Last)
	assert.Equal(t, "Product 12", last.Content[1].Name)

	beyond, err := products.FindPage(ctx, PageRequest{Number: 9, Size: PageSize, Sort: "name"})
	require.NoError(t, err)
	assert.Empty(t, beyond.Content)
	assert.NotNil(t, beyond.Content)
}

func TestProductUpdatePreservesIdentityAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoriesRepository(db)
	products := NewProductsRepository(db)

	cat := seedCategory(t, categories, "Kitchen")
	original := seedProduct(t, products, "Kettle", cat.ID)

	time.Sleep(10 * time.Millisecond)

	stock := 4
	updated, err := products.Save(ctx, &Product{
		ID:            original.ID,
		Name:          "Electric Kettle",
		CategoryID:    cat.ID,
		Price:         price("25.50"),
		StockQuantity: &stock,
	})
	require.NoError(t, err)

	assert.Equal(t, original.ID, updated.ID)
	assert.True(t, original.CreatedAt.Equal(updated.CreatedAt), "created_at changed: %v -> %v", original.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(original.UpdatedAt))
	assert.Equal(t, "Electric Kettle", updated.Name)
	assert.True(t, updated.Price.Decimal.Equal(price("25.5").Decimal))
	require.NotNil(t, updated.StockQuantity)
	assert.Equal(t, 4, *updated.StockQuantity)
}

func TestSaveOfLoadedRecordChangesNothingButUpdatedAt(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoriesRepository(db)
	products := NewProductsRepository(db)

	cat := seedCategory(t, categories, "Garden")
	stock := 3
	created, err := products.Save(ctx, &Product{
		Name:          "Hose",
		CategoryID:    cat.ID,
		Price:         price("0.01"),
		StockQuantity: &stock,
		Brand:         "Acme",
		Description:   "Twenty metres",
		ImageURL:      "https://example.com/hose.png",
	})
	require.NoError(t, err)

	loaded, err := products.FindByID(ctx, created.ID)
	require.NoError(t, err)
	resaved, err := products.Save(ctx, loaded)
	require.NoError(t, err)

	assert.Equal(t, created.ID, resaved.ID)
	assert.Equal(t, created.Name, resaved.Name)
	assert.Equal(t, created.CategoryID, resaved.CategoryID)
	assert.True(t, created.Price.Decimal.Equal(resaved.Price.Decimal))
	assert.Equal(t, *created.StockQuantity, *resaved.StockQuantity)
	assert.Equal(t, created.Brand, resaved.Brand)
	assert.Equal(t, created.Description, resaved.Description)
	assert.Equal(t, created.ImageURL, resaved.ImageURL)
	assert.True(t, created.CreatedAt.Equal(resaved.CreatedAt))
}

func TestUpdateOfMissingRowIsNotFound(t *testing.T) {
	repo := NewCategoriesRepository(newTestDB(t))

	_, err := repo.Save(context.Background(), &Category{ID: 404, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAndDeleteMissingRow(t *testing.T) {
	ctx := context.Background()
	repo := NewProductsRepository(newTestDB(t))

	_, err := repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, &Product{ID: 999})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, &Product{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductWithUnknownCategoryIsConstraintViolation(t *testing.T) {
	repo := NewProductsRepository(newTestDB(t))

	_, err := repo.Save(context.Background(), &Product{Name: "Orphan", CategoryID: 42, Price: price("1")})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestDeleteCategoryCascadesToProducts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoriesRepository(db)
	products := NewProductsRepository(db)

	doomed := seedCategory(t, categories, "Seasonal")
	kept := seedCategory(t, categories, "Permanent")
	seedProduct(t, products, "Snow Globe", doomed.ID)
	seedProduct(t, products, "Tinsel", doomed.ID)
	survivor := seedProduct(t, products, "Broom", kept.ID)

	count, err := products.CountByCategory(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	dependents, err := products.FindByCategory(ctx, doomed.ID)
	require.NoError(t, err)
	require.Len(t, dependents, 2)
	assert.Equal(t, "Snow Globe", dependents[0].Name)

	require.NoError(t, categories.Delete(ctx, doomed))

	_, err = categories.FindByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	remaining, err := products.FindAll(ctx, "name")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ID)
}

func TestFindAllSortsByColumn(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoriesRepository(newTestDB(t))

	seedCategory(t, repo, "Toys")
	seedCategory(t, repo, "Audio")
	seedCategory(t, repo, "Music")

	all, err := repo.FindAll(ctx, "name")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Audio", "Music", "Toys"}, []string{all[0].Name, all[1].Name, all[2].Name})
}
