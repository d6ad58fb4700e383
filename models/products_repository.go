package models

import (
	"context"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	*GormRepository[Product, *Product]
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		GormRepository: NewGormRepository[Product](db, "Category"),
	}
}

// FindByCategory lists the products referencing a category, by name.
func (r *ProductsRepository) FindByCategory(ctx context.Context, categoryID uint) ([]Product, error) {
	var products []Product
	if err := r.query(ctx).
		Where("category_id = ?", categoryID).
		Order("name").
		Find(&products).Error; err != nil {
		return nil, translateError(err)
	}
	return products, nil
}

func (r *ProductsRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("category_id = ?", categoryID).
		Count(&total).Error; err != nil {
		return 0, translateError(err)
	}
	return total, nil
}
