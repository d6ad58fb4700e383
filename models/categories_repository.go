package models

import (
	"context"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	*GormRepository[Category, *Category]
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		GormRepository: NewGormRepository[Category](db),
	}
}

// FindByName returns ErrNotFound when no category carries the name.
func (r *CategoriesRepository) FindByName(ctx context.Context, name string) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}
