package models

import "time"

// Category groups products. Products reference a category; the reverse
// direction is answered by ProductsRepository.FindByCategory.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name" form:"name" validate:"required,min=3,max=50"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) TableName() string {
	return "category"
}
