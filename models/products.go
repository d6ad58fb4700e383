package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. It belongs to exactly one category and is
// removed together with it.
type Product struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	Name          string              `gorm:"size:100;not null" json:"name" form:"name" validate:"required,min=3,max=100"`
	CategoryID    uint                `gorm:"not null;index" json:"categoryId" form:"categoryId" validate:"required"`
	Category      *Category           `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty" validate:"-"`
	Price         decimal.NullDecimal `gorm:"type:decimal(10,2);not null" json:"price" form:"price" validate:"decimal_required,gte=0.01"`
	StockQuantity *int                `json:"stockQuantity" form:"stockQuantity" validate:"omitempty,gte=0"`
	Brand         string              `gorm:"size:50" json:"brand" form:"brand" validate:"max=50"`
	Description   string              `gorm:"size:500" json:"description" form:"description" validate:"max=500"`
	ImageURL      string              `gorm:"size:255" json:"imageUrl" form:"imageUrl" validate:"max=255"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func (p *Product) TableName() string {
	return "product"
}
