// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category represents a product category
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"uniqueIndex;not null;size:64" json:"slug"`
	Name      string    `gorm:"not null;size:120" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Product represents a catalog product
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null;size:200" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Brand         string          `gorm:"size:100;index" json:"brand"`
	Size          string          `gorm:"size:50" json:"size"` // "52", "54", "S", "M"
	Color         string          `gorm:"size:50" json:"color"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageFilename string          `gorm:"size:255" json:"image_filename"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CategoryID    uint            `gorm:"not null;index" json:"category_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }

// HasImage reports whether an uploaded image is attached
func (p *Product) HasImage() bool {
	return p.ImageFilename != ""
}

// IsPurchasable reports whether the product may be listed and added to a cart
func (p *Product) IsPurchasable() bool {
	return p.IsActive
}
