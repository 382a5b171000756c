package models

import "time"

// Categories is the fixed set a product category must belong to.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home & Garden",
	"Sports",
	"Toys",
	"Beauty",
	"Food",
	"Other",
}

// IsValidCategory reports whether c is one of Categories.
func IsValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a catalog entry. Products are never hard-deleted;
// deleting one flips IsActive to false.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string         `json:"name" gorm:"type:varchar(100);not null"`
	Description string         `json:"description" gorm:"type:varchar(1000);not null"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Price       float64        `json:"price" gorm:"not null"`
	Category    string         `json:"category" gorm:"type:varchar(50);not null;index"`
	Stock       int            `json:"stock" gorm:"not null"`
	IsActive    bool           `json:"isActive" gorm:"not null;default:true;index"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
