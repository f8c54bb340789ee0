package models

import "github.com/shopspring/decimal"

type Category struct {
	CategoryID   int64  `gorm:"primaryKey;autoIncrement" json:"category_id"`
	CategoryName string `gorm:"type:varchar(255);not null;uniqueIndex" json:"category_name"`
}

type Product struct {
	ProductID   int64           `gorm:"primaryKey;autoIncrement" json:"product_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	CategoryID  int64           `gorm:"index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID;references:CategoryID" json:"-"`
}

type ProductImage struct {
	ImageID   int64  `gorm:"primaryKey;autoIncrement" json:"image_id"`
	ProductID int64  `gorm:"not null;index" json:"product_id"`
	ImageURL  string `gorm:"type:text;not null" json:"image_url"`
}

// CartItem is one line of a user's cart. Product carries the live catalog
// price when loaded through the cart repository.
type CartItem struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64   `gorm:"not null;index" json:"user_id"`
	ProductID int64   `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product"`
}
