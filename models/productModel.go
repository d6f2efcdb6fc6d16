package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const PlaceholderImage = "/static/images/placeholder.jpg"

type Product struct {
	gorm.Model
	Name         string                      `json:"name" binding:"required"`
	Description  string                      `json:"description"`
	Price        float64                     `json:"price" binding:"required,gte=0"`
	Style        string                      `json:"style"`
	Color        string                      `json:"color"`
	Material     string                      `json:"material"`
	MainImage    string                      `json:"main_image"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	ColorOptions datatypes.JSONSlice[string] `json:"color_options"`
	StockStatus  string                      `json:"stock_status" gorm:"default:available"`
	IsFeatured   bool                        `json:"is_featured"`
	Reviews      []Review                    `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// AfterFind keeps the storefront from rendering products without photos.
func (p *Product) AfterFind(tx *gorm.DB) error {
	if p.MainImage == "" {
		p.MainImage = PlaceholderImage
	}
	return nil
}

type Review struct {
	gorm.Model
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
	Approved  bool   `json:"approved"`
}
