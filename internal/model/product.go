package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item that orders can reference.
type Product struct {
	ID        uint            `json:"product_id" gorm:"primaryKey;column:product_id"`
	Name      string          `json:"name" gorm:"size:255;not null;index"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL  *string         `json:"image_url,omitempty" gorm:"size:255"`
	Type      string          `json:"type" gorm:"size:100;not null;index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductPatch carries the fields of a partial product update.
type ProductPatch struct {
	Name     *string
	Price    *decimal.Decimal
	ImageURL *string
	Type     *string
}

// Apply merges the supplied fields into p. An empty image URL clears it.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		if *patch.ImageURL == "" {
			p.ImageURL = nil
		} else {
			url := *patch.ImageURL
			p.ImageURL = &url
		}
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
}
