package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Stock status values as stored and exposed by the API.
const (
	StockIn  = "in stoc"
	StockOut = "out of stoc"
)

type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null;index" json:"name"`
	Description string         `gorm:"size:2048" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    string         `gorm:"size:128;not null;index" json:"category"`
	UnitsPerBox int            `gorm:"not null;default:1" json:"unitsPerBox"`
	Image       string         `gorm:"size:1024" json:"image"`
	Stoc        string         `gorm:"size:16;not null;default:'in stoc'" json:"stoc"`
	Barcode     *string        `gorm:"size:64" json:"barcode"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p Product) InStock() bool {
	return p.Stoc != StockOut
}

// ProductInput is the create/update payload. Nil fields are left untouched on update.
type ProductInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *FlexFloat `json:"price"`
	Category    *string    `json:"category"`
	UnitsPerBox *FlexFloat `json:"unitsPerBox"`
	Image       *string    `json:"image"`
	Stoc        *string    `json:"stoc"`
	Barcode     *string    `json:"barcode"`
}

type StockInput struct {
	Stoc string `json:"stoc" binding:"required"`
}

// NormalizeStock maps free-text stock input onto StockIn or StockOut.
// Unrecognised text falls back to StockIn.
func NormalizeStock(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(v, "out"):
		return StockOut
	case strings.Contains(v, "in"):
		return StockIn
	default:
		return StockIn
	}
}

// NormalizeBarcode trims the code and turns blanks into nil.
func NormalizeBarcode(code string) *string {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	return &code
}
