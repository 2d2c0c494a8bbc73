package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/agent-orders-api/models"
	"gorm.io/gorm"
)

var ErrInvalidProduct = errors.New("invalid product")

// likeEscaper escapes LIKE wildcards with '!', which no supported dialect treats specially
// inside string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern turns user search text into a literal substring LIKE pattern.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type ProductFilter struct {
	Search   string
	Category string
	Stoc     string
}

func ListProducts(ctx context.Context, db *gorm.DB, filter ProductFilter) ([]models.Product, error) {
	query := db.WithContext(ctx).Model(&models.Product{})
	if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '!'", containsPattern(s))
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		query = query.Where("category = ?", c)
	}
	if strings.TrimSpace(filter.Stoc) != "" {
		query = query.Where("stoc = ?", models.NormalizeStock(filter.Stoc))
	}

	var products []models.Product
	err := query.Order("created_at DESC").Order("id DESC").Find(&products).Error
	return products, err
}

// ApplyProductInput copies the provided fields of in onto p. With create set, name,
// price, category and unitsPerBox must all be present.
func ApplyProductInput(p *models.Product, in models.ProductInput, create bool) error {
	if create {
		var missing []string
		if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
			missing = append(missing, "name")
		}
		if in.Price == nil {
			missing = append(missing, "price")
		}
		if in.Category == nil || strings.TrimSpace(*in.Category) == "" {
			missing = append(missing, "category")
		}
		if in.UnitsPerBox == nil {
			missing = append(missing, "unitsPerBox")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing %s", ErrInvalidProduct, strings.Join(missing, ", "))
		}
		p.Stoc = models.StockIn
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: name cannot be empty", ErrInvalidProduct)
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.Float() < 0 {
			return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
		}
		if in.Price.Float() > models.MaxPrice {
			return fmt.Errorf("%w: price cannot exceed %d", ErrInvalidProduct, models.MaxPrice)
		}
		p.Price = in.Price.Float()
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return fmt.Errorf("%w: category cannot be empty", ErrInvalidProduct)
		}
		p.Category = category
	}
	if in.UnitsPerBox != nil {
		units, err := in.UnitsPerBox.Int()
		if err != nil || units < 1 || units > models.MaxLineQuantity {
			return fmt.Errorf("%w: unitsPerBox must be a whole number between 1 and %d", ErrInvalidProduct, models.MaxLineQuantity)
		}
		p.UnitsPerBox = units
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}
	if in.Stoc != nil {
		p.Stoc = models.NormalizeStock(*in.Stoc)
	}
	if in.Barcode != nil {
		p.Barcode = models.NormalizeBarcode(*in.Barcode)
	}
	return nil
}
