package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidOrder    = errors.New("invalid order")
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product out of stock")
)

// maxNumberAttempts bounds how often order creation retries after another checkout
// claimed the same order number.
const maxNumberAttempts = 5

// Now is the clock used for order timestamps.
var Now = time.Now

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOrder, fmt.Sprintf(format, args...))
}

// PriceItems resolves each cart line against the catalog, enforces the stock gate and
// computes units and line totals. Name, catalog price and unitsPerBox come from the
// product record; the client only chooses quantities and an optional price override.
func PriceItems(ctx context.Context, db *gorm.DB, inputs []models.OrderItemInput) ([]models.OrderItem, error) {
	if len(inputs) == 0 {
		return nil, invalid("at least one item is required")
	}

	items := make([]models.OrderItem, 0, len(inputs))
	for idx, in := range inputs {
		id := in.ProductRef()
		if id == 0 {
			return nil, invalid("item %d must have a valid product id", idx+1)
		}

		var product models.Product
		if err := db.WithContext(ctx).First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
			}
			return nil, err
		}
		if !product.InStock() {
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
		}

		boxes, err := in.Boxes.Int()
		if err != nil {
			return nil, invalid("item %d boxes: %v", idx+1, err)
		}
		quantity, err := in.Quantity.Int()
		if err != nil {
			return nil, invalid("item %d quantity: %v", idx+1, err)
		}
		if boxes < 0 || quantity < 0 {
			return nil, invalid("item %d quantities cannot be negative", idx+1)
		}
		if boxes > models.MaxLineQuantity || quantity > models.MaxLineQuantity {
			return nil, invalid("item %d quantities cannot exceed %d", idx+1, models.MaxLineQuantity)
		}

		unitsPerBox := product.UnitsPerBox
		if unitsPerBox <= 0 {
			unitsPerBox = 1
		}
		if unitsPerBox > models.MaxLineQuantity {
			return nil, invalid("item %d (%s) has an invalid box size", idx+1, product.Name)
		}

		item := models.OrderItem{
			ProductID:   product.ID,
			Name:        product.Name,
			Price:       product.Price,
			Boxes:       boxes,
			UnitsPerBox: unitsPerBox,
			Quantity:    quantity,
		}
		if in.CustomPrice != nil {
			custom := in.CustomPrice.Float()
			if custom < 0 {
				return nil, invalid("item %d price cannot be negative", idx+1)
			}
			if custom > models.MaxPrice {
				return nil, invalid("item %d price cannot exceed %d", idx+1, models.MaxPrice)
			}
			if custom != product.Price {
				item.CustomPrice = &custom
			}
		}
		item.Compute()
		if item.Units == 0 {
			return nil, invalid("item %d (%s) has no units", idx+1, product.Name)
		}
		items = append(items, item)
	}
	return items, nil
}

// QuoteOrder prices a cart without storing anything.
func QuoteOrder(ctx context.Context, db *gorm.DB, inputs []models.OrderItemInput) (*models.OrderQuote, error) {
	items, err := PriceItems(ctx, db, inputs)
	if err != nil {
		return nil, err
	}
	total, units, boxes := models.OrderTotals(items)
	return &models.OrderQuote{Items: items, Total: total, TotalUnits: units, TotalBoxes: boxes}, nil
}

func validateHeader(req *models.CreateOrderRequest) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"agentName", &req.AgentName},
		{"magazinName", &req.MagazinName},
		{"cui", &req.CUI},
		{"address", &req.Address},
		{"responsiblePerson", &req.ResponsiblePerson},
		{"signature", &req.Signature},
	}
	var missing []string
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 || len(req.Items) == 0 {
		return invalid("all fields are required, including signature and at least one item (missing: %s)", strings.Join(missing, ", "))
	}
	return nil
}

// nextOrderNumber is swapped in tests to simulate a concurrent checkout.
var nextOrderNumber = NextOrderNumber

// NextOrderNumber reads the highest number ever issued, deleted orders included.
func NextOrderNumber(tx *gorm.DB) (uint, error) {
	var last uint
	row := tx.Unscoped().Model(&models.Order{}).Select("COALESCE(MAX(order_number), 0)").Row()
	if err := row.Scan(&last); err != nil {
		return 0, fmt.Errorf("failed to read last order number: %w", err)
	}
	return last + 1, nil
}

// CreateOrder validates the checkout payload, prices it and stores it under the next
// order number. A unique index on order_number turns concurrent checkouts that read the
// same maximum into a duplicate-key error, which is retried with a fresh number.
func CreateOrder(ctx context.Context, db *gorm.DB, req models.CreateOrderRequest) (*models.Order, error) {
	if err := validateHeader(&req); err != nil {
		return nil, err
	}

	signature, err := utils.NormalizeSignature(req.Signature)
	if err != nil {
		return nil, invalid("%v", err)
	}

	items, err := PriceItems(ctx, db, req.Items)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		order := &models.Order{
			AgentName:         req.AgentName,
			MagazinName:       req.MagazinName,
			CUI:               req.CUI,
			Address:           req.Address,
			ResponsiblePerson: req.ResponsiblePerson,
			Signature:         signature,
			Items:             append([]models.OrderItem(nil), items...),
			CreatedAt:         Now().UTC(),
		}
		order.Recompute()

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			number, err := nextOrderNumber(tx)
			if err != nil {
				return err
			}
			order.OrderNumber = number
			return tx.Create(order).Error
		})
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to save order: %w", err)
		}
		zap.S().Warnf("Order number collision on attempt %d, retrying", attempt)
	}
	return nil, fmt.Errorf("failed to allocate order number: %w", err)
}
