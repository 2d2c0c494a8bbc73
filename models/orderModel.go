package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	OrderNumber       uint           `gorm:"uniqueIndex;not null" json:"orderNumber"`
	AgentName         string         `gorm:"size:255;not null;index" json:"agentName"`
	MagazinName       string         `gorm:"size:255;not null;index" json:"magazinName"`
	CUI               string         `gorm:"column:cui;size:64;not null" json:"cui"`
	Address           string         `gorm:"size:512;not null" json:"address"`
	ResponsiblePerson string         `gorm:"size:255;not null" json:"responsiblePerson"`
	Signature         string         `gorm:"size:1048576;not null" json:"signature"`
	Total             float64        `gorm:"not null" json:"total"`
	TotalUnits        int            `gorm:"not null;default:0" json:"totalUnits"`
	TotalBoxes        int            `gorm:"not null;default:0" json:"totalBoxes"`
	Items             []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt         time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time      `json:"-"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

type OrderItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	OrderID     uint     `gorm:"index;not null" json:"-"`
	ProductID   uint     `gorm:"index" json:"productId"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Price       float64  `gorm:"not null" json:"price"`
	CustomPrice *float64 `json:"customPrice,omitempty"`
	Boxes       int      `gorm:"not null;default:0" json:"boxes"`
	UnitsPerBox int      `gorm:"not null;default:1" json:"unitsPerBox"`
	Quantity    int      `gorm:"not null;default:0" json:"quantity"`
	Units       int      `gorm:"not null;default:0" json:"units"`
	LineTotal   float64  `gorm:"not null;default:0" json:"lineTotal"`
}

// OrderItemInput is one cart line as posted at checkout. The product id may arrive
// as "productId" or as the legacy "_id" key.
type OrderItemInput struct {
	ProductID   *FlexFloat `json:"productId"`
	LegacyID    *FlexFloat `json:"_id"`
	Boxes       *FlexFloat `json:"boxes"`
	Quantity    *FlexFloat `json:"quantity"`
	CustomPrice *FlexFloat `json:"customPrice"`
}

func (in OrderItemInput) ProductRef() uint {
	if in.ProductID != nil && in.ProductID.Float() > 0 {
		return uint(in.ProductID.Float())
	}
	if in.LegacyID != nil && in.LegacyID.Float() > 0 {
		return uint(in.LegacyID.Float())
	}
	return 0
}

type CreateOrderRequest struct {
	Items             []OrderItemInput `json:"items"`
	AgentName         string           `json:"agentName"`
	MagazinName       string           `json:"magazinName"`
	CUI               string           `json:"cui"`
	Address           string           `json:"address"`
	ResponsiblePerson string           `json:"responsiblePerson"`
	Signature         string           `json:"signature"`
}

// OrderQuote is the priced cart returned by the quote endpoint.
type OrderQuote struct {
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
	TotalUnits int         `json:"totalUnits"`
	TotalBoxes int         `json:"totalBoxes"`
}
