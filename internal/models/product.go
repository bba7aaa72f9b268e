package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
	StatusDraft    ProductStatus = "draft"
)

// Valid reports whether s is one of the known product statuses.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDraft:
		return true
	}
	return false
}

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Product represents a piece of furniture in the catalog.
type Product struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Slug             string              `json:"slug"`
	SKU              string              `json:"sku"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"short_description"`
	Price            decimal.Decimal     `json:"price"`
	SalePrice        decimal.NullDecimal `json:"sale_price"`
	StockQuantity    int                 `json:"stock_quantity"`
	ManageStock      bool                `json:"manage_stock"`
	Status           ProductStatus       `json:"status"`
	Featured         bool                `json:"featured"`
	CategoryID       *string             `json:"category_id,omitempty"`
	SubcategoryID    *string             `json:"subcategory_id,omitempty"`
	Images           StringList          `json:"images"`
	Gallery          StringList          `json:"gallery"`
	MetaTitle        string              `json:"meta_title,omitempty"`
	MetaDescription  string              `json:"meta_description,omitempty"`
	Weight           *float64            `json:"weight,omitempty"`
	Dimensions       *Dimensions         `json:"dimensions,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// EffectivePrice is the sale price when it undercuts the list price, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.Valid && p.SalePrice.Decimal.LessThan(p.Price) {
		return p.SalePrice.Decimal
	}
	return p.Price
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination derives the page count from total and limit.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// ProductPage is the listing payload shared by the API and its clients.
type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// PriceRange holds whole-number bounds of the effective prices in the catalog.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
