// Package catalog is the client for the remote product catalog API, which is
// the authoritative store — this service keeps only transient copies.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The catalog API speaks JSON numbers for prices, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog product as returned by the remote API.
// SKU is generated by the catalog on creation and is never submitted back.
type Product struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Images    []string        `json:"images"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Record is the payload for create and update calls. It deliberately carries
// only the user-editable fields.
type Record struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Images []string        `json:"images"`
}

// sortFields is the fixed set of fields the catalog accepts for ordering.
// Sort parameters arrive as open-ended strings from the query string and are
// checked against this set instead of being passed through.
var sortFields = map[string]bool{
	"sku":       true,
	"name":      true,
	"price":     true,
	"createdAt": true,
	"updatedAt": true,
}

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ListParams are the pagination and ordering inputs for List.
type ListParams struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

// Normalize clamps pagination and falls back to defaults for unknown sort
// fields or orders.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > maxLimit {
		p.Limit = defaultLimit
	}
	if !sortFields[p.Sort] {
		p.Sort = "sku"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "asc"
	}
	return p
}

// ListResult is one page of products.
type ListResult struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
}
