package queries

import (
	"codeorders/internal/core/domain/model/catalog"

	"github.com/shopspring/decimal"
)

// CatalogItem is one orderable symbology.
type CatalogItem struct {
	Symbology catalog.Symbology
	Name      string
	UnitPrice decimal.Decimal
}

// GetCatalogResponse lists every orderable symbology in catalog order.
type GetCatalogResponse struct {
	Items    []CatalogItem
	Currency string
}

// GetCatalogQueryHandler returns the static catalog.
type GetCatalogQueryHandler struct{}

func NewGetCatalogQueryHandler() GetCatalogQueryHandler {
	return GetCatalogQueryHandler{}
}

func (h GetCatalogQueryHandler) Handle() GetCatalogResponse {
	all := catalog.All()
	items := make([]CatalogItem, 0, len(all))
	for _, s := range all {
		items = append(items, CatalogItem{Symbology: s, Name: s.DisplayName(), UnitPrice: s.UnitPrice()})
	}
	return GetCatalogResponse{Items: items, Currency: catalog.Currency}
}
