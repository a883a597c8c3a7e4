package http

import (
	"time"

	"codeorders/internal/core/application/usecases/queries"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/domain/model/tax"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CatalogEntry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CatalogResponse struct {
	Symbologies map[string]CatalogEntry `json:"symbologies"`
	Currency    string                  `json:"currency"`
}

type PriceRequest struct {
	Symbology string `json:"symbology"`
	Quantity  int    `json:"quantity"`
	Region    string `json:"region"`
}

type PriceResponse struct {
	Symbology string     `json:"symbology"`
	Quantity  int        `json:"quantity"`
	UnitPrice float64    `json:"unit_price"`
	Pricing   TaxDetails `json:"pricing"`
	Currency  string     `json:"currency"`
}

type TaxDetails struct {
	Treatment   string   `json:"treatment"`
	BaseAmount  float64  `json:"base_amount"`
	TaxAmount   float64  `json:"tax_amount"`
	CGST        *float64 `json:"cgst,omitempty"`
	SGST        *float64 `json:"sgst,omitempty"`
	IGST        *float64 `json:"igst,omitempty"`
	TotalAmount float64  `json:"total_amount"`
}

type CustomerDetails struct {
	Name         string `json:"name"`
	Surname      string `json:"surname,omitempty"`
	Organization string `json:"organization"`
	Country      string `json:"country"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	GSTNumber    string `json:"gst_number,omitempty"`
	State        string `json:"state,omitempty"`
}

type CreateOrderRequest struct {
	CustomerDetails CustomerDetails `json:"customer_details"`
	Symbology       string          `json:"symbology"`
	Quantity        int             `json:"quantity"`
}

type OrderDTO struct {
	ID              string          `json:"id"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	Symbology       string          `json:"symbology"`
	Quantity        int             `json:"quantity"`
	BaseAmount      float64         `json:"base_amount"`
	TaxAmount       float64         `json:"tax_amount"`
	FinalAmount     float64         `json:"final_amount"`
	OrderStatus     string          `json:"order_status"`
	PaymentStatus   string          `json:"payment_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CreateOrderResponse struct {
	OrderID    string     `json:"order_id"`
	Order      OrderDTO   `json:"order"`
	TaxDetails TaxDetails `json:"tax_details"`
	Currency   string     `json:"currency"`
}

type ListOrdersResponse struct {
	Orders []OrderDTO `json:"orders"`
}

func (c CustomerDetails) toDomain() order.CustomerDetails {
	return order.CustomerDetails{
		Name:         c.Name,
		Surname:      c.Surname,
		Organization: c.Organization,
		Country:      c.Country,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		TaxNumber:    c.GSTNumber,
		Region:       c.State,
	}
}

func customerFromDomain(d order.CustomerDetails) CustomerDetails {
	return CustomerDetails{
		Name:         d.Name,
		Surname:      d.Surname,
		Organization: d.Organization,
		Country:      d.Country,
		Address:      d.Address,
		Phone:        d.Phone,
		Email:        d.Email,
		GSTNumber:    d.TaxNumber,
		State:        d.Region,
	}
}

func taxDetailsFromDomain(b tax.Breakdown) TaxDetails {
	details := TaxDetails{
		Treatment:   b.Treatment.String(),
		BaseAmount:  b.Base.InexactFloat64(),
		TaxAmount:   b.Tax.InexactFloat64(),
		TotalAmount: b.Total.InexactFloat64(),
	}

	if b.Treatment == tax.Split {
		cgst, sgst := b.CGST.InexactFloat64(), b.SGST.InexactFloat64()
		details.CGST, details.SGST = &cgst, &sgst
	} else {
		igst := b.IGST.InexactFloat64()
		details.IGST = &igst
	}
	return details
}

func orderFromResponse(o queries.OrderResponse) OrderDTO {
	return OrderDTO{
		ID:              o.ID.String(),
		CustomerDetails: customerFromDomain(o.Customer),
		Symbology:       o.Symbology.Key(),
		Quantity:        o.Quantity,
		BaseAmount:      o.BaseAmount.InexactFloat64(),
		TaxAmount:       o.TaxAmount.InexactFloat64(),
		FinalAmount:     o.FinalAmount.InexactFloat64(),
		OrderStatus:     o.Status.String(),
		PaymentStatus:   o.PaymentStatus.String(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
