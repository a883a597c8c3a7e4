package archive

import (
	"codeorders/internal/core/domain/model/invoice"
	"codeorders/internal/core/domain/model/tax"
)

// InvoiceDTO is the invoice.json document.
type InvoiceDTO struct {
	InvoiceNumber string        `json:"invoice_number"`
	OrderID       string        `json:"order_id"`
	Date          string        `json:"date"`
	Customer      CustomerDTO   `json:"customer"`
	Items         []LineItemDTO `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           TaxDetailsDTO `json:"tax_details"`
	Total         float64       `json:"total"`
	Currency      string        `json:"currency"`
}

type CustomerDTO struct {
	Name         string `json:"name"`
	Surname      string `json:"surname,omitempty"`
	Organization string `json:"organization"`
	Country      string `json:"country"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	TaxNumber    string `json:"gst_number,omitempty"`
	Region       string `json:"state,omitempty"`
}

type LineItemDTO struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type TaxDetailsDTO struct {
	Treatment string   `json:"treatment"`
	CGST      *float64 `json:"cgst,omitempty"`
	SGST      *float64 `json:"sgst,omitempty"`
	IGST      *float64 `json:"igst,omitempty"`
	TotalTax  float64  `json:"total_tax"`
}

func newInvoiceDTO(inv invoice.Invoice) InvoiceDTO {
	c := inv.Customer()
	b := inv.Tax()

	items := make([]LineItemDTO, 0, len(inv.Items()))
	for _, item := range inv.Items() {
		items = append(items, LineItemDTO{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			Total:       item.Total.InexactFloat64(),
		})
	}

	taxDetails := TaxDetailsDTO{
		Treatment: b.Treatment.String(),
		TotalTax:  b.Tax.InexactFloat64(),
	}
	if b.Treatment == tax.Split {
		cgst, sgst := b.CGST.InexactFloat64(), b.SGST.InexactFloat64()
		taxDetails.CGST, taxDetails.SGST = &cgst, &sgst
	} else {
		igst := b.IGST.InexactFloat64()
		taxDetails.IGST = &igst
	}

	return InvoiceDTO{
		InvoiceNumber: inv.Number(),
		OrderID:       inv.OrderID().String(),
		Date:          inv.FormattedDate(),
		Customer: CustomerDTO{
			Name:         c.Name,
			Surname:      c.Surname,
			Organization: c.Organization,
			Country:      c.Country,
			Address:      c.Address,
			Phone:        c.Phone,
			Email:        c.Email,
			TaxNumber:    c.TaxNumber,
			Region:       c.Region,
		},
		Items:    items,
		Subtotal: b.Base.InexactFloat64(),
		Tax:      taxDetails,
		Total:    inv.FinalAmount().InexactFloat64(),
		Currency: inv.Currency(),
	}
}
