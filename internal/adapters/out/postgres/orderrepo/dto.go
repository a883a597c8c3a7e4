// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders are stored as one flat row in the "orders" table with the customer kept as a JSONB
// document and statuses stored by name.
package orderrepo

import (
	"time"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID                       `gorm:"type:uuid;primaryKey"`
	Customer      datatypes.JSONType[CustomerDTO] `gorm:"type:jsonb;not null"`
	Symbology     string                          `gorm:"type:varchar(32);not null"`
	Quantity      int                             `gorm:"not null"`
	BaseAmount    decimal.Decimal                 `gorm:"type:numeric(16,4);not null"`
	TaxAmount     decimal.Decimal                 `gorm:"type:numeric(16,4);not null"`
	FinalAmount   decimal.Decimal                 `gorm:"type:numeric(16,4);not null"`
	OrderStatus   string                          `gorm:"type:varchar(16);not null;index:idx_orders_status_updated,priority:1"`
	PaymentStatus string                          `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time                       `gorm:"autoCreateTime:false;not null;index"`
	UpdatedAt     time.Time                       `gorm:"autoUpdateTime:false;not null;index:idx_orders_status_updated,priority:2"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO is the JSON document stored in orders.customer.
type CustomerDTO struct {
	Name         string `json:"name"`
	Surname      string `json:"surname,omitempty"`
	Organization string `json:"organization"`
	Country      string `json:"country"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	TaxNumber    string `json:"tax_number,omitempty"`
	Region       string `json:"region,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	c := o.Customer().Details()

	return OrderDTO{
		ID: o.ID().Raw(),
		Customer: datatypes.NewJSONType(CustomerDTO{
			Name:         c.Name,
			Surname:      c.Surname,
			Organization: c.Organization,
			Country:      c.Country,
			Address:      c.Address,
			Phone:        c.Phone,
			Email:        c.Email,
			TaxNumber:    c.TaxNumber,
			Region:       c.Region,
		}),
		Symbology:     o.Symbology().Key(),
		Quantity:      o.Quantity(),
		BaseAmount:    o.BaseAmount(),
		TaxAmount:     o.TaxAmount(),
		FinalAmount:   o.FinalAmount(),
		OrderStatus:   o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}

	c := dto.Customer.Data()
	customer, err := order.NewCustomer(order.CustomerDetails{
		Name:         c.Name,
		Surname:      c.Surname,
		Organization: c.Organization,
		Country:      c.Country,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		TaxNumber:    c.TaxNumber,
		Region:       c.Region,
	})
	if err != nil {
		return nil, err
	}

	symbology, err := catalog.ParseSymbology(dto.Symbology)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.OrderStatus)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            id,
		Customer:      customer,
		Symbology:     symbology,
		Quantity:      dto.Quantity,
		BaseAmount:    dto.BaseAmount,
		TaxAmount:     dto.TaxAmount,
		FinalAmount:   dto.FinalAmount,
		Status:        status,
		PaymentStatus: paymentStatus,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}
