package entities

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderActive OrderStatus = "active"
	OrderClosed OrderStatus = "closed"
)

type DeliveryType string

const (
	DeliveryCourier DeliveryType = "delivery"
	DeliveryPickup  DeliveryType = "pickup"
)

// Order заявка клиента на обмен валюты
type Order struct {
	ID           string
	RequesterID  string
	Amount       decimal.Decimal
	Currency     string
	Location     string
	DeliveryType DeliveryType
	Comment      string
	Status       OrderStatus
	CreatedAt    time.Time
}

func (o Order) IsActive() bool {
	return o.Status == OrderActive
}

// NewOrder входные данные для создания заявки
type NewOrder struct {
	RequesterID  string          `validate:"required"`
	Amount       decimal.Decimal `validate:"gt=0,decimal=20_8"`
	Currency     string          `validate:"required,alpha,min=3,max=5"`
	Location     string          `validate:"required,max=255"`
	DeliveryType DeliveryType    `validate:"required,oneof=delivery pickup"`
	Comment      string          `validate:"max=1000"`
}

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(o); err != nil {
		return ErrInvalidOrder
	}
	return nil
}

func init() {
	gob.Register(Order{})
}
