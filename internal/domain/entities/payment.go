package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// PaymentKind separates the deposit taken at intake from the settlement at pickup.
type PaymentKind string

const (
	PaymentKindPrepayment PaymentKind = "prepayment"
	PaymentKindSettlement PaymentKind = "settlement"
)

// Payment is a provider-processed payment against an order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (order_id-index): order_id
//
// ProviderPayloadRaw keeps the Mercado Pago response body for audit.
type Payment struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	Kind    PaymentKind     `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
	Date    time.Time       `json:"date"`
	Status  PaymentStatus   `json:"status"`

	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]any  `json:"provider_payload,omitempty"`
}
