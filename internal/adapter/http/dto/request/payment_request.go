package request

import "encoding/json"

// PaymentCreateRequest is the payload for the "create and process payment" route.
//
// `provider_payload` is forwarded to Mercado Pago as-is, except for the amount,
// which always comes from the order.
type PaymentCreateRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
