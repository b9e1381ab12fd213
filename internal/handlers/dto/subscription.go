package dto

type CheckoutRequest struct {
	PriceID string `json:"priceId" binding:"required"`
}

type CheckoutWebhookEvent struct {
	SessionID string `json:"sessionId" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=completed canceled"`
}
