package models

import "time"

// PaymentDetails is the user's chosen payment instrument for a checkout.
type PaymentDetails struct {
	Currency      string `json:"currency"`
	PaymentMethod string `json:"paymentMethod"` // Stripe payment-method ID
}

// PaymentRequest is passed to the payment handler at checkout time.
type PaymentRequest struct {
	UserID   string  `json:"userId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Method   string  `json:"method"`
}

// Invoice is the record of a processed payment.
type Invoice struct {
	InvoiceID string    `bson:"invoice_id" json:"invoiceId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
