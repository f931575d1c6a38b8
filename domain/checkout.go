package domain

import "github.com/google/uuid"

// ShippingDetails is the contact and shipping half of the checkout form.
// State is only meaningful relative to Country; changing Country clears it.
type ShippingDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	Country   string `json:"country"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	SaveInfo  bool   `json:"saveInfo"`
}

// PaymentDetails is the card entry half of the checkout form.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	PromoCode  string `json:"promoCode"`
}

// ReviewDetails holds the final-step fields: free-text notes and the
// terms-acceptance flag that gates order placement.
type ReviewDetails struct {
	OrderNotes  string `json:"orderNotes"`
	AcceptTerms bool   `json:"acceptTerms"`
}

// Order is the ephemeral record produced once per completed checkout.
// Number is the customer-facing order number; ID is the unique internal
// identifier. Orders are never written to durable storage.
type Order struct {
	Number string
	ID     uuid.UUID
	Total  float64
}
