package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/domain"
)

func TestValidateShipping_Email(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"empty", "", "Email is required"},
		{"whitespace only", "   ", "Email is required"},
		{"missing domain", "ada@", "Invalid email address"},
		{"missing tld", "ada@example", "Invalid email address"},
		{"valid", "ada@example.com", ""},
		{"valid uppercase", "ADA@EXAMPLE.COM", ""},
		{"valid plus tag", "ada+shop@example.co.uk", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validShipping()
			d.Email = tc.email
			errs := ValidateShipping(d)
			if tc.want == "" {
				assert.NotContains(t, errs, "email")
			} else {
				assert.Equal(t, tc.want, errs["email"])
			}
		})
	}
}

func TestValidateShipping_AllFieldsMissing(t *testing.T) {
	errs := ValidateShipping(domain.ShippingDetails{})
	want := map[string]string{
		"firstName": "First name is required",
		"lastName":  "Last name is required",
		"email":     "Email is required",
		"phone":     "Phone number is required",
		"address":   "Address is required",
		"city":      "City is required",
		"country":   "Country is required",
		"state":     "State/Province is required",
		"zipCode":   "ZIP/Postal code is required",
	}
	assert.Equal(t, want, errs)
}

func TestValidateShipping_OptionalFields(t *testing.T) {
	d := validShipping()
	d.Apartment = ""
	d.SaveInfo = false
	assert.Empty(t, ValidateShipping(d))
}

func TestValidatePayment(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.PaymentDetails)
		field  string
		want   string
	}{
		{"valid", func(d *domain.PaymentDetails) {}, "", ""},
		{"spaced card accepted", func(d *domain.PaymentDetails) { d.CardNumber = "4242 4242 4242 4242" }, "", ""},
		{"card empty", func(d *domain.PaymentDetails) { d.CardNumber = "" }, "cardNumber", "Card number is required"},
		{"card short", func(d *domain.PaymentDetails) { d.CardNumber = "4242" }, "cardNumber", "Invalid card number"},
		{"card letters", func(d *domain.PaymentDetails) { d.CardNumber = "4242 4242 4242 424x" }, "cardNumber", "Invalid card number"},
		{"name empty", func(d *domain.PaymentDetails) { d.CardName = " " }, "cardName", "Name on card is required"},
		{"expiry empty", func(d *domain.PaymentDetails) { d.ExpiryDate = "" }, "expiryDate", "Expiry date is required"},
		{"expiry month 13", func(d *domain.PaymentDetails) { d.ExpiryDate = "13/25" }, "expiryDate", "Invalid expiry date (MM/YY)"},
		{"expiry month 00", func(d *domain.PaymentDetails) { d.ExpiryDate = "00/25" }, "expiryDate", "Invalid expiry date (MM/YY)"},
		{"expiry no slash", func(d *domain.PaymentDetails) { d.ExpiryDate = "0925" }, "expiryDate", "Invalid expiry date (MM/YY)"},
		{"cvv empty", func(d *domain.PaymentDetails) { d.CVV = "" }, "cvv", "CVV is required"},
		{"cvv short", func(d *domain.PaymentDetails) { d.CVV = "12" }, "cvv", "Invalid CVV"},
		{"cvv four digits ok", func(d *domain.PaymentDetails) { d.CVV = "1234" }, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validPayment()
			tc.mutate(&d)
			errs := ValidatePayment(d)
			if tc.field == "" {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, tc.want, errs[tc.field])
			}
		})
	}
}

func TestValidateReview(t *testing.T) {
	assert.Contains(t, ValidateReview(domain.ReviewDetails{}), "terms")
	assert.Empty(t, ValidateReview(domain.ReviewDetails{AcceptTerms: true}))
	assert.Empty(t, ValidateReview(domain.ReviewDetails{AcceptTerms: true, OrderNotes: "leave at door"}))
}
