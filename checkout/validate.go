package checkout

import (
	"regexp"
	"strings"

	"storefront/domain"
)

var (
	emailPattern  = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	cardPattern   = regexp.MustCompile(`^\d{16}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// ValidateShipping checks the shipping step. The returned map holds
// one message per failing field, keyed by the field's JSON name, and
// is empty when the details are valid.
func ValidateShipping(d domain.ShippingDetails) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(d.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(d.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(d.Email) {
		errs["email"] = "Invalid email address"
	}
	if strings.TrimSpace(d.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}
	if strings.TrimSpace(d.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(d.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(d.Country) == "" {
		errs["country"] = "Country is required"
	}
	if strings.TrimSpace(d.State) == "" {
		errs["state"] = "State/Province is required"
	}
	if strings.TrimSpace(d.ZipCode) == "" {
		errs["zipCode"] = "ZIP/Postal code is required"
	}
	return errs
}

// ValidatePayment checks the payment step. Card numbers are validated
// with separator spaces stripped, so both grouped and raw input pass.
func ValidatePayment(d domain.PaymentDetails) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.CardNumber) == "" {
		errs["cardNumber"] = "Card number is required"
	} else if !cardPattern.MatchString(strings.ReplaceAll(d.CardNumber, " ", "")) {
		errs["cardNumber"] = "Invalid card number"
	}
	if strings.TrimSpace(d.CardName) == "" {
		errs["cardName"] = "Name on card is required"
	}
	if strings.TrimSpace(d.ExpiryDate) == "" {
		errs["expiryDate"] = "Expiry date is required"
	} else if !expiryPattern.MatchString(d.ExpiryDate) {
		errs["expiryDate"] = "Invalid expiry date (MM/YY)"
	}
	if strings.TrimSpace(d.CVV) == "" {
		errs["cvv"] = "CVV is required"
	} else if !cvvPattern.MatchString(d.CVV) {
		errs["cvv"] = "Invalid CVV"
	}
	return errs
}

// ValidateReview checks the review step. Only the terms checkbox is
// required; order notes are optional.
func ValidateReview(d domain.ReviewDetails) map[string]string {
	errs := map[string]string{}
	if !d.AcceptTerms {
		errs["terms"] = "You must accept the terms and conditions"
	}
	return errs
}
