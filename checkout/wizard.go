package checkout

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/cart"
	"storefront/domain"
	"storefront/storage"
	"storefront/util"
)

// Step identifies a position in the checkout flow.
type Step string

const (
	StepShipping  Step = "shipping"
	StepPayment   Step = "payment"
	StepReview    Step = "review"
	StepCompleted Step = "completed"
)

// SessionKey is where the shipping draft is persisted across the
// external payment round trip.
const SessionKey = "checkoutFormData"

// TaxRate is applied to the cart subtotal when computing the charge.
const TaxRate = 0.10

// DefaultProcessingDelay simulates the payment processor round trip
// during order finalization.
const DefaultProcessingDelay = 1500 * time.Millisecond

var (
	ErrEmptyCart          = domain.NewCheckoutStateError("cart is empty")
	ErrSubmissionInFlight = domain.NewCheckoutStateError("order submission already in flight")
	ErrWrongStep          = domain.NewCheckoutStateError("operation not valid for current step")
)

// orderNumbers is shared so numbers stay unique across wizards in the
// same process.
var orderNumbers = util.NewOrderNumbers()

// Handoff carries what the external payment page needs: the charge
// total and its encoding as the amount query parameter.
type Handoff struct {
	Total  float64
	Amount string
}

// Wizard drives one checkout session through shipping, payment and
// review to a completed order. It owns the per-field error state the
// form surfaces and the shipping draft persisted for the payment
// handoff. All methods are safe for concurrent use.
type Wizard struct {
	mu       sync.Mutex
	step     Step
	shipping domain.ShippingDetails
	payment  domain.PaymentDetails
	review   domain.ReviewDetails
	errors   map[string]string
	order    *domain.Order
	inFlight bool

	cart    *cart.Store
	session storage.Store
	log     *slog.Logger
	delay   time.Duration
}

// New returns a wizard at the shipping step with the default country
// preselected.
func New(cartStore *cart.Store, session storage.Store, log *slog.Logger) *Wizard {
	if log == nil {
		log = slog.Default()
	}
	return &Wizard{
		step:     StepShipping,
		shipping: domain.ShippingDetails{Country: DefaultCountry},
		errors:   map[string]string{},
		cart:     cartStore,
		session:  session,
		log:      log,
		delay:    DefaultProcessingDelay,
	}
}

// SetProcessingDelay overrides the simulated finalization delay.
func (w *Wizard) SetProcessingDelay(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delay = d
}

// Step reports the wizard's current position.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Order returns the finalized order, or nil before completion.
func (w *Wizard) Order() *domain.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.order == nil {
		return nil
	}
	o := *w.order
	return &o
}

// CanActivate reports whether the checkout view may stay open. An
// empty cart with no completed order means the caller must navigate
// away. The cart can empty underneath an open wizard, so callers
// re-check after cart notifications.
func (w *Wizard) CanActivate() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepCompleted && w.cart.IsEmpty() {
		return ErrEmptyCart
	}
	return nil
}

// Shipping returns the current shipping draft.
func (w *Wizard) Shipping() domain.ShippingDetails {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shipping
}

// Payment returns the current payment draft.
func (w *Wizard) Payment() domain.PaymentDetails {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payment
}

// Errors returns a copy of the per-field error messages from the last
// failed submit, minus any cleared by edits since.
func (w *Wizard) Errors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]string, len(w.errors))
	for k, v := range w.errors {
		out[k] = v
	}
	return out
}

// SetShipping replaces the shipping draft. Each edited field has its
// error cleared; changing the country additionally resets the state
// selection and clears its error, since the state tables differ per
// country.
func (w *Wizard) SetShipping(d domain.ShippingDetails) {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.shipping
	if d.Country != prev.Country {
		d.State = ""
		delete(w.errors, "state")
	}
	w.clearIfChanged(prev.FirstName, d.FirstName, "firstName")
	w.clearIfChanged(prev.LastName, d.LastName, "lastName")
	w.clearIfChanged(prev.Email, d.Email, "email")
	w.clearIfChanged(prev.Phone, d.Phone, "phone")
	w.clearIfChanged(prev.Address, d.Address, "address")
	w.clearIfChanged(prev.City, d.City, "city")
	w.clearIfChanged(prev.Country, d.Country, "country")
	w.clearIfChanged(prev.State, d.State, "state")
	w.clearIfChanged(prev.ZipCode, d.ZipCode, "zipCode")
	w.shipping = d
}

// SetPayment replaces the payment draft, normalizing card number and
// expiry through the input formatters and clearing errors on edited
// fields.
func (w *Wizard) SetPayment(d domain.PaymentDetails) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d.CardNumber = FormatCardNumber(d.CardNumber)
	d.ExpiryDate = FormatExpiry(d.ExpiryDate)
	prev := w.payment
	w.clearIfChanged(prev.CardNumber, d.CardNumber, "cardNumber")
	w.clearIfChanged(prev.CardName, d.CardName, "cardName")
	w.clearIfChanged(prev.ExpiryDate, d.ExpiryDate, "expiryDate")
	w.clearIfChanged(prev.CVV, d.CVV, "cvv")
	w.payment = d
}

func (w *Wizard) clearIfChanged(prev, next, field string) {
	if prev != next {
		delete(w.errors, field)
	}
}

// SubmitShipping validates the shipping step and, on success, persists
// the draft to session storage and returns the payment handoff. The
// wizard stays on the shipping step: the payment page is external, and
// Resume advances the flow when the round trip returns.
func (w *Wizard) SubmitShipping(d domain.ShippingDetails) (Handoff, error) {
	w.SetShipping(d)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepShipping {
		return Handoff{}, ErrWrongStep
	}
	errs := ValidateShipping(w.shipping)
	w.errors = errs
	if len(errs) > 0 {
		return Handoff{}, domain.NewValidationError(errs)
	}

	raw, err := json.Marshal(w.shipping)
	if err != nil {
		return Handoff{}, err
	}
	if err := w.session.Set(SessionKey, raw); err != nil {
		w.log.Warn("persist checkout draft", "key", SessionKey, "error", err)
	}

	total := w.cart.Subtotal() * (1 + TaxRate)
	return Handoff{Total: total, Amount: EncodeAmount(total)}, nil
}

// Resume restores the shipping draft saved before the payment handoff
// and lands on the payment step, the first in-process step after the
// external round trip. A missing or corrupt draft leaves the current
// draft in place. Only a wizard still on the shipping step resumes;
// anywhere else it is a no-op, so a stray return cannot move a
// completed checkout backward.
func (w *Wizard) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepShipping {
		return
	}
	raw, ok, err := w.session.Get(SessionKey)
	if err != nil {
		w.log.Warn("read checkout draft", "key", SessionKey, "error", err)
	} else if ok {
		var d domain.ShippingDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			w.log.Warn("discard corrupt checkout draft", "key", SessionKey, "error", err)
		} else {
			w.shipping = d
		}
	}
	w.step = StepPayment
	w.errors = map[string]string{}
}

// SubmitPayment validates the payment step and advances to review.
func (w *Wizard) SubmitPayment(d domain.PaymentDetails) error {
	w.SetPayment(d)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepPayment {
		return ErrWrongStep
	}
	errs := ValidatePayment(w.payment)
	w.errors = errs
	if len(errs) > 0 {
		return domain.NewValidationError(errs)
	}
	w.step = StepReview
	return nil
}

// Back steps from payment or review to the previous step, preserving
// every entered value. It is a no-op on shipping and after completion.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepPayment:
		w.step = StepShipping
	case StepReview:
		w.step = StepPayment
	}
}

// SubmitReview validates the review step and finalizes the order.
// Finalization simulates the processor delay, then clears the cart
// before the completed order becomes visible. Cancelling ctx during
// the delay aborts with the cart intact and the wizard still on
// review. A second submit while one is in flight is rejected.
func (w *Wizard) SubmitReview(ctx context.Context, d domain.ReviewDetails) (*domain.Order, error) {
	w.mu.Lock()
	if w.step != StepReview {
		w.mu.Unlock()
		return nil, ErrWrongStep
	}
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	w.review = d
	errs := ValidateReview(d)
	w.errors = errs
	if len(errs) > 0 {
		w.mu.Unlock()
		return nil, domain.NewValidationError(errs)
	}
	w.inFlight = true
	delay := w.delay
	total := w.cart.Subtotal() * (1 + TaxRate)
	w.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
		return nil, ctx.Err()
	case <-timer.C:
	}

	order := &domain.Order{
		Number: orderNumbers.Next(),
		ID:     uuid.New(),
		Total:  total,
	}

	// Cart must be empty before the completion becomes observable.
	w.cart.Clear()

	w.mu.Lock()
	w.order = order
	w.step = StepCompleted
	w.inFlight = false
	w.mu.Unlock()

	w.log.Info("order completed", "number", order.Number, "total", order.Total)
	o := *order
	return &o, nil
}
