package checkout

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/cart"
	"storefront/domain"
	"storefront/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWizard(t *testing.T) (*Wizard, *cart.Store, storage.Store) {
	t.Helper()
	log := discardLogger()
	cs := cart.NewStore(storage.NewMemory(), log)
	require.NoError(t, cs.Add(domain.CartLineItem{ProductID: 1, Name: "Wireless Headphones", Price: 100}, 2))
	session := storage.NewMemory()
	w := New(cs, session, log)
	w.SetProcessingDelay(time.Millisecond)
	return w, cs, session
}

func validShipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Phone:     "08012345678",
		Address:   "12 Marina Rd",
		City:      "Lagos",
		Country:   "United States",
		State:     "California",
		ZipCode:   "94080",
	}
}

func validPayment() domain.PaymentDetails {
	return domain.PaymentDetails{
		CardNumber: "4242 4242 4242 4242",
		CardName:   "Ada Obi",
		ExpiryDate: "09/27",
		CVV:        "123",
	}
}

func advanceToReview(t *testing.T, w *Wizard) {
	t.Helper()
	_, err := w.SubmitShipping(validShipping())
	require.NoError(t, err)
	w.Resume()
	require.NoError(t, w.SubmitPayment(validPayment()))
	require.Equal(t, StepReview, w.Step())
}

func TestNew_StartsAtShippingWithDefaultCountry(t *testing.T) {
	w, _, _ := newTestWizard(t)
	assert.Equal(t, StepShipping, w.Step())
	assert.Equal(t, DefaultCountry, w.Shipping().Country)
	assert.Nil(t, w.Order())
}

func TestCanActivate(t *testing.T) {
	w, cs, _ := newTestWizard(t)
	assert.NoError(t, w.CanActivate())

	cs.Clear()
	assert.ErrorIs(t, w.CanActivate(), ErrEmptyCart)
}

func TestSubmitShipping_ValidationErrors(t *testing.T) {
	w, _, _ := newTestWizard(t)

	_, err := w.SubmitShipping(domain.ShippingDetails{Email: "not-an-email"})
	require.Error(t, err)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "First name is required", verr.Fields["firstName"])
	assert.Equal(t, "Invalid email address", verr.Fields["email"])
	assert.Equal(t, "State/Province is required", verr.Fields["state"])

	// The wizard keeps the same errors for the form to render.
	assert.Equal(t, verr.Fields, w.Errors())
	assert.Equal(t, StepShipping, w.Step())
}

func TestSubmitShipping_PersistsDraftAndReturnsHandoff(t *testing.T) {
	w, _, session := newTestWizard(t)

	h, err := w.SubmitShipping(validShipping())
	require.NoError(t, err)

	// Subtotal 200 plus 10% tax.
	assert.InDelta(t, 220.0, h.Total, 1e-9)
	assert.Equal(t, "220.00", h.Amount)

	// Stays on shipping; the payment page is external.
	assert.Equal(t, StepShipping, w.Step())

	raw, ok, err := session.Get(SessionKey)
	require.NoError(t, err)
	require.True(t, ok)
	var saved domain.ShippingDetails
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, validShipping(), saved)
}

func TestResume_RestoresDraftAndLandsOnPayment(t *testing.T) {
	w, cs, session := newTestWizard(t)
	_, err := w.SubmitShipping(validShipping())
	require.NoError(t, err)

	// A fresh wizard models the return from the payment round trip.
	w2 := New(cs, session, discardLogger())
	w2.Resume()
	assert.Equal(t, StepPayment, w2.Step())
	assert.Equal(t, validShipping(), w2.Shipping())
}

func TestResume_CorruptDraftKeptOut(t *testing.T) {
	w, _, session := newTestWizard(t)
	require.NoError(t, session.Set(SessionKey, []byte(`{broken`)))

	w.Resume()
	assert.Equal(t, StepPayment, w.Step())
	assert.Equal(t, DefaultCountry, w.Shipping().Country)
}

func TestResume_OnlyFromShipping(t *testing.T) {
	w, _, _ := newTestWizard(t)
	advanceToReview(t, w)

	// A stray return from the payment page must not leave review.
	w.Resume()
	assert.Equal(t, StepReview, w.Step())

	order, err := w.SubmitReview(context.Background(), domain.ReviewDetails{AcceptTerms: true})
	require.NoError(t, err)

	w.Resume()
	assert.Equal(t, StepCompleted, w.Step())
	require.NotNil(t, w.Order())
	assert.Equal(t, order.Number, w.Order().Number)
}

func TestSetShipping_CountryChangeResetsState(t *testing.T) {
	w, _, _ := newTestWizard(t)

	d := validShipping()
	w.SetShipping(d)

	// Force a state error, then change country.
	d.State = ""
	_, err := w.SubmitShipping(d)
	require.Error(t, err)
	assert.Contains(t, w.Errors(), "state")

	d.State = "California"
	d.Country = "Canada"
	w.SetShipping(d)
	assert.Empty(t, w.Shipping().State)
	assert.NotContains(t, w.Errors(), "state")
}

func TestSetShipping_EditClearsOnlyThatFieldsError(t *testing.T) {
	w, _, _ := newTestWizard(t)

	_, err := w.SubmitShipping(domain.ShippingDetails{Country: DefaultCountry})
	require.Error(t, err)
	before := w.Errors()
	require.Contains(t, before, "firstName")
	require.Contains(t, before, "email")

	d := w.Shipping()
	d.FirstName = "Ada"
	w.SetShipping(d)

	after := w.Errors()
	assert.NotContains(t, after, "firstName")
	assert.Contains(t, after, "email")
}

func TestSubmitPayment_Validation(t *testing.T) {
	w, _, _ := newTestWizard(t)
	_, err := w.SubmitShipping(validShipping())
	require.NoError(t, err)
	w.Resume()

	err = w.SubmitPayment(domain.PaymentDetails{
		CardNumber: "1234",
		ExpiryDate: "13/25",
		CVV:        "12",
	})
	require.Error(t, err)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid card number", verr.Fields["cardNumber"])
	assert.Equal(t, "Name on card is required", verr.Fields["cardName"])
	assert.Equal(t, "Invalid expiry date (MM/YY)", verr.Fields["expiryDate"])
	assert.Equal(t, "Invalid CVV", verr.Fields["cvv"])
	assert.Equal(t, StepPayment, w.Step())

	require.NoError(t, w.SubmitPayment(validPayment()))
	assert.Equal(t, StepReview, w.Step())
}

func TestSubmitPayment_NormalizesInput(t *testing.T) {
	w, _, _ := newTestWizard(t)
	_, err := w.SubmitShipping(validShipping())
	require.NoError(t, err)
	w.Resume()

	require.NoError(t, w.SubmitPayment(domain.PaymentDetails{
		CardNumber: "4242424242424242",
		CardName:   "Ada Obi",
		ExpiryDate: "0927",
		CVV:        "123",
	}))
	p := w.Payment()
	assert.Equal(t, "4242 4242 4242 4242", p.CardNumber)
	assert.Equal(t, "09/27", p.ExpiryDate)
}

func TestSetPayment_KeepsGroupedCardNumber(t *testing.T) {
	w, _, _ := newTestWizard(t)

	w.SetPayment(domain.PaymentDetails{CardNumber: "4242 4242 4242 4242"})
	assert.Equal(t, "4242 4242 4242 4242", w.Payment().CardNumber)
	assert.Empty(t, ValidatePayment(validPayment()))
}

func TestBack_PreservesEnteredValues(t *testing.T) {
	w, _, _ := newTestWizard(t)
	advanceToReview(t, w)

	w.Back()
	assert.Equal(t, StepPayment, w.Step())
	assert.Equal(t, "4242 4242 4242 4242", w.Payment().CardNumber)

	w.Back()
	assert.Equal(t, StepShipping, w.Step())
	assert.Equal(t, validShipping(), w.Shipping())

	// Already at the first step.
	w.Back()
	assert.Equal(t, StepShipping, w.Step())
}

func TestSubmitReview_RequiresTerms(t *testing.T) {
	w, cs, _ := newTestWizard(t)
	advanceToReview(t, w)

	_, err := w.SubmitReview(context.Background(), domain.ReviewDetails{})
	require.Error(t, err)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "terms")
	assert.Equal(t, StepReview, w.Step())
	assert.False(t, cs.IsEmpty())
}

func TestSubmitReview_CompletesOrderAndClearsCart(t *testing.T) {
	w, cs, _ := newTestWizard(t)
	advanceToReview(t, w)

	var emptyAtNotify bool
	unsubscribe := cs.Subscribe(func(snap cart.Snapshot) {
		emptyAtNotify = len(snap.Items) == 0
	})
	defer unsubscribe()

	order, err := w.SubmitReview(context.Background(), domain.ReviewDetails{AcceptTerms: true})
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-\d{6}$`, order.Number)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", order.ID.String())
	assert.InDelta(t, 220.0, order.Total, 1e-9)

	assert.Equal(t, StepCompleted, w.Step())
	assert.True(t, cs.IsEmpty())
	assert.True(t, emptyAtNotify)
	require.NotNil(t, w.Order())
	assert.Equal(t, order.Number, w.Order().Number)

	// Completed wizard stays active even with an empty cart.
	assert.NoError(t, w.CanActivate())
}

func TestSubmitReview_WrongStep(t *testing.T) {
	w, _, _ := newTestWizard(t)
	_, err := w.SubmitReview(context.Background(), domain.ReviewDetails{AcceptTerms: true})
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestSubmitReview_RejectsSecondInFlightSubmit(t *testing.T) {
	w, _, _ := newTestWizard(t)
	advanceToReview(t, w)
	w.SetProcessingDelay(300 * time.Millisecond)

	started := make(chan struct{})
	first := make(chan error, 1)
	go func() {
		close(started)
		_, err := w.SubmitReview(context.Background(), domain.ReviewDetails{AcceptTerms: true})
		first <- err
	}()

	<-started
	time.Sleep(50 * time.Millisecond)
	_, err := w.SubmitReview(context.Background(), domain.ReviewDetails{AcceptTerms: true})
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	require.NoError(t, <-first)
	assert.Equal(t, StepCompleted, w.Step())
}

func TestSubmitReview_CancellationLeavesCartIntact(t *testing.T) {
	w, cs, _ := newTestWizard(t)
	advanceToReview(t, w)
	w.SetProcessingDelay(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := w.SubmitReview(ctx, domain.ReviewDetails{AcceptTerms: true})
		done <- err
	}()

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, StepReview, w.Step())
	assert.False(t, cs.IsEmpty())
	assert.Nil(t, w.Order())

	// The aborted submit releases the in-flight guard.
	w.SetProcessingDelay(time.Millisecond)
	_, err := w.SubmitReview(context.Background(), domain.ReviewDetails{AcceptTerms: true})
	require.NoError(t, err)
}
