package pipeline

import (
	"time"

	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// OfferStatus represents the lifecycle of an offer.
type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "PENDING"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusDeclined OfferStatus = "DECLINED"
)

// Offer is a compensation/start-date proposal tied to exactly one
// application. A resolved offer is never mutated again.
type Offer struct {
	ID            kernel.OfferID       `db:"id" json:"id"`
	ApplicationID kernel.ApplicationID `db:"application_id" json:"application_id"`
	Salary        *kernel.Money        `db:"salary" json:"salary,omitempty"`
	Currency      *string              `db:"currency" json:"currency,omitempty"`
	StartDate     *time.Time           `db:"start_date" json:"start_date,omitempty"`
	Status        OfferStatus          `db:"status" json:"status"`
	ResolvedAt    *time.Time           `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt     time.Time            `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsPending checks if the offer is still awaiting a response.
func (o *Offer) IsPending() bool {
	return o.Status == OfferStatusPending
}

// IsResolved checks if the offer reached a terminal state.
func (o *Offer) IsResolved() bool {
	return o.Status == OfferStatusAccepted || o.Status == OfferStatusDeclined
}

// Accept resolves the offer as accepted.
func (o *Offer) Accept() error {
	return o.resolve(OfferStatusAccepted)
}

// Decline resolves the offer as declined.
func (o *Offer) Decline() error {
	return o.resolve(OfferStatusDeclined)
}

func (o *Offer) resolve(status OfferStatus) error {
	if o.IsResolved() {
		return ErrOfferAlreadyResolved().
			WithDetail("offer_id", o.ID.String()).
			WithDetail("status", o.Status)
	}

	now := time.Now()
	o.Status = status
	o.ResolvedAt = &now
	return nil
}

// EffectiveStartDate is the start date recorded on the resulting work
// experience: the proposed date when present, otherwise the acceptance time.
func (o *Offer) EffectiveStartDate() time.Time {
	if o.StartDate != nil {
		return *o.StartDate
	}
	return time.Now()
}
