package pipeline

import (
	"time"

	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// CreateOfferRequest - DTO for extending an offer on an application
type CreateOfferRequest struct {
	ApplicationID kernel.ApplicationID `json:"application_id" validate:"required"`
	AgencyID      kernel.AgencyID      `json:"-"` // from the auth context, never the body
	Salary        *kernel.Money        `json:"salary,omitempty"`
	Currency      *string              `json:"currency,omitempty"`
	StartDate     *time.Time           `json:"start_date,omitempty"`
}

// Validate checks the request shape before any store access.
func (r CreateOfferRequest) Validate() error {
	if r.ApplicationID.IsEmpty() || r.AgencyID.IsEmpty() {
		return ErrInvalidRequest().WithDetail("field", "application_id")
	}
	if r.Salary != nil && (r.Currency == nil || *r.Currency == "") {
		return ErrCurrencyRequired()
	}
	return nil
}

// OfferResponse is the candidate's answer to a pending offer.
type OfferResponse string

const (
	OfferResponseAccepted OfferResponse = "ACCEPTED"
	OfferResponseDeclined OfferResponse = "DECLINED"
)

func (r OfferResponse) IsValid() bool {
	return r == OfferResponseAccepted || r == OfferResponseDeclined
}

// RespondToOfferRequest - DTO for resolving an offer
type RespondToOfferRequest struct {
	OfferID     kernel.OfferID     `json:"-"`
	CandidateID kernel.CandidateID `json:"-"` // from the auth context
	Response    OfferResponse      `json:"response" validate:"required"`
}

func (r RespondToOfferRequest) Validate() error {
	if r.OfferID.IsEmpty() || r.CandidateID.IsEmpty() {
		return ErrInvalidRequest().WithDetail("field", "offer_id")
	}
	if !r.Response.IsValid() {
		return ErrInvalidResponse().WithDetail("response", r.Response)
	}
	return nil
}

// EventApplicationUpdated is pushed to online agency members when an
// application moves on the board.
const EventApplicationUpdated = "pipeline:application_updated"

// ApplicationSummary is the application slice carried in push payloads.
type ApplicationSummary struct {
	ID          kernel.ApplicationID `json:"id"`
	Status      ApplicationStatus    `json:"status"`
	PositionID  kernel.PositionID    `json:"positionId"`
	CandidateID kernel.CandidateID   `json:"candidateId"`
}

// ApplicationUpdatedPayload - payload of EventApplicationUpdated
type ApplicationUpdatedPayload struct {
	JobID       kernel.PositionID  `json:"jobId"`
	Application ApplicationSummary `json:"application"`
}

// Summary projects the application into its push-payload shape.
func (a *Application) Summary() ApplicationSummary {
	return ApplicationSummary{
		ID:          a.ID,
		Status:      a.Status,
		PositionID:  a.PositionID,
		CandidateID: a.CandidateID,
	}
}

// OfferDetail is an offer joined with its owning application, fetched in one
// ownership-scoped read.
type OfferDetail struct {
	Offer       Offer
	Application Application
}

// BoardColumn - one status column of the Kanban pipeline view
type BoardColumn struct {
	Status       ApplicationStatus `json:"status"`
	Applications []Application     `json:"applications"`
}

// BoardResponse - the status-grouped pipeline view of one position
type BoardResponse struct {
	PositionID kernel.PositionID    `json:"position_id"`
	Title      kernel.PositionTitle `json:"title"`
	Columns    []BoardColumn        `json:"columns"`
}
