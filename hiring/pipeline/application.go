package pipeline

import (
	"slices"
	"time"

	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// ApplicationStatus represents where an application sits in the hiring
// pipeline.
type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "APPLIED"   // Initial submission
	ApplicationStatusReviewing ApplicationStatus = "REVIEWING" // Being reviewed
	ApplicationStatusInterview ApplicationStatus = "INTERVIEW" // In interview process
	ApplicationStatusOffer     ApplicationStatus = "OFFER"     // Offer extended
	ApplicationStatusHired     ApplicationStatus = "HIRED"     // Offer accepted
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"  // Rejected by agency
	ApplicationStatusWithdrawn ApplicationStatus = "WITHDRAWN" // Withdrawn by candidate
)

// PipelineOrder is the Kanban column order of the board view.
var PipelineOrder = []ApplicationStatus{
	ApplicationStatusApplied,
	ApplicationStatusReviewing,
	ApplicationStatusInterview,
	ApplicationStatusOffer,
	ApplicationStatusHired,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

type Application struct {
	ID              kernel.ApplicationID `db:"id" json:"id"`
	PositionID      kernel.PositionID    `db:"position_id" json:"position_id"`
	CandidateID     kernel.CandidateID   `db:"candidate_id" json:"candidate_id"`
	Status          ApplicationStatus    `db:"status" json:"status"`
	Notes           *string              `db:"notes" json:"notes,omitempty"`
	StatusChangedAt *time.Time           `db:"status_changed_at" json:"status_changed_at,omitempty"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsTerminal checks whether the application has left the pipeline.
func (a *Application) IsTerminal() bool {
	return a.Status == ApplicationStatusHired ||
		a.Status == ApplicationStatusRejected ||
		a.Status == ApplicationStatusWithdrawn
}

// IsActive checks if the application is still in play.
func (a *Application) IsActive() bool {
	return !a.IsTerminal()
}

// CanUpdateStatus checks if a status change is allowed.
func (a *Application) CanUpdateStatus(newStatus ApplicationStatus) bool {
	// Valid state transitions. Transitions up to OFFER are driven by the
	// agency's pipeline CRUD; the OFFER branch is owned by the offer flow.
	validTransitions := map[ApplicationStatus][]ApplicationStatus{
		ApplicationStatusApplied: {
			ApplicationStatusReviewing,
			ApplicationStatusOffer,
			ApplicationStatusRejected,
			ApplicationStatusWithdrawn,
		},
		ApplicationStatusReviewing: {
			ApplicationStatusInterview,
			ApplicationStatusOffer,
			ApplicationStatusRejected,
			ApplicationStatusWithdrawn,
		},
		ApplicationStatusInterview: {
			ApplicationStatusOffer,
			ApplicationStatusRejected,
			ApplicationStatusWithdrawn,
		},
		ApplicationStatusOffer: {
			// A fresh offer on an already-offered application is the
			// re-offer path, hence OFFER -> OFFER.
			ApplicationStatusOffer,
			ApplicationStatusHired,
			ApplicationStatusRejected,
			ApplicationStatusWithdrawn,
		},
	}

	allowed, ok := validTransitions[a.Status]
	if !ok {
		return false // Terminal statuses allow no transitions
	}

	return slices.Contains(allowed, newStatus)
}

// UpdateStatus updates the application status.
func (a *Application) UpdateStatus(newStatus ApplicationStatus) error {
	if !a.CanUpdateStatus(newStatus) {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", a.Status).
			WithDetail("new_status", newStatus)
	}

	now := time.Now()
	a.Status = newStatus
	a.StatusChangedAt = &now
	a.UpdatedAt = now
	return nil
}

// EnterOffer moves the application into OFFER status. Terminal applications
// cannot be re-offered.
func (a *Application) EnterOffer() error {
	if a.IsTerminal() {
		return ErrApplicationNotActive().
			WithDetail("application_id", a.ID.String()).
			WithDetail("status", a.Status)
	}
	return a.UpdateStatus(ApplicationStatusOffer)
}

// Hire marks the application as hired after an accepted offer.
func (a *Application) Hire() error {
	return a.UpdateStatus(ApplicationStatusHired)
}

// Withdraw marks the application as withdrawn after a declined offer.
func (a *Application) Withdraw() error {
	return a.UpdateStatus(ApplicationStatusWithdrawn)
}
