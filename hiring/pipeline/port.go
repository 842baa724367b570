package pipeline

import (
	"context"

	"github.com/tobyt50/PPALink-sub000/hiring/notification"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
	"github.com/tobyt50/PPALink-sub000/realtime"
)

// UnitOfWork is the atomicity boundary of the pipeline. Atomic begins a
// transaction, runs fn against a transaction-scoped Store, commits when fn
// returns nil and rolls back otherwise. No partial writes from a failed fn
// are ever observable.
type UnitOfWork interface {
	Atomic(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// Store is the transaction-scoped data access surface consumed inside
// UnitOfWork.Atomic. Every lookup that takes an owner id folds the ownership
// check into the query predicate, so "missing" and "not yours" are
// indistinguishable.
type Store interface {
	// GetApplicationForAgency fetches an application scoped to the agency
	// owning its position
	GetApplicationForAgency(ctx context.Context, id kernel.ApplicationID, agencyID kernel.AgencyID) (*Application, error)

	// UpdateApplicationStatus persists the application's status fields
	UpdateApplicationStatus(ctx context.Context, app *Application) error

	// InsertOffer creates a new offer row
	InsertOffer(ctx context.Context, offer *Offer) error

	// GetOfferForCandidate fetches an offer scoped to the candidate owning
	// its application, joined with that application
	GetOfferForCandidate(ctx context.Context, id kernel.OfferID, candidateID kernel.CandidateID) (*OfferDetail, error)

	// UpdateOfferStatus persists the offer's resolution
	UpdateOfferStatus(ctx context.Context, offer *Offer) error

	// LockPosition fetches a position under a row-level write lock held
	// until the transaction ends
	LockPosition(ctx context.Context, id kernel.PositionID) (*Position, error)

	// UpdatePositionStatus persists the position's status
	UpdatePositionStatus(ctx context.Context, position *Position) error

	// AgencyName resolves the display name recorded on work experiences
	AgencyName(ctx context.Context, id kernel.AgencyID) (kernel.AgencyName, error)

	// CandidateUserID resolves the user identity behind a candidate profile
	CandidateUserID(ctx context.Context, id kernel.CandidateID) (kernel.UserID, error)

	// ClearCurrentExperiences flips every current work experience of the
	// candidate to not-current, returning how many were flipped
	ClearCurrentExperiences(ctx context.Context, candidateID kernel.CandidateID) (int64, error)

	// InsertExperience creates a new work experience row
	InsertExperience(ctx context.Context, exp *WorkExperience) error

	// RejectOtherApplications rejects every application on the position that
	// is not already terminal, excluding the hired one by id
	RejectOtherApplications(ctx context.Context, positionID kernel.PositionID, hiredID kernel.ApplicationID) (int64, error)
}

// ReadRepository serves the board view; plain reads, no invariants.
type ReadRepository interface {
	// GetPositionForAgency fetches a position scoped to its owning agency
	GetPositionForAgency(ctx context.Context, id kernel.PositionID, agencyID kernel.AgencyID) (*Position, error)

	// ListApplicationsByPosition lists every application on a position
	ListApplicationsByPosition(ctx context.Context, positionID kernel.PositionID) ([]Application, error)
}

// AgencyDirectory resolves agency membership; owned by the agency-management
// CRUD outside this core.
type AgencyDirectory interface {
	MembersOf(ctx context.Context, agencyID kernel.AgencyID) ([]kernel.UserID, error)
}

// PresenceLookup is the read-only view of the presence registry.
type PresenceLookup interface {
	Lookup(userIDs []kernel.UserID) []realtime.Connection
}

// EventPublisher pushes an event to live connections, fire-and-forget.
type EventPublisher interface {
	Emit(conns []realtime.Connection, event string, payload any)
}

// Notifier dispatches a durable notification; failures are absorbed, never
// returned.
type Notifier interface {
	Dispatch(ctx context.Context, n notification.Notification)
}
