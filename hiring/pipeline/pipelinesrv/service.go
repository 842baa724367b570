package pipelinesrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tobyt50/PPALink-sub000/hiring/notification"
	"github.com/tobyt50/PPALink-sub000/hiring/pipeline"
	"github.com/tobyt50/PPALink-sub000/pkg/errx"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
	"github.com/tobyt50/PPALink-sub000/pkg/logx"
)

// PipelineService owns the OFFER -> {HIRED | WITHDRAWN} branch of the hiring
// pipeline and its cross-entity consequences. Every mutation runs inside one
// unit of work; push and notification side effects happen after commit and
// can never fail the business operation.
type PipelineService struct {
	uow       pipeline.UnitOfWork
	reads     pipeline.ReadRepository
	directory pipeline.AgencyDirectory
	presence  pipeline.PresenceLookup
	publisher pipeline.EventPublisher
	notifier  pipeline.Notifier
}

// NewPipelineService creates a new instance of the pipeline service
func NewPipelineService(
	uow pipeline.UnitOfWork,
	reads pipeline.ReadRepository,
	directory pipeline.AgencyDirectory,
	presence pipeline.PresenceLookup,
	publisher pipeline.EventPublisher,
	notifier pipeline.Notifier,
) *PipelineService {
	return &PipelineService{
		uow:       uow,
		reads:     reads,
		directory: directory,
		presence:  presence,
		publisher: publisher,
		notifier:  notifier,
	}
}

// CreateOffer extends a PENDING offer on an application owned by the calling
// agency and moves the application into OFFER status, atomically. Online
// members of the agency get a best-effort board update afterwards.
func (s *PipelineService) CreateOffer(ctx context.Context, req pipeline.CreateOfferRequest) (*pipeline.Offer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		offer   *pipeline.Offer
		updated *pipeline.Application
	)

	err := s.uow.Atomic(ctx, func(ctx context.Context, store pipeline.Store) error {
		// Ownership is part of the lookup predicate: an application under
		// another agency's position is indistinguishable from a missing one.
		app, err := store.GetApplicationForAgency(ctx, req.ApplicationID, req.AgencyID)
		if err != nil {
			return err
		}

		if err := app.EnterOffer(); err != nil {
			return err
		}

		offer = &pipeline.Offer{
			ID:            kernel.NewOfferID(uuid.NewString()),
			ApplicationID: app.ID,
			Salary:        req.Salary,
			Currency:      req.Currency,
			StartDate:     req.StartDate,
			Status:        pipeline.OfferStatusPending,
			CreatedAt:     time.Now(),
		}

		if err := store.InsertOffer(ctx, offer); err != nil {
			return errx.Wrap(err, "failed to create offer", errx.TypeInternal)
		}

		if err := store.UpdateApplicationStatus(ctx, app); err != nil {
			return errx.Wrap(err, "failed to move application to offer", errx.TypeInternal)
		}

		// Read back the state the transaction will commit, for the push
		// payload.
		updated, err = store.GetApplicationForAgency(ctx, app.ID, req.AgencyID)
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pushApplicationUpdated(ctx, req.AgencyID, updated)

	return offer, nil
}

// RespondToOffer resolves a pending offer as the owning candidate. DECLINED
// withdraws the application and touches nothing else. ACCEPTED runs the full
// hire cascade: offer, application, position, work experiences and sibling
// applications change in one transaction, and a durable congratulation
// notification is dispatched after commit.
func (s *PipelineService) RespondToOffer(ctx context.Context, req pipeline.RespondToOfferRequest) (*pipeline.Offer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		resolved    *pipeline.Offer
		hiredNotice *notification.Notification
	)

	err := s.uow.Atomic(ctx, func(ctx context.Context, store pipeline.Store) error {
		detail, err := store.GetOfferForCandidate(ctx, req.OfferID, req.CandidateID)
		if err != nil {
			return err
		}

		offer := detail.Offer
		app := detail.Application

		if req.Response == pipeline.OfferResponseDeclined {
			if err := s.decline(ctx, store, &offer, &app); err != nil {
				return err
			}
			resolved = &offer
			return nil
		}

		notice, err := s.accept(ctx, store, &offer, &app)
		if err != nil {
			return err
		}

		resolved = &offer
		hiredNotice = notice
		return nil
	})
	if err != nil {
		return nil, err
	}

	if hiredNotice != nil {
		// The hire is committed; a client that hung up must not cancel the
		// durable notification out from under it.
		s.notifier.Dispatch(context.WithoutCancel(ctx), *hiredNotice)
	}

	return resolved, nil
}

func (s *PipelineService) decline(ctx context.Context, store pipeline.Store, offer *pipeline.Offer, app *pipeline.Application) error {
	if err := offer.Decline(); err != nil {
		return err
	}
	if err := app.Withdraw(); err != nil {
		return err
	}

	if err := store.UpdateOfferStatus(ctx, offer); err != nil {
		return errx.Wrap(err, "failed to decline offer", errx.TypeInternal)
	}
	if err := store.UpdateApplicationStatus(ctx, app); err != nil {
		return errx.Wrap(err, "failed to withdraw application", errx.TypeInternal)
	}

	return nil
}

func (s *PipelineService) accept(ctx context.Context, store pipeline.Store, offer *pipeline.Offer, app *pipeline.Application) (*notification.Notification, error) {
	// The row lock on the position serializes concurrent acceptances; the
	// loser observes CLOSED here instead of double-filling the role.
	pos, err := store.LockPosition(ctx, app.PositionID)
	if err != nil {
		return nil, err
	}
	if pos.IsClosed() {
		return nil, pipeline.ErrPositionAlreadyFilled().
			WithDetail("position_id", pos.ID.String())
	}
	if !pos.IsOpen() {
		// A DRAFT position should carry no applications; refuse rather than
		// let an acceptance skip it straight to CLOSED.
		return nil, pipeline.ErrPositionNotOpen().
			WithDetail("position_id", pos.ID.String()).
			WithDetail("status", pos.Status)
	}

	if err := offer.Accept(); err != nil {
		return nil, err
	}
	if err := app.Hire(); err != nil {
		return nil, err
	}
	pos.Close()

	if err := store.UpdateOfferStatus(ctx, offer); err != nil {
		return nil, errx.Wrap(err, "failed to accept offer", errx.TypeInternal)
	}
	if err := store.UpdateApplicationStatus(ctx, app); err != nil {
		return nil, errx.Wrap(err, "failed to mark application hired", errx.TypeInternal)
	}
	if err := store.UpdatePositionStatus(ctx, pos); err != nil {
		return nil, errx.Wrap(err, "failed to close position", errx.TypeInternal)
	}

	// Resume cascade: exactly one current work experience per candidate.
	if _, err := store.ClearCurrentExperiences(ctx, app.CandidateID); err != nil {
		return nil, errx.Wrap(err, "failed to clear current experiences", errx.TypeInternal)
	}

	agencyName, err := store.AgencyName(ctx, pos.AgencyID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to resolve agency name", errx.TypeInternal)
	}

	exp := &pipeline.WorkExperience{
		ID:          kernel.NewExperienceID(uuid.NewString()),
		CandidateID: app.CandidateID,
		Company:     agencyName,
		Title:       pos.Title,
		StartDate:   offer.EffectiveStartDate(),
		IsCurrent:   true,
		CreatedAt:   time.Now(),
	}
	if err := store.InsertExperience(ctx, exp); err != nil {
		return nil, errx.Wrap(err, "failed to record work experience", errx.TypeInternal)
	}

	// Everyone else still in the running for this position is out.
	if _, err := store.RejectOtherApplications(ctx, pos.ID, app.ID); err != nil {
		return nil, errx.Wrap(err, "failed to reject sibling applications", errx.TypeInternal)
	}

	userID, err := store.CandidateUserID(ctx, app.CandidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to resolve candidate user", errx.TypeInternal)
	}

	notice := notification.NewGeneric(
		userID,
		fmt.Sprintf("Congratulations! You have been hired as %s at %s.", pos.Title, agencyName),
		"/dashboard/candidate/profile",
	)

	return &notice, nil
}

// pushApplicationUpdated is best effort: lookup and emit failures are logged
// and dropped, and an agency with nobody online gets nothing (no durable
// fallback on the agency side).
func (s *PipelineService) pushApplicationUpdated(ctx context.Context, agencyID kernel.AgencyID, app *pipeline.Application) {
	members, err := s.directory.MembersOf(ctx, agencyID)
	if err != nil {
		logx.Warnf("skipping pipeline push for agency %s: member lookup failed: %v", agencyID, err)
		return
	}

	handles := s.presence.Lookup(members)
	s.publisher.Emit(handles, pipeline.EventApplicationUpdated, pipeline.ApplicationUpdatedPayload{
		JobID:       app.PositionID,
		Application: app.Summary(),
	})
}
