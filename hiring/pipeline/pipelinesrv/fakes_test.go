package pipelinesrv

import (
	"context"
	"errors"
	"sync"

	"github.com/tobyt50/PPALink-sub000/hiring/notification"
	"github.com/tobyt50/PPALink-sub000/hiring/pipeline"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
	"github.com/tobyt50/PPALink-sub000/realtime"
)

// fakeDB is the in-memory world the fake store operates on. The unit of work
// holds its mutex for a whole transaction, which serializes transactions the
// same way the row lock on positions does in PostgreSQL.
type fakeDB struct {
	mu           sync.Mutex
	applications map[kernel.ApplicationID]pipeline.Application
	offers       map[kernel.OfferID]pipeline.Offer
	positions    map[kernel.PositionID]pipeline.Position
	experiences  map[kernel.ExperienceID]pipeline.WorkExperience
	agencies     map[kernel.AgencyID]kernel.AgencyName
	candidates   map[kernel.CandidateID]kernel.UserID
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		applications: make(map[kernel.ApplicationID]pipeline.Application),
		offers:       make(map[kernel.OfferID]pipeline.Offer),
		positions:    make(map[kernel.PositionID]pipeline.Position),
		experiences:  make(map[kernel.ExperienceID]pipeline.WorkExperience),
		agencies:     make(map[kernel.AgencyID]kernel.AgencyName),
		candidates:   make(map[kernel.CandidateID]kernel.UserID),
	}
}

type fakeSnapshot struct {
	applications map[kernel.ApplicationID]pipeline.Application
	offers       map[kernel.OfferID]pipeline.Offer
	positions    map[kernel.PositionID]pipeline.Position
	experiences  map[kernel.ExperienceID]pipeline.WorkExperience
}

func (db *fakeDB) snapshot() fakeSnapshot {
	s := fakeSnapshot{
		applications: make(map[kernel.ApplicationID]pipeline.Application, len(db.applications)),
		offers:       make(map[kernel.OfferID]pipeline.Offer, len(db.offers)),
		positions:    make(map[kernel.PositionID]pipeline.Position, len(db.positions)),
		experiences:  make(map[kernel.ExperienceID]pipeline.WorkExperience, len(db.experiences)),
	}
	for k, v := range db.applications {
		s.applications[k] = v
	}
	for k, v := range db.offers {
		s.offers[k] = v
	}
	for k, v := range db.positions {
		s.positions[k] = v
	}
	for k, v := range db.experiences {
		s.experiences[k] = v
	}
	return s
}

func (db *fakeDB) restore(s fakeSnapshot) {
	db.applications = s.applications
	db.offers = s.offers
	db.positions = s.positions
	db.experiences = s.experiences
}

// fakeUnitOfWork implements pipeline.UnitOfWork with snapshot/rollback
// semantics. failOn injects a failure into the named store operation.
type fakeUnitOfWork struct {
	db     *fakeDB
	failOn string
}

func (u *fakeUnitOfWork) Atomic(ctx context.Context, fn func(ctx context.Context, store pipeline.Store) error) error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()

	snap := u.db.snapshot()
	if err := fn(ctx, &fakeStore{db: u.db, failOn: u.failOn}); err != nil {
		u.db.restore(snap)
		return err
	}
	return nil
}

type fakeStore struct {
	db     *fakeDB
	failOn string
}

func (s *fakeStore) fail(op string) error {
	if s.failOn == op {
		return errors.New("injected failure: " + op)
	}
	return nil
}

func (s *fakeStore) GetApplicationForAgency(_ context.Context, id kernel.ApplicationID, agencyID kernel.AgencyID) (*pipeline.Application, error) {
	app, ok := s.db.applications[id]
	if !ok {
		return nil, pipeline.ErrNotFoundOrForbidden()
	}
	pos, ok := s.db.positions[app.PositionID]
	if !ok || pos.AgencyID != agencyID {
		return nil, pipeline.ErrNotFoundOrForbidden()
	}
	return &app, nil
}

func (s *fakeStore) UpdateApplicationStatus(_ context.Context, app *pipeline.Application) error {
	if err := s.fail("UpdateApplicationStatus"); err != nil {
		return err
	}
	s.db.applications[app.ID] = *app
	return nil
}

func (s *fakeStore) InsertOffer(_ context.Context, offer *pipeline.Offer) error {
	if err := s.fail("InsertOffer"); err != nil {
		return err
	}
	s.db.offers[offer.ID] = *offer
	return nil
}

func (s *fakeStore) GetOfferForCandidate(_ context.Context, id kernel.OfferID, candidateID kernel.CandidateID) (*pipeline.OfferDetail, error) {
	offer, ok := s.db.offers[id]
	if !ok {
		return nil, pipeline.ErrNotFoundOrForbidden()
	}
	app, ok := s.db.applications[offer.ApplicationID]
	if !ok || app.CandidateID != candidateID {
		return nil, pipeline.ErrNotFoundOrForbidden()
	}
	return &pipeline.OfferDetail{Offer: offer, Application: app}, nil
}

func (s *fakeStore) UpdateOfferStatus(_ context.Context, offer *pipeline.Offer) error {
	if err := s.fail("UpdateOfferStatus"); err != nil {
		return err
	}
	s.db.offers[offer.ID] = *offer
	return nil
}

func (s *fakeStore) LockPosition(_ context.Context, id kernel.PositionID) (*pipeline.Position, error) {
	pos, ok := s.db.positions[id]
	if !ok {
		return nil, pipeline.ErrNotFoundOrForbidden()
	}
	return &pos, nil
}

func (s *fakeStore) UpdatePositionStatus(_ context.Context, position *pipeline.Position) error {
	if err := s.fail("UpdatePositionStatus"); err != nil {
		return err
	}
	s.db.positions[position.ID] = *position
	return nil
}

func (s *fakeStore) AgencyName(_ context.Context, id kernel.AgencyID) (kernel.AgencyName, error) {
	name, ok := s.db.agencies[id]
	if !ok {
		return "", pipeline.ErrNotFoundOrForbidden()
	}
	return name, nil
}

func (s *fakeStore) CandidateUserID(_ context.Context, id kernel.CandidateID) (kernel.UserID, error) {
	userID, ok := s.db.candidates[id]
	if !ok {
		return "", pipeline.ErrNotFoundOrForbidden()
	}
	return userID, nil
}

func (s *fakeStore) ClearCurrentExperiences(_ context.Context, candidateID kernel.CandidateID) (int64, error) {
	if err := s.fail("ClearCurrentExperiences"); err != nil {
		return 0, err
	}
	var cleared int64
	for id, exp := range s.db.experiences {
		if exp.CandidateID == candidateID && exp.IsCurrent {
			exp.IsCurrent = false
			s.db.experiences[id] = exp
			cleared++
		}
	}
	return cleared, nil
}

func (s *fakeStore) InsertExperience(_ context.Context, exp *pipeline.WorkExperience) error {
	if err := s.fail("InsertExperience"); err != nil {
		return err
	}
	// Mirror the partial unique index on (candidate_id) WHERE is_current.
	if exp.IsCurrent {
		for _, existing := range s.db.experiences {
			if existing.CandidateID == exp.CandidateID && existing.IsCurrent {
				return pipeline.ErrCurrentExperienceConflict()
			}
		}
	}
	s.db.experiences[exp.ID] = *exp
	return nil
}

func (s *fakeStore) RejectOtherApplications(_ context.Context, positionID kernel.PositionID, hiredID kernel.ApplicationID) (int64, error) {
	if err := s.fail("RejectOtherApplications"); err != nil {
		return 0, err
	}
	var rejected int64
	for id, app := range s.db.applications {
		if app.PositionID != positionID || app.ID == hiredID || app.IsTerminal() {
			continue
		}
		app.Status = pipeline.ApplicationStatusRejected
		s.db.applications[id] = app
		rejected++
	}
	return rejected, nil
}

// fakeReads serves the board view straight off the fake world.
type fakeReads struct {
	db *fakeDB
}

func (r *fakeReads) GetPositionForAgency(_ context.Context, id kernel.PositionID, agencyID kernel.AgencyID) (*pipeline.Position, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	pos, ok := r.db.positions[id]
	if !ok || pos.AgencyID != agencyID {
		return nil, pipeline.ErrNotFoundOrForbidden()
	}
	return &pos, nil
}

func (r *fakeReads) ListApplicationsByPosition(_ context.Context, positionID kernel.PositionID) ([]pipeline.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var apps []pipeline.Application
	for _, app := range r.db.applications {
		if app.PositionID == positionID {
			apps = append(apps, app)
		}
	}
	return apps, nil
}

type fakeDirectory struct {
	members []kernel.UserID
	err     error
}

func (d *fakeDirectory) MembersOf(_ context.Context, _ kernel.AgencyID) ([]kernel.UserID, error) {
	return d.members, d.err
}

type fakePresence struct {
	mu       sync.Mutex
	requests [][]kernel.UserID
	conns    []realtime.Connection
}

func (p *fakePresence) Lookup(userIDs []kernel.UserID) []realtime.Connection {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, userIDs)
	return p.conns
}

type emission struct {
	event   string
	payload any
	conns   int
}

type fakePublisher struct {
	mu        sync.Mutex
	emissions []emission
}

func (p *fakePublisher) Emit(conns []realtime.Connection, event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.emissions = append(p.emissions, emission{event: event, payload: payload, conns: len(conns)})
}

type fakeNotifier struct {
	mu         sync.Mutex
	dispatched []notification.Notification
	ctxErrs    []error
}

func (n *fakeNotifier) Dispatch(ctx context.Context, notice notification.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dispatched = append(n.dispatched, notice)
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
}
