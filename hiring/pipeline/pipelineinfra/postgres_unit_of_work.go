package pipelineinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tobyt50/PPALink-sub000/hiring/pipeline"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// PostgresUnitOfWork implements pipeline.UnitOfWork over one PostgreSQL
// transaction. READ COMMITTED plus the row lock taken in LockPosition is
// what makes concurrent acceptances safe; see pipeline.Store.
type PostgresUnitOfWork struct {
	db *sqlx.DB
}

// NewPostgresUnitOfWork creates a new PostgreSQL unit of work
func NewPostgresUnitOfWork(db *sqlx.DB) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{
		db: db,
	}
}

// Atomic runs fn inside one transaction: commit when fn returns nil,
// rollback otherwise. The store handed to fn is bound to that transaction
// and must not escape it.
func (u *PostgresUnitOfWork) Atomic(ctx context.Context, fn func(ctx context.Context, store pipeline.Store) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, &postgresStore{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// ============================================================================
// Database Models
// ============================================================================

type applicationModel struct {
	ID              string     `db:"id"`
	PositionID      string     `db:"position_id"`
	CandidateID     string     `db:"candidate_id"`
	Status          string     `db:"status"`
	Notes           *string    `db:"notes"`
	StatusChangedAt *time.Time `db:"status_changed_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (m *applicationModel) toEntity() *pipeline.Application {
	return &pipeline.Application{
		ID:              kernel.ApplicationID(m.ID),
		PositionID:      kernel.PositionID(m.PositionID),
		CandidateID:     kernel.CandidateID(m.CandidateID),
		Status:          pipeline.ApplicationStatus(m.Status),
		Notes:           m.Notes,
		StatusChangedAt: m.StatusChangedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type offerModel struct {
	ID            string     `db:"id"`
	ApplicationID string     `db:"application_id"`
	Salary        *int64     `db:"salary"`
	Currency      *string    `db:"currency"`
	StartDate     *time.Time `db:"start_date"`
	Status        string     `db:"status"`
	ResolvedAt    *time.Time `db:"resolved_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

func (m *offerModel) toEntity() *pipeline.Offer {
	var salary *kernel.Money
	if m.Salary != nil {
		s := kernel.Money(*m.Salary)
		salary = &s
	}

	return &pipeline.Offer{
		ID:            kernel.OfferID(m.ID),
		ApplicationID: kernel.ApplicationID(m.ApplicationID),
		Salary:        salary,
		Currency:      m.Currency,
		StartDate:     m.StartDate,
		Status:        pipeline.OfferStatus(m.Status),
		ResolvedAt:    m.ResolvedAt,
		CreatedAt:     m.CreatedAt,
	}
}

func fromOfferEntity(offer *pipeline.Offer) *offerModel {
	var salary *int64
	if offer.Salary != nil {
		s := int64(*offer.Salary)
		salary = &s
	}

	return &offerModel{
		ID:            string(offer.ID),
		ApplicationID: string(offer.ApplicationID),
		Salary:        salary,
		Currency:      offer.Currency,
		StartDate:     offer.StartDate,
		Status:        string(offer.Status),
		ResolvedAt:    offer.ResolvedAt,
		CreatedAt:     offer.CreatedAt,
	}
}

// offerDetailModel for the offer+application ownership join
type offerDetailModel struct {
	offerModel
	AppID              string     `db:"app_id"`
	AppPositionID      string     `db:"app_position_id"`
	AppCandidateID     string     `db:"app_candidate_id"`
	AppStatus          string     `db:"app_status"`
	AppNotes           *string    `db:"app_notes"`
	AppStatusChangedAt *time.Time `db:"app_status_changed_at"`
	AppCreatedAt       time.Time  `db:"app_created_at"`
	AppUpdatedAt       time.Time  `db:"app_updated_at"`
}

func (m *offerDetailModel) toDetail() *pipeline.OfferDetail {
	return &pipeline.OfferDetail{
		Offer: *m.offerModel.toEntity(),
		Application: pipeline.Application{
			ID:              kernel.ApplicationID(m.AppID),
			PositionID:      kernel.PositionID(m.AppPositionID),
			CandidateID:     kernel.CandidateID(m.AppCandidateID),
			Status:          pipeline.ApplicationStatus(m.AppStatus),
			Notes:           m.AppNotes,
			StatusChangedAt: m.AppStatusChangedAt,
			CreatedAt:       m.AppCreatedAt,
			UpdatedAt:       m.AppUpdatedAt,
		},
	}
}

type positionModel struct {
	ID        string    `db:"id"`
	AgencyID  string    `db:"agency_id"`
	Title     string    `db:"title"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m *positionModel) toEntity() *pipeline.Position {
	return &pipeline.Position{
		ID:        kernel.PositionID(m.ID),
		AgencyID:  kernel.AgencyID(m.AgencyID),
		Title:     kernel.PositionTitle(m.Title),
		Status:    pipeline.PositionStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type experienceModel struct {
	ID          string    `db:"id"`
	CandidateID string    `db:"candidate_id"`
	Company     string    `db:"company"`
	Title       string    `db:"title"`
	StartDate   time.Time `db:"start_date"`
	IsCurrent   bool      `db:"is_current"`
	CreatedAt   time.Time `db:"created_at"`
}

func fromExperienceEntity(exp *pipeline.WorkExperience) *experienceModel {
	return &experienceModel{
		ID:          string(exp.ID),
		CandidateID: string(exp.CandidateID),
		Company:     string(exp.Company),
		Title:       string(exp.Title),
		StartDate:   exp.StartDate,
		IsCurrent:   exp.IsCurrent,
		CreatedAt:   exp.CreatedAt,
	}
}

// ============================================================================
// Transaction-Scoped Store
// ============================================================================

type postgresStore struct {
	tx *sqlx.Tx
}

// GetApplicationForAgency fetches an application scoped to the agency owning
// its position. Ownership lives in the predicate so missing and forbidden
// are the same error.
func (s *postgresStore) GetApplicationForAgency(ctx context.Context, id kernel.ApplicationID, agencyID kernel.AgencyID) (*pipeline.Application, error) {
	query := `
		SELECT
			a.id, a.position_id, a.candidate_id, a.status, a.notes,
			a.status_changed_at, a.created_at, a.updated_at
		FROM applications a
		INNER JOIN positions p ON a.position_id = p.id
		WHERE a.id = $1 AND p.agency_id = $2
	`

	var model applicationModel
	err := s.tx.GetContext(ctx, &model, query, string(id), string(agencyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, pipeline.ErrNotFoundOrForbidden()
		}
		return nil, fmt.Errorf("failed to get application for agency: %w", err)
	}

	return model.toEntity(), nil
}

// UpdateApplicationStatus persists the application's status fields
func (s *postgresStore) UpdateApplicationStatus(ctx context.Context, app *pipeline.Application) error {
	query := `
		UPDATE applications
		SET status = $1,
		    status_changed_at = $2,
		    updated_at = $3
		WHERE id = $4
	`

	result, err := s.tx.ExecContext(ctx, query, string(app.Status), app.StatusChangedAt, app.UpdatedAt, string(app.ID))
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return pipeline.ErrNotFoundOrForbidden()
	}

	return nil
}

// InsertOffer creates a new offer row
func (s *postgresStore) InsertOffer(ctx context.Context, offer *pipeline.Offer) error {
	model := fromOfferEntity(offer)

	query := `
		INSERT INTO offers (
			id, application_id, salary, currency, start_date,
			status, resolved_at, created_at
		) VALUES (
			:id, :application_id, :salary, :currency, :start_date,
			:status, :resolved_at, :created_at
		)
	`

	_, err := s.tx.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return pipeline.ErrNotFoundOrForbidden()
			}
		}
		return fmt.Errorf("failed to insert offer: %w", err)
	}

	return nil
}

// GetOfferForCandidate fetches an offer scoped to the candidate owning its
// application, joined with that application.
func (s *postgresStore) GetOfferForCandidate(ctx context.Context, id kernel.OfferID, candidateID kernel.CandidateID) (*pipeline.OfferDetail, error) {
	query := `
		SELECT
			o.id, o.application_id, o.salary, o.currency, o.start_date,
			o.status, o.resolved_at, o.created_at,
			a.id AS app_id,
			a.position_id AS app_position_id,
			a.candidate_id AS app_candidate_id,
			a.status AS app_status,
			a.notes AS app_notes,
			a.status_changed_at AS app_status_changed_at,
			a.created_at AS app_created_at,
			a.updated_at AS app_updated_at
		FROM offers o
		INNER JOIN applications a ON o.application_id = a.id
		WHERE o.id = $1 AND a.candidate_id = $2
	`

	var model offerDetailModel
	err := s.tx.GetContext(ctx, &model, query, string(id), string(candidateID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, pipeline.ErrNotFoundOrForbidden()
		}
		return nil, fmt.Errorf("failed to get offer for candidate: %w", err)
	}

	return model.toDetail(), nil
}

// UpdateOfferStatus persists the offer's resolution
func (s *postgresStore) UpdateOfferStatus(ctx context.Context, offer *pipeline.Offer) error {
	query := `
		UPDATE offers
		SET status = $1,
		    resolved_at = $2
		WHERE id = $3
	`

	result, err := s.tx.ExecContext(ctx, query, string(offer.Status), offer.ResolvedAt, string(offer.ID))
	if err != nil {
		return fmt.Errorf("failed to update offer status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return pipeline.ErrNotFoundOrForbidden()
	}

	return nil
}

// LockPosition fetches the position under FOR UPDATE. The lock serializes
// the accept path across concurrent transactions on the same position.
func (s *postgresStore) LockPosition(ctx context.Context, id kernel.PositionID) (*pipeline.Position, error) {
	query := `
		SELECT id, agency_id, title, status, created_at, updated_at
		FROM positions
		WHERE id = $1
		FOR UPDATE
	`

	var model positionModel
	err := s.tx.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, pipeline.ErrNotFoundOrForbidden()
		}
		return nil, fmt.Errorf("failed to lock position: %w", err)
	}

	return model.toEntity(), nil
}

// UpdatePositionStatus persists the position's status
func (s *postgresStore) UpdatePositionStatus(ctx context.Context, position *pipeline.Position) error {
	query := `
		UPDATE positions
		SET status = $1,
		    updated_at = $2
		WHERE id = $3
	`

	result, err := s.tx.ExecContext(ctx, query, string(position.Status), position.UpdatedAt, string(position.ID))
	if err != nil {
		return fmt.Errorf("failed to update position status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return pipeline.ErrNotFoundOrForbidden()
	}

	return nil
}

// AgencyName resolves the agency display name recorded on work experiences
func (s *postgresStore) AgencyName(ctx context.Context, id kernel.AgencyID) (kernel.AgencyName, error) {
	query := `SELECT name FROM agencies WHERE id = $1`

	var name string
	err := s.tx.GetContext(ctx, &name, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return "", pipeline.ErrNotFoundOrForbidden()
		}
		return "", fmt.Errorf("failed to get agency name: %w", err)
	}

	return kernel.AgencyName(name), nil
}

// CandidateUserID resolves the user identity behind a candidate profile
func (s *postgresStore) CandidateUserID(ctx context.Context, id kernel.CandidateID) (kernel.UserID, error) {
	query := `SELECT user_id FROM candidates WHERE id = $1`

	var userID string
	err := s.tx.GetContext(ctx, &userID, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return "", pipeline.ErrNotFoundOrForbidden()
		}
		return "", fmt.Errorf("failed to get candidate user id: %w", err)
	}

	return kernel.UserID(userID), nil
}

// ClearCurrentExperiences flips every current work experience of the
// candidate to not-current
func (s *postgresStore) ClearCurrentExperiences(ctx context.Context, candidateID kernel.CandidateID) (int64, error) {
	query := `
		UPDATE work_experiences
		SET is_current = FALSE
		WHERE candidate_id = $1 AND is_current = TRUE
	`

	result, err := s.tx.ExecContext(ctx, query, string(candidateID))
	if err != nil {
		return 0, fmt.Errorf("failed to clear current experiences: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// InsertExperience creates a new work experience row
func (s *postgresStore) InsertExperience(ctx context.Context, exp *pipeline.WorkExperience) error {
	model := fromExperienceEntity(exp)

	query := `
		INSERT INTO work_experiences (
			id, candidate_id, company, title, start_date, is_current, created_at
		) VALUES (
			:id, :candidate_id, :company, :title, :start_date, :is_current, :created_at
		)
	`

	_, err := s.tx.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			// unique_violation on the partial current-experience index:
			// another acceptance by the same candidate committed first.
			if pqErr.Code == "23505" {
				return pipeline.ErrCurrentExperienceConflict()
			}
		}
		return fmt.Errorf("failed to insert work experience: %w", err)
	}

	return nil
}

// RejectOtherApplications rejects every non-terminal application on the
// position except the hired one. The predicate is spelled out rather than
// relying on an ORM shortcut so the cascade is auditable.
func (s *postgresStore) RejectOtherApplications(ctx context.Context, positionID kernel.PositionID, hiredID kernel.ApplicationID) (int64, error) {
	query := `
		UPDATE applications
		SET status = 'REJECTED',
		    status_changed_at = $1,
		    updated_at = $1
		WHERE position_id = $2
		  AND id <> $3
		  AND status NOT IN ('HIRED', 'REJECTED', 'WITHDRAWN')
	`

	now := time.Now()
	result, err := s.tx.ExecContext(ctx, query, now, string(positionID), string(hiredID))
	if err != nil {
		return 0, fmt.Errorf("failed to reject sibling applications: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
