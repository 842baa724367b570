package pipelineinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tobyt50/PPALink-sub000/hiring/pipeline"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// PostgresReadRepository serves the board query surface outside any
// transaction
type PostgresReadRepository struct {
	db *sqlx.DB
}

// NewPostgresReadRepository creates a new PostgreSQL read repository
func NewPostgresReadRepository(db *sqlx.DB) *PostgresReadRepository {
	return &PostgresReadRepository{
		db: db,
	}
}

// GetPositionForAgency fetches a position scoped to its owning agency
func (r *PostgresReadRepository) GetPositionForAgency(ctx context.Context, id kernel.PositionID, agencyID kernel.AgencyID) (*pipeline.Position, error) {
	query := `
		SELECT id, agency_id, title, status, created_at, updated_at
		FROM positions
		WHERE id = $1 AND agency_id = $2
	`

	var model positionModel
	err := r.db.GetContext(ctx, &model, query, string(id), string(agencyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, pipeline.ErrNotFoundOrForbidden()
		}
		return nil, fmt.Errorf("failed to get position for agency: %w", err)
	}

	return model.toEntity(), nil
}

// ListApplicationsByPosition lists every application on a position, oldest
// first so board columns keep a stable order
func (r *PostgresReadRepository) ListApplicationsByPosition(ctx context.Context, positionID kernel.PositionID) ([]pipeline.Application, error) {
	query := `
		SELECT
			id, position_id, candidate_id, status, notes,
			status_changed_at, created_at, updated_at
		FROM applications
		WHERE position_id = $1
		ORDER BY created_at ASC
	`

	var models []applicationModel
	err := r.db.SelectContext(ctx, &models, query, string(positionID))
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by position: %w", err)
	}

	apps := make([]pipeline.Application, 0, len(models))
	for i := range models {
		apps = append(apps, *models[i].toEntity())
	}

	return apps, nil
}
