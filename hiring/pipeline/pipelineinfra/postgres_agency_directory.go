package pipelineinfra

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// PostgresAgencyDirectory resolves agency membership for push targeting
type PostgresAgencyDirectory struct {
	db *sqlx.DB
}

// NewPostgresAgencyDirectory creates a new PostgreSQL agency directory
func NewPostgresAgencyDirectory(db *sqlx.DB) *PostgresAgencyDirectory {
	return &PostgresAgencyDirectory{
		db: db,
	}
}

// MembersOf lists the user ids of every member of the agency
func (d *PostgresAgencyDirectory) MembersOf(ctx context.Context, agencyID kernel.AgencyID) ([]kernel.UserID, error) {
	query := `SELECT user_id FROM agency_members WHERE agency_id = $1`

	var ids []string
	err := d.db.SelectContext(ctx, &ids, query, string(agencyID))
	if err != nil {
		return nil, fmt.Errorf("failed to list agency members: %w", err)
	}

	members := make([]kernel.UserID, 0, len(ids))
	for _, id := range ids {
		members = append(members, kernel.UserID(id))
	}

	return members, nil
}
