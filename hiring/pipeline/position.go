package pipeline

import (
	"time"

	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// PositionStatus represents the status of a job posting.
type PositionStatus string

const (
	PositionStatusDraft  PositionStatus = "DRAFT"  // Created but not published
	PositionStatusOpen   PositionStatus = "OPEN"   // Accepting applications
	PositionStatusClosed PositionStatus = "CLOSED" // Filled; stays closed
)

type Position struct {
	ID        kernel.PositionID    `db:"id" json:"id"`
	AgencyID  kernel.AgencyID      `db:"agency_id" json:"agency_id"`
	Title     kernel.PositionTitle `db:"title" json:"title"`
	Status    PositionStatus       `db:"status" json:"status"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt time.Time            `db:"updated_at" json:"updated_at"`
}

// IsOpen checks if the position still accepts acceptances.
func (p *Position) IsOpen() bool {
	return p.Status == PositionStatusOpen
}

// IsClosed checks if the position was already filled.
func (p *Position) IsClosed() bool {
	return p.Status == PositionStatusClosed
}

// Close marks the position as permanently filled.
func (p *Position) Close() {
	p.Status = PositionStatusClosed
	p.UpdatedAt = time.Now()
}
