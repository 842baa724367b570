package pipeline

import (
	"time"

	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// WorkExperience is a candidate resume entry. At most one entry per candidate
// carries IsCurrent = true at any moment; the accept cascade flips the old
// current entries off before inserting the new one in the same transaction.
type WorkExperience struct {
	ID          kernel.ExperienceID  `db:"id" json:"id"`
	CandidateID kernel.CandidateID   `db:"candidate_id" json:"candidate_id"`
	Company     kernel.AgencyName    `db:"company" json:"company"`
	Title       kernel.PositionTitle `db:"title" json:"title"`
	StartDate   time.Time            `db:"start_date" json:"start_date"`
	IsCurrent   bool                 `db:"is_current" json:"is_current"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
}
