package pipelinesrv

import (
	"context"

	"github.com/tobyt50/PPALink-sub000/hiring/pipeline"
	"github.com/tobyt50/PPALink-sub000/pkg/errx"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// GetBoard returns the status-grouped pipeline view of one position, scoped
// to the owning agency. Read-only; no invariants beyond ownership.
func (s *PipelineService) GetBoard(ctx context.Context, positionID kernel.PositionID, agencyID kernel.AgencyID) (*pipeline.BoardResponse, error) {
	pos, err := s.reads.GetPositionForAgency(ctx, positionID, agencyID)
	if err != nil {
		return nil, err
	}

	apps, err := s.reads.ListApplicationsByPosition(ctx, positionID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list pipeline applications", errx.TypeInternal)
	}

	grouped := make(map[pipeline.ApplicationStatus][]pipeline.Application, len(pipeline.PipelineOrder))
	for _, app := range apps {
		grouped[app.Status] = append(grouped[app.Status], app)
	}

	columns := make([]pipeline.BoardColumn, 0, len(pipeline.PipelineOrder))
	for _, status := range pipeline.PipelineOrder {
		columns = append(columns, pipeline.BoardColumn{
			Status:       status,
			Applications: grouped[status],
		})
	}

	return &pipeline.BoardResponse{
		PositionID: pos.ID,
		Title:      pos.Title,
		Columns:    columns,
	}, nil
}
