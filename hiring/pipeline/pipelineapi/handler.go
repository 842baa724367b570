package pipelineapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tobyt50/PPALink-sub000/hiring/pipeline"
	"github.com/tobyt50/PPALink-sub000/hiring/pipeline/pipelinesrv"
	"github.com/tobyt50/PPALink-sub000/pkg/iam/auth"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// Handlers provides HTTP handlers for pipeline operations
type Handlers struct {
	service *pipelinesrv.PipelineService
}

// NewHandlers creates a new pipeline handlers instance
func NewHandlers(service *pipelinesrv.PipelineService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateOffer extends an offer on an application
// POST /api/pipeline/applications/:id/offer
func (h *Handlers) CreateOffer(c *fiber.Ctx) error {
	// Agency-side endpoint: a caller without an agency profile sees the same
	// 404 as a caller probing someone else's application.
	authContext, ok := auth.GetAuthContext(c)
	if !ok || authContext.AgencyID == nil {
		return pipeline.ErrNotFoundOrForbidden()
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID == "" {
		return pipeline.ErrInvalidRequest().WithDetail("application_id", "missing or empty")
	}

	var req pipeline.CreateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return pipeline.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	req.ApplicationID = applicationID
	req.AgencyID = *authContext.AgencyID

	offer, err := h.service.CreateOffer(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(offer)
}

// RespondToOffer resolves a pending offer as the owning candidate
// POST /api/pipeline/offers/:id/response
func (h *Handlers) RespondToOffer(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok || authContext.CandidateID == nil {
		return pipeline.ErrNotFoundOrForbidden()
	}

	offerID := kernel.OfferID(c.Params("id"))
	if offerID == "" {
		return pipeline.ErrInvalidRequest().WithDetail("offer_id", "missing or empty")
	}

	var req pipeline.RespondToOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return pipeline.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	req.OfferID = offerID
	req.CandidateID = *authContext.CandidateID

	offer, err := h.service.RespondToOffer(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(offer)
}

// GetBoard retrieves the status-grouped pipeline view of a position
// GET /api/pipeline/positions/:id/board
func (h *Handlers) GetBoard(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok || authContext.AgencyID == nil {
		return pipeline.ErrNotFoundOrForbidden()
	}

	positionID := kernel.PositionID(c.Params("id"))
	if positionID == "" {
		return pipeline.ErrInvalidRequest().WithDetail("position_id", "missing or empty")
	}

	board, err := h.service.GetBoard(c.Context(), positionID, *authContext.AgencyID)
	if err != nil {
		return err
	}

	return c.JSON(board)
}

// RegisterRoutes registers all pipeline routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/pipeline", authMiddleware.Handle())

	api.Post("/applications/:id/offer", handlers.CreateOffer)
	api.Post("/offers/:id/response", handlers.RespondToOffer)
	api.Get("/positions/:id/board", handlers.GetBoard)
}
