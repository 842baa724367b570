package pipeline

import (
	"net/http"

	"github.com/tobyt50/PPALink-sub000/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("PIPELINE")

// Error codes
var (
	// Not-found and forbidden are deliberately one code so a caller cannot
	// probe for records it has no rights over.
	CodeNotFoundOrForbidden       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resource not found")
	CodePositionAlreadyFilled     = ErrRegistry.Register("POSITION_ALREADY_FILLED", errx.TypeConflict, http.StatusConflict, "Position has already been filled")
	CodePositionNotOpen           = ErrRegistry.Register("POSITION_NOT_OPEN", errx.TypeConflict, http.StatusConflict, "Position is not open for hiring")
	CodeCurrentExperienceConflict = ErrRegistry.Register("CURRENT_EXPERIENCE_CONFLICT", errx.TypeConflict, http.StatusConflict, "A concurrent hire already recorded a current work experience")
	CodeOfferAlreadyResolved      = ErrRegistry.Register("OFFER_ALREADY_RESOLVED", errx.TypeConflict, http.StatusConflict, "Offer has already been resolved")
	CodeApplicationNotActive      = ErrRegistry.Register("APPLICATION_NOT_ACTIVE", errx.TypeBusiness, http.StatusConflict, "Application is no longer active")
	CodeInvalidStatusTransition   = ErrRegistry.Register("INVALID_STATUS_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid status transition")
	CodeCurrencyRequired          = ErrRegistry.Register("CURRENCY_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Currency is required when a salary is given")
	CodeInvalidResponse           = ErrRegistry.Register("INVALID_RESPONSE", errx.TypeValidation, http.StatusBadRequest, "Response must be ACCEPTED or DECLINED")
	CodeInvalidRequest            = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrNotFoundOrForbidden() *errx.Error {
	return ErrRegistry.New(CodeNotFoundOrForbidden)
}

func ErrPositionAlreadyFilled() *errx.Error {
	return ErrRegistry.New(CodePositionAlreadyFilled)
}

func ErrPositionNotOpen() *errx.Error {
	return ErrRegistry.New(CodePositionNotOpen)
}

func ErrCurrentExperienceConflict() *errx.Error {
	return ErrRegistry.New(CodeCurrentExperienceConflict)
}

func ErrOfferAlreadyResolved() *errx.Error {
	return ErrRegistry.New(CodeOfferAlreadyResolved)
}

func ErrApplicationNotActive() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotActive)
}

func ErrInvalidStatusTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatusTransition)
}

func ErrCurrencyRequired() *errx.Error {
	return ErrRegistry.New(CodeCurrencyRequired)
}

func ErrInvalidResponse() *errx.Error {
	return ErrRegistry.New(CodeInvalidResponse)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
