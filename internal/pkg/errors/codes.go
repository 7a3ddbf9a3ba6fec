package errors

import "net/http"

var (
	ErrInvalidReduction = New(
		"INVALID_INPUT",
		"vehicle_reduction must be a fraction in [0,1] or a percentage in (1,100]",
		http.StatusBadRequest,
	)

	ErrEmptySegmentFilter = New(
		"INVALID_INPUT",
		"No segments match the requested segment_ids",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrNoTrafficData = New(
		"NO_DATA",
		"No traffic segments available for simulation",
		http.StatusInternalServerError,
	)

	ErrPredictorUnavailable = New(
		"PREDICTOR_UNAVAILABLE",
		"Prediction model is not available",
		http.StatusServiceUnavailable,
	)

	ErrUnknownDomain = New(
		"UNKNOWN_DOMAIN",
		"Unknown data domain",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
