package errors

import "net/http"

var (
	ErrInvalidParameters = New(
		"INVALID_PARAMETERS",
		"lat and lng are required and must be valid numbers",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates: lat must be between -90 and 90, lng between -180 and 180",
		http.StatusBadRequest,
	)

	ErrValidationFailed = New(
		"VALIDATION_FAILED",
		"Request body validation failed",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request body",
		http.StatusBadRequest,
	)

	ErrPOINotFound = New(
		"POI_NOT_FOUND",
		"POI not found",
		http.StatusNotFound,
	)

	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"Route not found",
		http.StatusNotFound,
	)

	ErrSpatialCapabilityUnavailable = New(
		"SPATIAL_CAPABILITY_UNAVAILABLE",
		"PostGIS extension is not available",
		http.StatusInternalServerError,
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
