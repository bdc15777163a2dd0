package errors

import "net/http"

var (
	ErrListingNotFound = New(
		"LISTING_NOT_FOUND",
		"Listing you requested for does not exist!",
		http.StatusNotFound,
	)

	ErrInvalidListingID = New(
		"INVALID_LISTING_ID",
		"Invalid listing ID",
		http.StatusBadRequest,
	)

	ErrInvalidLocation = New(
		"INVALID_LOCATION",
		"Invalid location entered. Please check the location name and try again.",
		http.StatusUnprocessableEntity,
	)

	ErrGeocoderMisconfigured = New(
		"GEOCODER_MISCONFIGURED",
		"Geocoding service error. Please contact administrator.",
		http.StatusServiceUnavailable,
	)

	ErrGeocoderQuota = New(
		"GEOCODER_QUOTA_EXCEEDED",
		"Geocoding limit reached. Please try again later.",
		http.StatusTooManyRequests,
	)

	ErrGeocoder = New(
		"GEOCODER_ERROR",
		"Something went wrong. Please try again.",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
